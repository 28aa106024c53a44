// Package adapters はpricesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"swing_backend/internal/feature/prices/domain/entity"
	"swing_backend/internal/feature/prices/usecase"
)

type pricePostgres struct {
	db *gorm.DB
}

var _ usecase.PriceRepository = (*pricePostgres)(nil)

func NewPriceRepository(db *gorm.DB) *pricePostgres {
	return &pricePostgres{db: db}
}

type PricePointModel struct {
	ID     uint      `gorm:"primaryKey"`
	Ticker string    `gorm:"size:32;not null;uniqueIndex:price_ticker_date,priority:1"`
	Date   time.Time `gorm:"not null;uniqueIndex:price_ticker_date,priority:2"`

	Price float64 `gorm:"not null"`
}

func (PricePointModel) TableName() string {
	return "price_points"
}

func toModel(ticker string, p entity.PricePoint) PricePointModel {
	return PricePointModel{
		Ticker: ticker,
		Date:   p.Date,
		Price:  p.Price,
	}
}

func (r *pricePostgres) UpsertBatch(ctx context.Context, ticker string, points []entity.PricePoint) error {
	if len(points) == 0 {
		return nil
	}
	ms := make([]PricePointModel, 0, len(points))
	for _, p := range points {
		ms = append(ms, toModel(ticker, p))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"price"}),
	}).Create(&ms).Error
}

func (r *pricePostgres) FindByYear(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var rows []PricePointModel
	err := r.db.WithContext(ctx).
		Where("ticker = ? AND date >= ? AND date < ?", ticker, from, to).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.PricePoint, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.PricePoint{
			Date:  m.Date,
			Price: m.Price,
		})
	}
	return out, nil
}
