package usecase

import (
	"context"

	"swing_backend/internal/feature/prices/domain/entity"
)

// PriceRepository は株価データの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PriceRepository interface {
	// UpsertBatch は株価データをデータベースに一括で挿入（または更新）します。
	UpsertBatch(ctx context.Context, ticker string, points []entity.PricePoint) error
	// FindByYear は指定された銘柄と年の株価データを日付昇順で検索します。
	FindByYear(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error)
}

// pricesUsecase は永続化済み株価データの参照ユースケースを実装します。
type pricesUsecase struct {
	prices PriceRepository
}

// NewPricesUsecase はpricesUsecaseの新しいインスタンスを生成します。
func NewPricesUsecase(prices PriceRepository) *pricesUsecase {
	return &pricesUsecase{prices: prices}
}

// GetStoredHistory はデータベースに保存された指定銘柄・年の日足系列を返します。
func (u *pricesUsecase) GetStoredHistory(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error) {
	points, err := u.prices.FindByYear(ctx, ticker, year)
	if err != nil {
		return nil, err
	}
	return points, nil
}
