// Package usecase は株価履歴データ操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"swing_backend/internal/feature/prices/domain"
	"swing_backend/internal/feature/prices/domain/entity"
)

// MarketRepository は外部APIから日足の株価系列を取得するリポジトリを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketRepository interface {
	// GetDailyTimeSeries は指定された銘柄と年の日足終値系列を取得します。
	GetDailyTimeSeries(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error)
}

// historyUsecase は分析用の日足履歴取得ユースケースを実装します。
type historyUsecase struct {
	market MarketRepository
}

// NewHistoryUsecase はhistoryUsecaseの新しいインスタンスを生成します。
func NewHistoryUsecase(market MarketRepository) *historyUsecase {
	return &historyUsecase{market: market}
}

// GetDailyHistory は外部プロバイダから日足系列を取得し、正規化して返します。
// プロバイダの失敗・不正な応答は domain.ErrDataUnavailable として返します。
func (u *historyUsecase) GetDailyHistory(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error) {
	points, err := u.market.GetDailyTimeSeries(ctx, ticker, year)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %d: %v", domain.ErrDataUnavailable, ticker, year, err)
	}
	normalized := Normalize(points)
	if len(normalized) == 0 {
		return nil, fmt.Errorf("%w: %s %d: provider returned no usable samples", domain.ErrDataUnavailable, ticker, year)
	}
	return normalized, nil
}

// Normalize はプロバイダから受け取った生の系列を分析可能な形に整えます。
//
//   - 日付または正の価格を欠くサンプルを除去
//   - 日付をUTCの0時に丸める（日次解像度）
//   - 日付昇順で安定ソート
//   - 同一日付の重複は後勝ちで1件に統合
func Normalize(points []entity.PricePoint) []entity.PricePoint {
	filtered := make([]entity.PricePoint, 0, len(points))
	for _, p := range points {
		if p.Date.IsZero() || p.Price <= 0 {
			continue
		}
		y, m, d := p.Date.UTC().Date()
		filtered = append(filtered, entity.PricePoint{
			Date:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			Price: p.Price,
		})
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.Before(filtered[j].Date)
	})

	// 安定ソート後なので、同一日付のうち最後の要素が入力順でも最後のものになる
	out := filtered[:0]
	for _, p := range filtered {
		if n := len(out); n > 0 && out[n-1].Date.Equal(p.Date) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}
