package usecase

import (
	"context"
	"log/slog"

	"swing_backend/internal/shared/ratelimiter"
)

// IngestUsecase は外部APIから株価履歴を取得し、データベースに永続化するユースケースを定義します。
type IngestUsecase struct {
	market      MarketRepository
	prices      PriceRepository
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(market MarketRepository, prices PriceRepository, rateLimiter ratelimiter.RateLimiterInterface) *IngestUsecase {
	return &IngestUsecase{market: market, prices: prices, rateLimiter: rateLimiter}
}

// ingestOne は指定された銘柄と年の日足系列を外部リポジトリから取得し、
// 正規化したうえでデータベースに一括で挿入（または更新）します。
func (iu *IngestUsecase) ingestOne(ctx context.Context, ticker string, year int) error {
	points, err := iu.market.GetDailyTimeSeries(ctx, ticker, year)
	if err != nil {
		return err
	}
	return iu.prices.UpsertBatch(ctx, ticker, Normalize(points))
}

// IngestAll は指定された全銘柄・全年の日足系列を取得し、データベースに永続化します。
// APIのレートリミットを考慮して、リクエスト間に適切な待機時間を設けます。
func (iu *IngestUsecase) IngestAll(ctx context.Context, tickers []string, years []int) error {
	for _, ticker := range tickers {
		for _, year := range years {
			iu.rateLimiter.WaitIfNeeded()
			if err := iu.ingestOne(ctx, ticker, year); err != nil {
				// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の処理を続ける
				slog.Error("failed to ingest price history", "ticker", ticker, "year", year, "error", err)
				continue
			}
		}
	}
	return nil
}
