package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"swing_backend/internal/feature/prices/adapters/twelvedata/dto"
	"swing_backend/internal/feature/prices/domain/entity"
	"swing_backend/internal/feature/prices/usecase"
)

// TwelveDataMarket はTwelve Data外部APIから株価データを取得するMarketRepository実装です。
type TwelveDataMarket struct {
	cfg    Config
	client *http.Client
}

// TwelveDataMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*TwelveDataMarket)(nil)

// NewTwelveDataMarket は指定された設定とHTTPクライアントでTwelveDataMarketの新しいインスタンスを生成します。
func NewTwelveDataMarket(cfg Config, client *http.Client) *TwelveDataMarket {
	return &TwelveDataMarket{cfg: cfg, client: client}
}

// GetDailyTimeSeries はTwelve Data APIから指定された年の日足終値系列を取得し、
// entity.PricePointのスライスとして返します。
func (t *TwelveDataMarket) GetDailyTimeSeries(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error) {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("symbol", ticker)
	q.Set("interval", "1day")
	q.Set("start_date", fmt.Sprintf("%04d-01-01", year))
	q.Set("end_date", fmt.Sprintf("%04d-12-31", year))
	q.Set("apikey", t.cfg.TwelveDataAPIKey)

	// URLを生成
	u := fmt.Sprintf("%s/time_series?%s", t.cfg.BaseURL, q.Encode())

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	// リクエストを実行
	res, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("twelvedata http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.TimeSeriesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("twelvedata: %s", body.Message)
	}

	points := make([]entity.PricePoint, 0, len(body.Values))
	for _, v := range body.Values {

		// タイムスタンプをパース
		tm, err := time.Parse("2006-01-02 15:04:05", v.Datetime)
		if err != nil {
			tm, err = time.Parse("2006-01-02", v.Datetime)
			if err != nil {
				return nil, fmt.Errorf("parse time %q: %w", v.Datetime, err)
			}
		}
		// 終値をパース
		c, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", v.Close, err)
		}

		// ドメインエンティティに変換
		points = append(points, entity.PricePoint{
			Date:  tm,
			Price: c,
		})
	}
	return points, nil
}
