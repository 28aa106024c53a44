package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"swing_backend/internal/app/di"
	"swing_backend/internal/feature/prices/adapters"
	"swing_backend/internal/feature/prices/usecase"
	"swing_backend/internal/platform/db"
	"swing_backend/internal/shared/ratelimiter"
)

// twelvedataFreeTierPerMinute is the request budget of the free API plan.
const twelvedataFreeTierPerMinute = 8

func main() {
	tickers := splitCSV(os.Getenv("INGEST_TICKERS"))
	if len(tickers) == 0 {
		log.Fatal("INGEST_TICKERS is not set (comma-separated, e.g. AAPL,MSFT)")
	}

	years, err := parseYears(os.Getenv("INGEST_YEARS"))
	if err != nil {
		log.Fatal("invalid INGEST_YEARS:", err)
	}

	gdb := db.OpenDB()
	market := di.NewMarket()
	priceRepo := adapters.NewPriceRepository(gdb)
	limiter := ratelimiter.NewRateLimiter(twelvedataFreeTierPerMinute, time.Minute)
	uc := usecase.NewIngestUsecase(market, priceRepo, limiter)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if err := uc.IngestAll(ctx, tickers, years); err != nil {
		log.Fatal(err)
	}
	log.Println("ingest ok")
}

// splitCSV はカンマ区切りの文字列を空要素を除いて分割します。
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseYears はカンマ区切りの年リストを解析します。未設定の場合は現在の年を返します。
func parseYears(s string) ([]int, error) {
	parts := splitCSV(s)
	if len(parts) == 0 {
		return []int{time.Now().Year()}, nil
	}
	years := make([]int, 0, len(parts))
	for _, p := range parts {
		y, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, nil
}
