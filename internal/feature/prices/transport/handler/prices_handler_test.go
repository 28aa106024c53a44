package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"swing_backend/internal/feature/prices/domain/entity"
	"swing_backend/internal/feature/prices/transport/handler"
)

// mockPricesUsecase はPricesUsecaseインターフェースのモック実装です。
type mockPricesUsecase struct {
	GetStoredHistoryFunc func(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error)
}

func (m *mockPricesUsecase) GetStoredHistory(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error) {
	return m.GetStoredHistoryFunc(ctx, ticker, year)
}

// TestPricesHandler_GetPricesHandler はGetPricesHandlerのHTTPリクエスト/レスポンス処理をテストします。
func TestPricesHandler_GetPricesHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		mockGet        func(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: ticker and year specified",
			url:  "/prices/AAPL?year=2024",
			mockGet: func(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error) {
				assert.Equal(t, "AAPL", ticker)
				assert.Equal(t, 2024, year)
				return []entity.PricePoint{
					{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Price: 185.5},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"date":"2024-01-02","price":185.5}]`,
		},
		{
			name: "success: year defaults to current year",
			url:  "/prices/AAPL",
			mockGet: func(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error) {
				assert.Equal(t, time.Now().UTC().Year(), year)
				return []entity.PricePoint{}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "error: invalid year",
			url:  "/prices/AAPL?year=not-a-year",
			mockGet: func(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error) {
				t.Error("usecase should not be called")
				return nil, nil
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid year"}`,
		},
		{
			name: "error: usecase returns error",
			url:  "/prices/AAPL?year=2024",
			mockGet: func(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error) {
				return nil, errors.New("database error")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"database error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockPricesUsecase{GetStoredHistoryFunc: tt.mockGet}
			h := handler.NewPricesHandler(mockUC)

			router := gin.New()
			router.GET("/prices/:ticker", h.GetPricesHandler)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
