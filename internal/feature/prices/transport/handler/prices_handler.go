// Package handler はpricesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"swing_backend/internal/api"
	"swing_backend/internal/feature/prices/domain/entity"
	"swing_backend/internal/feature/prices/transport/http/dto"
)

// PricesUsecase は永続化済み株価データ参照のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PricesUsecase interface {
	GetStoredHistory(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error)
}

// PricesHandler は株価履歴のHTTPリクエストを処理します。
type PricesHandler struct {
	uc PricesUsecase
}

// NewPricesHandler は指定されたusecaseでPricesHandlerの新しいインスタンスを生成します。
func NewPricesHandler(uc PricesUsecase) *PricesHandler {
	return &PricesHandler{uc: uc}
}

// GetPricesHandler は銘柄コードと年を受け取り、保存済みの日足系列をJSONで返します。
//
// エンドポイント例:
// GET /prices/AAPL?year=2024
func (h *PricesHandler) GetPricesHandler(c *gin.Context) {
	ticker := c.Param("ticker")
	// 未指定の場合は今年を使用
	yearStr := c.DefaultQuery("year", strconv.Itoa(time.Now().UTC().Year()))
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid year"})
		return
	}

	points, err := h.uc.GetStoredHistory(c.Request.Context(), ticker, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	// データをフォーマット
	out := make([]dto.PricePointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.PricePointResponse{
			Date:  p.Date.UTC().Format("2006-01-02"),
			Price: p.Price,
		})
	}

	c.JSON(http.StatusOK, out)
}
