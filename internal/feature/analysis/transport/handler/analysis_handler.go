// Package handler はanalysisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"swing_backend/internal/api"
	analysisdomain "swing_backend/internal/feature/analysis/domain"
	"swing_backend/internal/feature/analysis/domain/entity"
	"swing_backend/internal/feature/analysis/transport/http/dto"
	pricesdomain "swing_backend/internal/feature/prices/domain"
)

// AnalysisUsecase はスイング分析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AnalysisUsecase interface {
	// Analyze は1回の分析を実行し、公開直後のスナップショットとrunIDを返します。
	Analyze(ctx context.Context, ticker string, year int, targetPercentage float64) (*entity.AnalysisResult, uint64, error)
	// CurrentSnapshot は最新の結果のコピーと未完了エンリッチメント数を返します。
	CurrentSnapshot() (*entity.AnalysisResult, int)
}

// AnalysisHandler はスイング分析のHTTPリクエストを処理します。
type AnalysisHandler struct {
	uc AnalysisUsecase
}

// NewAnalysisHandler は指定されたusecaseでAnalysisHandlerの新しいインスタンスを生成します。
func NewAnalysisHandler(uc AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

// Analyze は分析実行APIエンドポイントを処理します。
//
// エンドポイント例:
// POST /analyses {"ticker":"AAPL","year":2024,"target_percentage":5}
//
// セグメンテーション結果は即座に返却され、各スイングのcontextは
// バックグラウンドのエンリッチメントで埋まります。進捗は
// GET /analyses/current をポーリングして観測します。
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("analyze validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	result, runID, err := h.uc.Analyze(c.Request.Context(), req.Ticker, req.Year, req.TargetPercentage)
	if err != nil {
		switch {
		case errors.Is(err, analysisdomain.ErrInsufficientData):
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, pricesdomain.ErrDataUnavailable):
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("analysis failed", "ticker", req.Ticker, "year", req.Year, "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "analysis failed"})
		}
		return
	}

	_, outstanding := h.uc.CurrentSnapshot()
	c.JSON(http.StatusOK, toResponse(result, runID, outstanding))
}

// Current は最新の分析スナップショットを返すAPIエンドポイントを処理します。
//
// エンドポイント例:
// GET /analyses/current
func (h *AnalysisHandler) Current(c *gin.Context) {
	result, outstanding := h.uc.CurrentSnapshot()
	if result == nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "no analysis has been run"})
		return
	}
	c.JSON(http.StatusOK, toResponse(result, 0, outstanding))
}

// toResponse はドメインの分析結果をレスポンスDTOへ変換します。
func toResponse(result *entity.AnalysisResult, runID uint64, outstanding int) dto.AnalysisResponse {
	data := make([]dto.PricePointResponse, 0, len(result.Data))
	for _, p := range result.Data {
		data = append(data, dto.PricePointResponse{
			Date:  p.Date.UTC().Format("2006-01-02"),
			Price: p.Price,
		})
	}
	movements := make([]dto.MovementResponse, 0, len(result.Movements))
	for _, m := range result.Movements {
		movements = append(movements, dto.MovementResponse{
			StartDate:        m.StartDate.UTC().Format("2006-01-02"),
			EndDate:          m.EndDate.UTC().Format("2006-01-02"),
			StartPrice:       m.StartPrice,
			EndPrice:         m.EndPrice,
			Type:             string(m.Type),
			PercentageChange: m.PercentageChange,
			DaysTaken:        m.DaysTaken,
			Context:          m.Context,
		})
	}
	return dto.AnalysisResponse{
		RunID:            runID,
		Ticker:           result.Ticker,
		Year:             result.Year,
		TargetPercentage: result.TargetPercentage,
		Outstanding:      outstanding,
		Data:             data,
		Movements:        movements,
	}
}
