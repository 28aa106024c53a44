// Package dto はanalysisフィーチャーのHTTPリクエスト/レスポンスDTOを定義します。
package dto

// AnalyzeRequest は分析実行リクエストのDTOです。
type AnalyzeRequest struct {
	Ticker           string  `json:"ticker" binding:"required"`
	Year             int     `json:"year" binding:"required"`
	TargetPercentage float64 `json:"target_percentage"`
}

// PricePointResponse は日足1件のレスポンスDTOです。
type PricePointResponse struct {
	Date  string  `json:"date"`  // 日付
	Price float64 `json:"price"` // 終値
}

// MovementResponse はスイングイベント1件のレスポンスDTOです。
type MovementResponse struct {
	StartDate        string  `json:"start_date"`        // 基準点の日付
	EndDate          string  `json:"end_date"`          // 確定点の日付
	StartPrice       float64 `json:"start_price"`       // 基準点の終値
	EndPrice         float64 `json:"end_price"`         // 確定点の終値
	Type             string  `json:"type"`              // UP / DOWN
	PercentageChange float64 `json:"percentage_change"` // 符号付き変化率（%）
	DaysTaken        int     `json:"days_taken"`        // 暦日での所要日数
	Context          string  `json:"context"`           // 原因説明（未確定は空）
}

// AnalysisResponse は分析結果スナップショットのレスポンスDTOです。
type AnalysisResponse struct {
	RunID            uint64               `json:"run_id"`
	Ticker           string               `json:"ticker"`
	Year             int                  `json:"year"`
	TargetPercentage float64              `json:"target_percentage"`
	Outstanding      int                  `json:"outstanding"` // 未完了のエンリッチメント数
	Data             []PricePointResponse `json:"data"`
	Movements        []MovementResponse   `json:"movements"`
}
