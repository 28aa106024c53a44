// Package dto はpricesフィーチャーのHTTPレスポンスDTOを定義します。
package dto

// PricePointResponse は日足1件のレスポンスDTOです。
type PricePointResponse struct {
	Date  string  `json:"date"`  // 日付
	Price float64 `json:"price"` // 終値
}
