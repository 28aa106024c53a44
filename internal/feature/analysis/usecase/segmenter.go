// Package usecase はスイング分析のビジネスロジックを実装します。
package usecase

import (
	"math"
	"time"

	"swing_backend/internal/feature/analysis/domain"
	"swing_backend/internal/feature/analysis/domain/entity"
	pricesentity "swing_backend/internal/feature/prices/domain/entity"
)

// Segment は日付昇順の日足系列をスイングイベント列に分割します。
//
// 変動の基準点（base）を先頭に置き、基準点からの累積変化率の絶対値が
// threshold（割合、例: 0.02）以上になった最初のサンプルでイベントを確定し、
// そのサンプルを次の基準点とする単一の前方パスです。閾値に達しないまま
// 系列が尽きた末尾の変動はイベントとして出力しません（確定スイングのみ）。
//
// thresholdの下限クランプは呼び出し側（分析ユースケース）の責務であり、
// Segment自身は入力を信頼します。純粋関数であり、同じ入力に対して常に
// 同じ出力を返します。
func Segment(series []pricesentity.PricePoint, threshold float64) ([]entity.MovementEvent, error) {
	if len(series) < 2 {
		return nil, domain.ErrInsufficientData
	}

	events := make([]entity.MovementEvent, 0)
	base := 0
	for i := 1; i < len(series); i++ {
		change := (series[i].Price - series[base].Price) / series[base].Price
		// 同値（ちょうど閾値）でも即時に確定する
		if math.Abs(change) >= threshold {
			events = append(events, newMovementEvent(series[base], series[i], change))
			base = i
		}
	}
	return events, nil
}

// newMovementEvent は基準点とトリガー点から1件のスイングイベントを構築します。
func newMovementEvent(start, end pricesentity.PricePoint, change float64) entity.MovementEvent {
	typ := entity.MovementUp
	if change < 0 {
		typ = entity.MovementDown
	}
	return entity.MovementEvent{
		StartDate:        start.Date,
		EndDate:          end.Date,
		StartPrice:       start.Price,
		EndPrice:         end.Price,
		Type:             typ,
		PercentageChange: change * 100,
		DaysTaken:        calendarDays(start.Date, end.Date),
	}
}

// calendarDays は2つの日付の実経過日数を返します。サンプル間のインデックス差では
// なく暦日差を使うことで、週末や祝日の欠損があっても実時間と一致します。
func calendarDays(start, end time.Time) int {
	return int(end.Sub(start) / (24 * time.Hour))
}
