package cache

import (
	"time"
)

// TimeUntilNextMidnightUTC は次のUTC0時までの期間を返します。
// 日足の終値はUTCの日付が変わるまで確定値が追加されないため、
// 日足系列キャッシュのTTLとして使用します。
func TimeUntilNextMidnightUTC() time.Duration {
	now := time.Now().UTC()

	// 次のUTC0時を計算
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)

	return next.Sub(now)
}
