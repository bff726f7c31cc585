package cache

import (
	"time"
)

// RefreshHour は日次同期が終わっている時刻（中国標準時）です。
// 米国市場の引け後かつ中国市場の寄り付き前にあたります。
const RefreshHour = 8

// refreshZone は中国標準時です。夏時間がないため固定オフセットで表します。
var refreshZone = time.FixedZone("CST", 8*60*60)

// TimeUntilNextRefresh は now から次の午前8時（中国標準時）までの期間を返します。
func TimeUntilNextRefresh(now time.Time) time.Duration {
	local := now.In(refreshZone)
	next := time.Date(local.Year(), local.Month(), local.Day(), RefreshHour, 0, 0, 0, refreshZone)

	// 今日の午前8時が既に過ぎている場合は明日の午前8時を使用
	if !local.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(local)
}
