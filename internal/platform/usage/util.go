package usage

import (
	"strings"
	"time"
)

// dayLayout はカウンタキーに含める日付の書式です。
const dayLayout = "2006-01-02"

// TimeUntilNextUTCMidnight は now から次のUTC午前0時までの期間を返します。
func TimeUntilNextUTCMidnight(now time.Time) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	return next.Sub(now)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
