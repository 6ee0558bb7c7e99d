package adapter

import (
	"fmt"
	"math"
	"time"
)

// salaryFallback is the display string used when a posting carries no
// usable salary range.
const salaryFallback = "Competitive"

// formatSalary renders a "$XK–$YK" range when both bounds are positive,
// otherwise the fallback literal.
func formatSalary(min, max float64) string {
	if min <= 0 || max <= 0 {
		return salaryFallback
	}
	return fmt.Sprintf("$%dK–$%dK",
		int(math.Round(min/1000)),
		int(math.Round(max/1000)))
}

// relativeTime renders a posting timestamp as the human-relative string the
// board displays.
func relativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < 24*time.Hour:
		return "Today"
	case d < 48*time.Hour:
		return "Yesterday"
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	case d < 30*24*time.Hour:
		return plural(int(d.Hours()/24/7), "week")
	default:
		return plural(int(d.Hours()/24/30), "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
