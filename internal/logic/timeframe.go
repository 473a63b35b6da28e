package logic

// Timeframe names a session-timestamp filter window applied before
// aggregation. "today" means the current calendar date; "week" and "month"
// mean the trailing 7 and 30 days.
type Timeframe string

const (
	TimeframeAll   Timeframe = "all"
	TimeframeToday Timeframe = "today"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
)

// AllTimeframes in the order the cache warmer refreshes them.
var AllTimeframes = []Timeframe{TimeframeAll, TimeframeToday, TimeframeWeek, TimeframeMonth}

// ParseTimeframe maps a query value to a Timeframe, defaulting to "all" for
// anything unknown. Unknown values must never reach SQL construction.
func ParseTimeframe(s string) Timeframe {
	switch Timeframe(s) {
	case TimeframeToday, TimeframeWeek, TimeframeMonth:
		return Timeframe(s)
	}
	return TimeframeAll
}

// predicate returns the SQL filter for the window, or an empty string for
// the unfiltered case. Values come only from the fixed set above.
func (t Timeframe) predicate() string {
	switch t {
	case TimeframeToday:
		return "g.played_at::date = CURRENT_DATE"
	case TimeframeWeek:
		return "g.played_at >= now() - INTERVAL '7 days'"
	case TimeframeMonth:
		return "g.played_at >= now() - INTERVAL '30 days'"
	}
	return ""
}
