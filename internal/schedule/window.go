package schedule

import "time"

const (
	// MaxVisibleRows is how many rows the physical board shows at once.
	MaxVisibleRows = 5

	// PastGrace keeps a row visible this long past its best-known time
	// before it is dropped as gone.
	PastGrace = 2 * time.Minute

	// BlinkAhead is how far before the effective time a row starts pulsing.
	BlinkAhead = 5 * time.Minute
)

// Visible selects the rows eligible for display at now: rows flagged passed
// are dropped, rows whose best-known offset (remark-derived time first, else
// nominal time) is more than the grace period in the past are dropped, and
// the survivors are truncated to MaxVisibleRows. Upstream order is
// authoritative and never re-sorted. A row with no determinable timing is
// always kept.
func Visible(rows []Row, now time.Time) []Row {
	kept := make([]Row, 0, MaxVisibleRows)
	for _, row := range rows {
		if row.Passed {
			continue
		}

		ref, ok := RemarkTime(row.Remarks, now)
		if !ok {
			ref, ok = ParseClock(row.Time, now)
		}
		if ok && ref.Diff < -PastGrace {
			continue
		}

		kept = append(kept, row)
		if len(kept) == MaxVisibleRows {
			break
		}
	}
	return kept
}

// ShouldBlink reports whether a row is imminent enough to pulse: not yet
// passed, effective time known, and within [-PastGrace, +BlinkAhead] of now.
// Evaluated fresh on every render tick; it is not a stored row attribute.
func ShouldBlink(row Row, now time.Time) bool {
	if row.Passed {
		return false
	}
	tp, ok := EffectiveTime(row, now)
	if !ok {
		return false
	}
	return tp.Diff >= -PastGrace && tp.Diff <= BlinkAhead
}
