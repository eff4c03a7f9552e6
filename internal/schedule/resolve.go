package schedule

import (
	"strings"
	"time"
)

// statusRules is the upstream-origin classification table applied to
// lower-cased remarks at the feed boundary, first match wins. Kept as data so
// ambiguous upstream phrasing is a test input, not an inline guess.
var statusRules = []struct {
	needle string
	status Status
}{
	{"suprim", StatusSuppressed},
	{"atras", StatusDelayed},
}

// InferStatus classifies free-text remarks into an operational status.
// Remarks with no recognizable signal default to on-time.
func InferStatus(remarks string) Status {
	lower := strings.ToLower(remarks)
	for _, rule := range statusRules {
		if strings.Contains(lower, rule.needle) {
			return rule.status
		}
	}
	return StatusOnTime
}

// RowFlags is the display-time classification: delayed/suppressed styling
// flags computed per render from the literal remark text OR the stored
// status. The two sources may disagree (the stored status can lag a remark
// edit), which is why both are always consulted.
func RowFlags(row Row) (delayed, suppressed bool) {
	rmk := strings.ToLower(row.Remarks)
	st := row.Status.norm()
	delayed = strings.Contains(rmk, "circula com atraso") || st == StatusDelayed
	suppressed = strings.Contains(rmk, "suprimido") || st == StatusSuppressed
	return delayed, suppressed
}

// EffectiveTime resolves the single departure/arrival instant all downstream
// decisions use. Priority order:
//
//  1. A replacement time in the remarks overrides the nominal schedule
//     entirely.
//  2. Otherwise the nominal time field is parsed; if absent the effective
//     time is undefined.
//  3. A remark delay figure, or a bare delayed status (0 minutes), shifts the
//     nominal target.
//  4. Otherwise the nominal time stands unchanged.
//
// Diff is always computed against the now passed in, never a cached instant.
func EffectiveTime(row Row, now time.Time) (TimePoint, bool) {
	if tp, ok := RemarkTime(row.Remarks, now); ok {
		return tp, true
	}

	nominal, ok := ParseClock(row.Time, now)
	if !ok {
		return TimePoint{}, false
	}

	delay, hasDelay := DelayMinutes(row.Remarks)
	if hasDelay || row.Status.norm() == StatusDelayed {
		target := nominal.Target.Add(time.Duration(delay) * time.Minute)
		return TimePoint{Target: target, Diff: target.Sub(now)}, true
	}

	return nominal, true
}
