package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// clockPrefixRe matches an HH:MM shape at the start of a nominal time field.
var clockPrefixRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})`)

// clockAnywhereRe finds the first HH:MM shape anywhere in free text.
var clockAnywhereRe = regexp.MustCompile(`(\d{1,2}):(\d{2})`)

// delayRes are the remark patterns that carry an explicit delay figure, in
// match-priority order: "<n> minutos|min|m", then "+<n>". Values are 1-3
// digits; anything longer is read from its tail like the upstream site does.
var delayRes = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,3})\s*(?:minutos?|mins?|m)\b`),
	regexp.MustCompile(`\+\s*(\d{1,3})\b`),
}

// ParseClock converts an "HH:MM"-prefixed string into an absolute instant on
// now's date, plus its signed offset from now. A diff more than 12h in the
// past rolls the target forward one day: a 00:10 entry evaluated at 23:50 is
// tomorrow, not twenty-four hours ago. The correction is deliberately
// one-sided; times far in the future are taken at face value.
//
// Digits outside 0-23/0-59 are not rejected, they normalize through
// time.Date the same way the upstream board treats them.
func ParseClock(s string, now time.Time) (TimePoint, bool) {
	m := clockPrefixRe.FindStringSubmatch(s)
	if m == nil {
		return TimePoint{}, false
	}

	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return TimePoint{}, false
	}
	minutes, err := strconv.Atoi(m[2])
	if err != nil {
		return TimePoint{}, false
	}

	target := time.Date(now.Year(), now.Month(), now.Day(), hours, minutes, 0, 0, now.Location())
	diff := target.Sub(now)
	if diff < -12*time.Hour {
		target = target.Add(24 * time.Hour)
		diff += 24 * time.Hour
	}

	return TimePoint{Target: target, Diff: diff}, true
}

// RemarkTime extracts a replacement time from free-text remarks, e.g.
// "Prevista chegada às 07:40". The first HH:MM occurrence wins.
func RemarkTime(remarks string, now time.Time) (TimePoint, bool) {
	if remarks == "" {
		return TimePoint{}, false
	}
	m := clockAnywhereRe.FindString(remarks)
	if m == "" {
		return TimePoint{}, false
	}
	return ParseClock(m, now)
}

// DelayMinutes extracts an explicit delay-in-minutes figure from remarks,
// e.g. "atraso de 12 minutos" or "+5". Matching is case-insensitive.
func DelayMinutes(remarks string) (int, bool) {
	if remarks == "" {
		return 0, false
	}
	text := strings.ToLower(remarks)
	for _, re := range delayRes {
		if m := re.FindStringSubmatch(text); m != nil {
			minutes, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			return minutes, true
		}
	}
	return 0, false
}
