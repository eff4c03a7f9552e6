// Package schedule is the board reconciliation engine: it turns raw schedule
// rows plus an explicit "now" into effective departure instants, operational
// status flags, and a windowed, display-ready row selection.
//
// Every function here is pure. Time never comes from the environment; callers
// inject the reference instant on each evaluation, so identical inputs always
// produce identical output. Rows are immutable once decoded: a refresh
// replaces the whole Board rather than mutating rows in place.
package schedule

import (
	"strings"
	"time"
)

// Status is the operational state of a row as inferred at the feed boundary.
type Status string

const (
	StatusOnTime     Status = "pontual"
	StatusDelayed    Status = "atrasado"
	StatusSuppressed Status = "suprimido"
)

// StatusLabels maps a status to its display wording, used when a row carries
// no remarks text of its own.
var StatusLabels = map[Status]string{
	StatusOnTime:     "Pontual",
	StatusDelayed:    "Atrasado",
	StatusSuppressed: "Suprimido",
}

// Label returns the display wording for s, or "" for an unknown status.
func (s Status) Label() string {
	return StatusLabels[s.norm()]
}

// norm lower-cases and trims a status so comparisons survive upstream
// variations in casing.
func (s Status) norm() Status {
	return Status(strings.ToLower(strings.TrimSpace(string(s))))
}

// Row is one schedule entry. Exactly one of Destination/Origin is set,
// depending on whether the row is a departure or an arrival. All fields are
// already coerced to plain values by the feed boundary; the engine never
// re-validates upstream formats.
type Row struct {
	ID      string `json:"id"`
	Time    string `json:"time"`
	Line    string `json:"line"`
	Service string `json:"service"`
	Status  Status `json:"status"`
	Remarks string `json:"remarks"`
	Passed  bool   `json:"passed"`

	Destination string `json:"destination,omitempty"`
	Origin      string `json:"origin,omitempty"`
}

// Board is one complete poll result. It is replaced wholesale on each
// successful refresh and never partially merged.
type Board struct {
	LastUpdated string `json:"lastUpdated"`
	Message     string `json:"message"`
	Departures  []Row  `json:"departures"`
	Arrivals    []Row  `json:"arrivals"`
}

// TimePoint is an absolute instant paired with its signed offset from the
// "now" it was computed against. It is derived state: recomputed on every
// tick, never cached, because now advances independently of the feed.
type TimePoint struct {
	Target time.Time
	Diff   time.Duration
}
