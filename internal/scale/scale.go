// Package scale computes the per-axis factors that map the fixed logical
// board canvas onto the actual viewport, clamped to sane bounds. The math is
// pure; Tracker adds the dead zone that suppresses redundant re-layout.
package scale

import "math"

const (
	// BaseWidth and BaseHeight are the logical board canvas.
	BaseWidth  = 1280.0
	BaseHeight = 720.0

	// Min and Max bound each axis factor.
	Min = 0.1
	Max = 10.0

	// deadZone is the per-axis change below which an update is a no-op.
	deadZone = 0.01
)

// XY is a per-axis scale factor pair.
type XY struct {
	X float64
	Y float64
}

// Clamp bounds a raw factor to [Min, Max]. Non-finite or non-positive values
// fall back to the identity scale.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 1
	}
	if v < Min {
		return Min
	}
	if v > Max {
		return Max
	}
	return v
}

// Compute maps a viewport onto a base canvas, independently per axis. A
// non-finite or non-positive dimension on either side of an axis yields the
// identity scale for that axis rather than an error; the board must always
// render.
func Compute(viewportW, viewportH, baseW, baseH float64) XY {
	return XY{
		X: axis(viewportW, baseW),
		Y: axis(viewportH, baseH),
	}
}

func axis(viewport, base float64) float64 {
	if math.IsNaN(viewport) || math.IsInf(viewport, 0) || viewport <= 0 {
		return 1
	}
	if math.IsNaN(base) || math.IsInf(base, 0) || base <= 0 {
		return 1
	}
	return Clamp(viewport / base)
}

// Tracker holds the current scale and applies the dead zone: recomputing with
// inputs that move either axis by less than 0.01 leaves the scale untouched,
// so resize handling stays idempotent and re-entrant-safe.
type Tracker struct {
	cur XY
}

// NewTracker starts at the identity scale.
func NewTracker() *Tracker {
	return &Tracker{cur: XY{X: 1, Y: 1}}
}

// Current returns the scale as of the last accepted update.
func (t *Tracker) Current() XY {
	return t.cur
}

// Update recomputes the scale for the given viewport and canvas and reports
// whether it moved beyond the dead zone. Suppressed updates return the
// previous scale unchanged.
func (t *Tracker) Update(viewportW, viewportH, baseW, baseH float64) (XY, bool) {
	next := Compute(viewportW, viewportH, baseW, baseH)
	if math.Abs(next.X-t.cur.X) <= deadZone && math.Abs(next.Y-t.cur.Y) <= deadZone {
		return t.cur, false
	}
	t.cur = next
	return next, true
}
