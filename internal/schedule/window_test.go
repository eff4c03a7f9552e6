package schedule

import (
	"fmt"
	"testing"
	"time"
)

func TestVisibleDropsPassed(t *testing.T) {
	now := at(7, 0, 0, 0)
	rows := []Row{
		{ID: "a", Time: "07:10", Passed: true},
		{ID: "b", Time: "07:20"},
	}
	got := Visible(rows, now)
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("Visible() = %v, want only row b", got)
	}
}

func TestVisibleGraceBoundary(t *testing.T) {
	// Exactly two minutes past stays on the board; one millisecond more
	// drops the row.
	row := []Row{{ID: "r", Time: "07:30"}}

	now := at(7, 32, 0, 0) // diff = -120000ms
	if got := Visible(row, now); len(got) != 1 {
		t.Errorf("row at exactly -2m dropped, want retained")
	}

	now = at(7, 32, 0, 1) // diff = -120001ms
	if got := Visible(row, now); len(got) != 0 {
		t.Errorf("row past -2m retained, want dropped")
	}
}

func TestVisibleRemarkTimeTakesPrecedence(t *testing.T) {
	// The nominal time is long gone, but the remarks promise a later
	// departure; the remark-derived offset is the reference.
	now := at(7, 31, 0, 0)
	rows := []Row{{ID: "r", Time: "07:00", Remarks: "Prevista partida às 07:50"}}
	if got := Visible(rows, now); len(got) != 1 {
		t.Error("row with future remark time dropped, want retained")
	}

	// And the reverse: fresh nominal time, remarks pointing well into the
	// past. The remark offset governs.
	rows = []Row{{ID: "r", Time: "07:45", Remarks: "Partiu às 07:05"}}
	if got := Visible(rows, now); len(got) != 0 {
		t.Error("row with stale remark time retained, want dropped")
	}
}

func TestVisibleKeepsUndeterminedTiming(t *testing.T) {
	now := at(7, 0, 0, 0)
	rows := []Row{{ID: "r", Time: "", Remarks: "sem hora definida"}}
	if got := Visible(rows, now); len(got) != 1 {
		t.Error("row with no determinable timing dropped, want kept")
	}
}

func TestVisibleTruncatesInUpstreamOrder(t *testing.T) {
	now := at(7, 0, 0, 0)
	var rows []Row
	for i := 0; i < 7; i++ {
		rows = append(rows, Row{
			ID:   fmt.Sprintf("dep-%d", i),
			Time: fmt.Sprintf("%02d:15", 8+i),
		})
	}

	got := Visible(rows, now)
	if len(got) != MaxVisibleRows {
		t.Fatalf("len = %d, want %d", len(got), MaxVisibleRows)
	}
	for i, row := range got {
		want := fmt.Sprintf("dep-%d", i)
		if row.ID != want {
			t.Errorf("row[%d].ID = %q, want %q (upstream order preserved)", i, row.ID, want)
		}
	}
}

func TestShouldBlinkBounds(t *testing.T) {
	row := Row{Time: "07:30"}
	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"exactly -2m", at(7, 32, 0, 0), true},
		{"just past -2m", at(7, 32, 0, 1), false},
		{"exactly +5m", at(7, 25, 0, 0), true},
		{"just before +5m window", time.Date(2026, time.March, 14, 7, 24, 59, 999*int(time.Millisecond), lisbon), false},
		{"inside the window", at(7, 30, 0, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldBlink(row, tt.now); got != tt.want {
				t.Errorf("ShouldBlink at %v = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestShouldBlinkExclusions(t *testing.T) {
	now := at(7, 30, 0, 0)
	if ShouldBlink(Row{Time: "07:30", Passed: true}, now) {
		t.Error("passed row must never blink")
	}
	if ShouldBlink(Row{Time: ""}, now) {
		t.Error("row without an effective time must not blink")
	}
}

func TestShouldBlinkUsesEffectiveTime(t *testing.T) {
	// Nominal time is imminent but the remarks push the train 30 minutes
	// out; the effective time decides, so no blink.
	now := at(7, 30, 0, 0)
	row := Row{Time: "07:31", Status: StatusDelayed, Remarks: "Prevista partida às 08:00"}
	if ShouldBlink(row, now) {
		t.Error("row effectively 30m away must not blink")
	}
}
