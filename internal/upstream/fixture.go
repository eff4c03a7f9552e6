package upstream

import "github.com/partidas-board/partidas/internal/schedule"

// Placeholder returns the fixed illustrative snapshot served when no station
// is selected. It is display filler, not live data, and deliberately shows
// every row state the board can render.
func Placeholder(lastUpdated string) *schedule.Board {
	return &schedule.Board{
		LastUpdated: lastUpdated,
		Message:     "Operação normal",
		Departures: []schedule.Row{
			{
				ID:          "dep-1",
				Time:        "07:38",
				Destination: "SINTRA",
				Line:        "2",
				Service:     "SUBU 18220",
				Status:      schedule.StatusSuppressed,
				Remarks:     "Greve CP - Perturbações",
			},
			{
				ID:          "dep-2",
				Time:        "07:45",
				Destination: "SINTRA",
				Line:        "4",
				Service:     "SUBU 16004",
				Status:      schedule.StatusSuppressed,
				Remarks:     "Greve CP - Perturbações",
			},
			{
				ID:          "dep-3",
				Time:        "07:53",
				Destination: "TOMAR",
				Line:        "5",
				Service:     "REGI 4407",
				Status:      schedule.StatusSuppressed,
				Remarks:     "Greve CP - Perturbações",
			},
		},
		Arrivals: []schedule.Row{
			{
				ID:      "arr-1",
				Time:    "07:32",
				Origin:  "SINTRA",
				Line:    "2",
				Service: "SUBU 18219",
				Status:  schedule.StatusDelayed,
				Remarks: "Prevista chegada às 07:40",
			},
			{
				ID:      "arr-2",
				Time:    "07:50",
				Origin:  "CASTANHEIRA",
				Line:    "3",
				Service: "SUBU 18223",
				Status:  schedule.StatusOnTime,
				Remarks: "",
			},
		},
	}
}
