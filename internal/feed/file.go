package feed

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/partidas-board/partidas/internal/schedule"
)

// Load reads a board snapshot from a JSON file, the same shape the /board
// endpoint serves. Used by offline mode, where the file stands in for the
// poll cycle and a Watcher stands in for the refresh timer.
func Load(path string) (*schedule.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feed file: %w", err)
	}

	var board schedule.Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if board.Departures == nil {
		board.Departures = []schedule.Row{}
	}
	if board.Arrivals == nil {
		board.Arrivals = []schedule.Row{}
	}
	return &board, nil
}
