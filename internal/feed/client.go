// Package feed sources board snapshots: over HTTP from the partidas API, or
// from a local JSON file watched for edits (offline/demo mode).
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/partidas-board/partidas/internal/schedule"
)

// Station is one station search hit. Fields arrive already normalized by the
// API boundary.
type Station struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Distance float64 `json:"distance,omitempty"`
}

// Client talks to the partidas board API. All requests are cancellable via
// the caller's context; the poller owns one context per in-flight purpose.
type Client struct {
	base string
	hc   *http.Client
}

// NewClient creates a client for the API at base, e.g. "http://localhost:8080".
func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Board fetches one complete board snapshot. An empty stationID asks the API
// for its illustrative no-station snapshot.
func (c *Client) Board(ctx context.Context, stationID string) (*schedule.Board, error) {
	endpoint := c.base + "/board"
	if stationID != "" {
		endpoint += "?stationId=" + url.QueryEscape(stationID)
	}

	var board schedule.Board
	if err := c.getJSON(ctx, endpoint, &board); err != nil {
		return nil, fmt.Errorf("fetch board: %w", err)
	}
	if board.Departures == nil {
		board.Departures = []schedule.Row{}
	}
	if board.Arrivals == nil {
		board.Arrivals = []schedule.Row{}
	}
	return &board, nil
}

// SearchStations queries the station search endpoint. The API rejects queries
// shorter than two characters; callers gate on that before issuing a request.
func (c *Client) SearchStations(ctx context.Context, query string) ([]Station, error) {
	endpoint := c.base + "/stations?q=" + url.QueryEscape(query)

	var payload struct {
		Stations []Station `json:"stations"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("search stations: %w", err)
	}
	return payload.Stations, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// The API wraps failures in a JSON envelope; surface its message
		// when present.
		var envelope struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&envelope) == nil && envelope.Error != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode, envelope.Error)
		}
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
