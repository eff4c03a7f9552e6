package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/partidas-board/partidas/internal/schedule"
)

const (
	defaultScheduleBase = "https://www.infraestruturasdeportugal.pt/negocios-e-servicos/partidas-chegadas"
	defaultStationsBase = "https://www.infraestruturasdeportugal.pt/negocios-e-servicos/estacao-nome"

	// The query window around now handed to the schedule endpoint.
	lookbehind = 60 * time.Minute
	lookahead  = 12 * time.Hour
)

// defaultServices are the service classes requested when none are configured.
var defaultServices = []string{"INTERNACIONAL", "ALFA", "IC", "IR", "REGIONAL", "URB|SUBUR", "ESPECIAL"}

// Station is a normalized station-search hit.
type Station struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Distance float64 `json:"distance,omitempty"`
}

// Client fetches and normalizes the IP partidas-chegadas feed.
type Client struct {
	scheduleBase string
	stationsBase string
	hc           *http.Client
}

// New creates a client. Empty base URLs fall back to the production endpoints.
func New(scheduleBase, stationsBase string) *Client {
	if scheduleBase == "" {
		scheduleBase = defaultScheduleBase
	}
	if stationsBase == "" {
		stationsBase = defaultStationsBase
	}
	return &Client{
		scheduleBase: strings.TrimRight(scheduleBase, "/"),
		stationsBase: strings.TrimRight(stationsBase, "/"),
		hc: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// StationBoard fetches the schedule window around now for one station and
// maps it into a Board. The upstream row order is preserved untouched.
func (c *Client) StationBoard(ctx context.Context, stationID string, now time.Time) (*schedule.Board, error) {
	endpoint := c.scheduleURL(stationID, now)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch station board: %w", err)
	}

	var payload schedulePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode station board: %w", err)
	}

	board := &schedule.Board{
		LastUpdated: now.Format(time.RFC3339),
		Message:     "",
		Departures:  []schedule.Row{},
		Arrivals:    []schedule.Row{},
	}
	for _, section := range payload.Response {
		switch section.TipoPedido {
		case 1:
			board.Departures = mapRows(section.Entries, "departures")
		case 2:
			board.Arrivals = mapRows(section.Entries, "arrivals")
		}
	}
	return board, nil
}

// SearchStations queries the station-name endpoint. Callers validate query
// length before reaching this point.
func (c *Client) SearchStations(ctx context.Context, query string) ([]Station, error) {
	endpoint := c.stationsBase + "/" + url.PathEscape(query)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("search stations: %w", err)
	}

	var payload stationPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode stations: %w", err)
	}

	stations := make([]Station, 0, len(payload.Response))
	for _, entry := range payload.Response {
		stations = append(stations, Station{
			ID:       string(entry.NodeID),
			Name:     string(entry.Nome),
			Distance: entry.Distancia,
		})
	}
	return stations, nil
}

// scheduleURL builds the windowed schedule path:
// <base>/<station>/<now-60m>/<now+12h>/<services>.
func (c *Client) scheduleURL(stationID string, now time.Time) string {
	const stamp = "2006-01-02 15:04"
	start := now.Add(-lookbehind).Format(stamp)
	end := now.Add(lookahead).Format(stamp)
	services := strings.Join(defaultServices, ", ")

	return c.scheduleBase + "/" +
		url.PathEscape(stationID) + "/" +
		url.PathEscape(start) + "/" +
		url.PathEscape(end) + "/" +
		url.PathEscape(services)
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "pt-PT,pt;q=0.9,en;q=0.8")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

// mapRows normalizes raw entries into engine rows. The id falls back to a
// positional key when the upstream order key is absent; uniqueness is
// best-effort only.
func mapRows(entries []scheduleEntry, kind string) []schedule.Row {
	rows := make([]schedule.Row, 0, len(entries))
	for i, entry := range entries {
		remarks := strings.TrimSpace(string(entry.Observacoes))

		id := string(entry.OrderKey)
		if id == "" {
			id = fmt.Sprintf("%s-%d", kind, i)
		}

		row := schedule.Row{
			ID:      id,
			Time:    string(entry.DataHoraPartidaChegada),
			Line:    strings.TrimSpace(string(entry.Linha)),
			Service: serviceLabel(entry),
			Status:  schedule.InferStatus(remarks),
			Remarks: remarks,
			Passed:  bool(entry.ComboioPassou),
		}
		if kind == "departures" {
			row.Destination = string(entry.NomeEstacaoDestino)
		} else {
			row.Origin = string(entry.NomeEstacaoOrigem)
		}
		rows = append(rows, row)
	}
	return rows
}

// serviceLabel assembles the human-readable service label from the service
// type and whichever train number is present.
func serviceLabel(entry scheduleEntry) string {
	typ := strings.TrimSpace(string(entry.TipoServico))
	code := string(entry.NComboio1)
	if code == "" {
		code = string(entry.NComboio2)
	}

	switch {
	case typ != "" && code != "":
		return typ + " " + code
	case code != "":
		return code
	default:
		return typ
	}
}
