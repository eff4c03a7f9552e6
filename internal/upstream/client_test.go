package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/partidas-board/partidas/internal/schedule"
)

// rawBoard exercises the loose upstream typing: numeric ids, numeric
// booleans, null strings.
const rawBoard = `{
	"response": [
		{
			"TipoPedido": 1,
			"NodesComboioTabelsPartidasChegadas": [
				{
					"DataHoraPartidaChegada": "07:38",
					"DataHoraPartidaChegada_ToOrderByi": 202603140738,
					"Linha": " 2 ",
					"TipoServico": "SUBU",
					"NComboio1": 18220,
					"Observacoes": " Comboio suprimido ",
					"ComboioPassou": 0,
					"NomeEstacaoDestino": "SINTRA"
				},
				{
					"DataHoraPartidaChegada": "07:45",
					"Linha": null,
					"TipoServico": "",
					"NComboio2": "16004",
					"Observacoes": null,
					"ComboioPassou": 1,
					"NomeEstacaoDestino": "SINTRA"
				}
			]
		},
		{
			"TipoPedido": 2,
			"NodesComboioTabelsPartidasChegadas": [
				{
					"DataHoraPartidaChegada": "07:32",
					"DataHoraPartidaChegada_ToOrderByi": "202603140732",
					"TipoServico": "SUBU",
					"NComboio1": "18219",
					"Observacoes": "Circula com atraso de 8 minutos",
					"ComboioPassou": false,
					"NomeEstacaoOrigem": "SINTRA"
				}
			]
		}
	]
}`

func TestStationBoardMapping(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(rawBoard))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.URL)
	now := time.Date(2026, time.March, 14, 7, 30, 0, 0, time.UTC)
	board, err := c.StationBoard(context.Background(), "9434004", now)
	if err != nil {
		t.Fatalf("StationBoard: %v", err)
	}

	// Path carries station, the -60m/+12h window, and the service classes.
	for _, segment := range []string{"9434004", "2026-03-14%2006:30", "2026-03-14%2019:30", "URB%7CSUBUR"} {
		if !strings.Contains(gotPath, segment) {
			t.Errorf("path %q missing segment %q", gotPath, segment)
		}
	}

	if len(board.Departures) != 2 {
		t.Fatalf("departures = %d, want 2", len(board.Departures))
	}

	dep := board.Departures[0]
	if dep.ID != "202603140738" {
		t.Errorf("numeric order key coerced to %q", dep.ID)
	}
	if dep.Line != "2" {
		t.Errorf("Line = %q, want trimmed", dep.Line)
	}
	if dep.Service != "SUBU 18220" {
		t.Errorf("Service = %q", dep.Service)
	}
	if dep.Remarks != "Comboio suprimido" {
		t.Errorf("Remarks = %q, want trimmed", dep.Remarks)
	}
	if dep.Status != schedule.StatusSuppressed {
		t.Errorf("Status = %q, want inferred suppressed", dep.Status)
	}
	if dep.Passed {
		t.Error("ComboioPassou 0 coerced to true")
	}
	if dep.Destination != "SINTRA" {
		t.Errorf("Destination = %q", dep.Destination)
	}

	dep = board.Departures[1]
	if dep.ID != "departures-1" {
		t.Errorf("missing order key should fall back to positional id, got %q", dep.ID)
	}
	if dep.Line != "" || dep.Remarks != "" {
		t.Errorf("null fields should coerce to empty strings: %+v", dep)
	}
	if dep.Service != "16004" {
		t.Errorf("Service = %q, want bare second train number", dep.Service)
	}
	if !dep.Passed {
		t.Error("ComboioPassou 1 coerced to false")
	}
	if dep.Status != schedule.StatusOnTime {
		t.Errorf("Status = %q, want default on-time", dep.Status)
	}

	if len(board.Arrivals) != 1 {
		t.Fatalf("arrivals = %d, want 1", len(board.Arrivals))
	}
	arr := board.Arrivals[0]
	if arr.Origin != "SINTRA" || arr.Status != schedule.StatusDelayed {
		t.Errorf("arrival = %+v", arr)
	}
}

func TestStationBoardEmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": []}`))
	}))
	defer srv.Close()

	board, err := New(srv.URL, srv.URL).StationBoard(context.Background(), "x", time.Now())
	if err != nil {
		t.Fatalf("StationBoard: %v", err)
	}
	if board.Departures == nil || board.Arrivals == nil {
		t.Error("empty payload should yield empty slices, not nil")
	}
}

func TestStationBoardUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream indisponível", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := New(srv.URL, srv.URL).StationBoard(context.Background(), "x", time.Now()); err == nil {
		t.Error("expected error on non-200 upstream status")
	}
}

func TestSearchStations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.EscapedPath(), "/lisboa") {
			t.Errorf("path = %q, want query in final segment", r.URL.EscapedPath())
		}
		w.Write([]byte(`{"response": [
			{"NodeID": 9434004, "Nome": "Lisboa - Oriente", "Distancia": 1.2},
			{"NodeID": null, "Nome": "Lisboa - Rossio"}
		]}`))
	}))
	defer srv.Close()

	stations, err := New(srv.URL, srv.URL).SearchStations(context.Background(), "lisboa")
	if err != nil {
		t.Fatalf("SearchStations: %v", err)
	}
	if len(stations) != 2 {
		t.Fatalf("len = %d, want 2", len(stations))
	}
	if stations[0].ID != "9434004" || stations[0].Distance != 1.2 {
		t.Errorf("stations[0] = %+v", stations[0])
	}
	if stations[1].ID != "" {
		t.Errorf("null NodeID should coerce to empty id, got %q", stations[1].ID)
	}
}

func TestPlaceholderShape(t *testing.T) {
	board := Placeholder("2026-03-14T07:30:00Z")
	if len(board.Departures) != 3 || len(board.Arrivals) != 2 {
		t.Fatalf("placeholder = %d departures, %d arrivals", len(board.Departures), len(board.Arrivals))
	}

	// The snapshot must round-trip through the wire shape the client reads.
	data, err := json.Marshal(board)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back schedule.Board
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Departures[0].Destination != "SINTRA" || back.Arrivals[0].Origin != "SINTRA" {
		t.Errorf("round-trip lost direction fields: %+v", back)
	}
}
