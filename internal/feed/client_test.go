package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const boardJSON = `{
	"lastUpdated": "2026-03-14T07:30:00Z",
	"message": "Operação normal",
	"departures": [
		{"id": "dep-1", "time": "07:38", "destination": "SINTRA", "line": "2",
		 "service": "SUBU 18220", "status": "suprimido", "remarks": "Greve CP - Perturbações"}
	],
	"arrivals": []
}`

func TestClientBoard(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("stationId")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(boardJSON))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	board, err := c.Board(context.Background(), "9434004")
	if err != nil {
		t.Fatalf("Board: %v", err)
	}

	if gotPath != "/board" {
		t.Errorf("path = %q, want /board", gotPath)
	}
	if gotQuery != "9434004" {
		t.Errorf("stationId = %q, want 9434004", gotQuery)
	}
	if board.Message != "Operação normal" {
		t.Errorf("Message = %q", board.Message)
	}
	if len(board.Departures) != 1 || board.Departures[0].Destination != "SINTRA" {
		t.Errorf("Departures = %+v", board.Departures)
	}
	if board.Arrivals == nil {
		t.Error("Arrivals should decode to an empty slice, not nil")
	}
}

func TestClientBoardNoStation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("stationId") {
			t.Errorf("unexpected stationId param: %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"departures": [], "arrivals": []}`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Board(context.Background(), ""); err != nil {
		t.Fatalf("Board: %v", err)
	}
}

func TestClientBoardErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error": "Não foi possível obter o painel da estação selecionada."}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Board(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error on 502")
	}
	if !strings.Contains(err.Error(), "painel da estação") {
		t.Errorf("error %q should carry the envelope message", err)
	}
}

func TestClientBoardCancellation(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	done := make(chan error, 1)
	go func() {
		_, err := NewClient(srv.URL).Board(ctx, "x")
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Error("cancelled fetch returned nil error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled fetch did not return")
	}
}

func TestClientSearchStations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stations" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q != "lisboa oriente" {
			t.Errorf("q = %q", q)
		}
		w.Write([]byte(`{"stations": [
			{"id": "9434004", "name": "Lisboa - Oriente", "distance": 0.4},
			{"id": "9431039", "name": "Lisboa - Santa Apolónia"}
		]}`))
	}))
	defer srv.Close()

	stations, err := NewClient(srv.URL).SearchStations(context.Background(), "lisboa oriente")
	if err != nil {
		t.Fatalf("SearchStations: %v", err)
	}
	if len(stations) != 2 {
		t.Fatalf("len = %d, want 2", len(stations))
	}
	if stations[0].ID != "9434004" || stations[0].Name != "Lisboa - Oriente" {
		t.Errorf("stations[0] = %+v", stations[0])
	}
}

func TestClientSearchStationsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Parâmetro 'q' deve conter pelo menos 2 caracteres."}`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).SearchStations(context.Background(), "l"); err == nil {
		t.Error("expected error on 400")
	}
}
