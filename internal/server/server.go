// Package server exposes the two HTTP collaborators the board consumes:
// GET /board and GET /stations. It validates and normalizes at this boundary
// so the core engine downstream never re-checks upstream formats.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/partidas-board/partidas/internal/schedule"
	"github.com/partidas-board/partidas/internal/upstream"
)

// statusClientClosedRequest mirrors the nginx convention for requests the
// client abandoned; such failures are never the upstream's fault.
const statusClientClosedRequest = 499

// BoardSource is the upstream half of the collaborators.
type BoardSource interface {
	StationBoard(ctx context.Context, stationID string, now time.Time) (*schedule.Board, error)
	SearchStations(ctx context.Context, query string) ([]upstream.Station, error)
}

// Options configures the router.
type Options struct {
	// AllowedOrigins for CORS; empty allows any origin.
	AllowedOrigins []string
}

type handler struct {
	src BoardSource
}

// New builds the router over the given source.
func New(src BoardSource, opts Options) http.Handler {
	h := &handler{src: src}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", h.health)
	r.Get("/board", h.board)
	r.Get("/stations", h.stations)
	return r
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *handler) board(w http.ResponseWriter, r *http.Request) {
	stationID := strings.TrimSpace(r.URL.Query().Get("stationId"))
	now := time.Now()

	// No station selected: serve the illustrative snapshot, not live data.
	if stationID == "" {
		writeJSON(w, http.StatusOK, upstream.Placeholder(now.UTC().Format(time.RFC3339)))
		return
	}

	board, err := h.src.StationBoard(r.Context(), stationID, now)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			writeError(w, statusClientClosedRequest, "Pedido cancelado.")
			return
		}
		log.Printf("board: station %s: %v", stationID, err)
		writeError(w, http.StatusBadGateway, "Não foi possível obter o painel da estação selecionada.")
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *handler) stations(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	// Reject short queries before any upstream call.
	if len([]rune(query)) < 2 {
		writeError(w, http.StatusBadRequest, "Parâmetro 'q' deve conter pelo menos 2 caracteres.")
		return
	}

	stations, err := h.src.SearchStations(r.Context(), query)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			writeError(w, statusClientClosedRequest, "Pedido cancelado.")
			return
		}
		log.Printf("stations: %q: %v", query, err)
		writeError(w, http.StatusBadGateway, "Não foi possível obter as estações.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stations": stations})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusRecorder captures the status code for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogger tags each request with a short id and logs method, path,
// status, and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()[:8]
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %s -> %d (%s)", id, r.Method, r.URL.RequestURI(), rec.status, time.Since(start).Truncate(time.Millisecond))
	})
}
