// partidasd serves the departures-board HTTP API.
//
// It proxies the Infraestruturas de Portugal schedule feed, normalizing its
// loosely-typed rows into the board shape, and exposes:
//
//	GET /board?stationId=<id>   one complete board snapshot
//	GET /stations?q=<name>      station name search (min 2 characters)
//	GET /health                 liveness probe
//
// Omitting stationId returns a fixed illustrative snapshot for display when
// no station is selected.
//
// Configuration via environment (a .env file is honored when present):
//
//	PARTIDAS_ADDR             listen address (default :8080)
//	PARTIDAS_UPSTREAM_BASE    schedule endpoint base URL
//	PARTIDAS_STATIONS_URL     station search endpoint base URL
//	PARTIDAS_ALLOWED_ORIGINS  comma-separated CORS origins (default any)
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/partidas-board/partidas/internal/server"
	"github.com/partidas-board/partidas/internal/upstream"
)

// Version is set via ldflags at build time (e.g. -X main.Version=v0.1.0).
var Version = "dev"

func main() {
	// Base .env first, then .env.local overriding for local development.
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	addr := flag.String("addr", getEnv("PARTIDAS_ADDR", ":8080"), "listen address")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("partidasd %s\n", Version)
		os.Exit(0)
	}

	src := upstream.New(
		os.Getenv("PARTIDAS_UPSTREAM_BASE"),
		os.Getenv("PARTIDAS_STATIONS_URL"),
	)

	var origins []string
	if raw := os.Getenv("PARTIDAS_ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.New(src, server.Options{AllowedOrigins: origins}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("partidasd %s listening on %s", Version, *addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("partidasd: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
