package main

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mcdev12/planpoker/go/internal/rpc"
)

func setupServer(config *Config, services *Services, database *sql.DB) *http.Server {
	mux := http.NewServeMux()

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedOrigins: config.CORS.AllowedOrigins,
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{rpc.ReasonHeader},
	})

	registerServices(mux, services)
	setupHealthCheck(mux, database)

	handler := c.Handler(mux)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", config.Server.Port),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: config.Server.ReadTimeout,
	}
}

func registerServices(mux *http.ServeMux, services *Services) {
	roomPath, roomHandler := rpc.NewRoomServiceHandler(services.Rooms)
	mux.Handle(roomPath, roomHandler)

	votingPath, votingHandler := rpc.NewVotingServiceHandler(services.Voting)
	mux.Handle(votingPath, votingHandler)
}

func setupHealthCheck(mux *http.ServeMux, database *sql.DB) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := database.PingContext(r.Context()); err != nil {
			log.Warn().Err(err).Msg("health check: database unreachable")
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})
}
