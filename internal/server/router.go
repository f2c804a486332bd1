package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"cs2-simulator/internal/config"
	"cs2-simulator/internal/constants"
	"cs2-simulator/internal/middleware"
)

// NewRouter wires the RPC surface and the health probe behind request ids,
// per-client rate limiting and CORS.
func NewRouter(cfg *config.Config, simulator *SimulatorServer, db *sql.DB, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(logger))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), constants.DatabaseTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("health check failed")
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-ID", "Grpc-Status", "Grpc-Message"},
		AllowCredentials: true,
		MaxAge:           int((2 * time.Hour).Seconds()),
	})

	path, handler := NewSimulatorServiceHandler(simulator)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Use(c.Handler)
		r.Handle(path+"*", handler)
	})

	return r
}
