/*
Package handler provides the HTTP handlers and routing setup for the check-in activity server.

This file defines the main Router, applying necessary middleware like logging, CORS,
and IP-based rate limiting before delegating requests to the API and WebSocket handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"checkinhub/internal/pkg/limiter"
	"checkinhub/internal/pkg/logx"
)

const (
	// ConnectRate limits how many WebSocket connections per second one IP may open.
	ConnectRate = 0.5

	// ConnectBurst allows short reconnect storms (e.g. a venue-wide page reload).
	ConnectBurst = 10

	// APIRate limits polling of the read-only projections per IP.
	APIRate = 5

	// APIBurst covers an admin dashboard loading all projections at once.
	APIBurst = 20
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes the per-IP connection limiter, configures CORS, and applies
// global middleware before mounting the read-only API and the WebSocket endpoint.
func Router(deps *AppDeps) http.Handler {
	connectLimiter := limiter.NewIPRateLimiter(rate.Limit(ConnectRate), ConnectBurst)
	apiLimiter := limiter.NewIPRateLimiter(rate.Limit(APIRate), APIBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/", HandleIndex(deps))
	r.Get("/health", HandleHealth(deps))

	r.Route("/api", func(api chi.Router) {
		api.Use(apiLimiter.Middleware)

		api.Get("/stats", HandleStats(deps))
		api.Get("/users", HandleUsers(deps))
		api.Get("/checkins", HandleCheckins(deps))
	})

	r.Get("/ws", HandleWebSocket(wsUpgrader, connectLimiter, deps))

	return r
}
