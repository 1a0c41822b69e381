/*
Package handler provides the HTTP handlers and routing setup for the check-in activity server.

This file contains the read-only API handlers: simple projections of the coordinator's
in-memory state. Nothing here mutates; all mutation arrives over the WebSocket.
*/
package handler

import (
	"net/http"
	"time"

	"checkinhub/internal/pkg/resp"
)

// HandleIndex lists the service endpoints.
func HandleIndex(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"service": "Check-in Activity Server",
			"endpoints": []string{
				"/ws",
				"/api/stats",
				"/api/users",
				"/api/checkins",
				"/health",
			},
		}
		resp.RespondSuccess(w, r, data)
	}
}

// HandleStats returns the currently published statistics snapshot.
func HandleStats(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, deps.Coordinator.Stats())
	}
}

// HandleUsers returns the last-known state of every user.
func HandleUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, deps.Coordinator.Users())
	}
}

// HandleCheckins returns the retained check-in records, most recent first.
func HandleCheckins(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, deps.Coordinator.Checkins())
	}
}

// HandleHealth reports liveness, uptime, and per-room connection counts.
func HandleHealth(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"status":      "ok",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"uptime":      time.Since(deps.StartedAt).String(),
			"connections": deps.Coordinator.RoomCounts(),
		}
		resp.RespondSuccess(w, r, data)
	}
}
