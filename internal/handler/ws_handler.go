/*
Package handler provides the HTTP handler function for WebSocket connection upgrading and initialization.

This file contains the HandleWebSocket function, which is responsible for rate limiting,
upgrading the HTTP connection to WebSocket, and initiating the client lifecycle. Clients
arrive anonymous and roomless; they announce their room with a join-room event.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"checkinhub/internal/app/activity"
	"checkinhub/internal/pkg/errs"
	"checkinhub/internal/pkg/limiter"
	"checkinhub/internal/pkg/logx"
	"checkinhub/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := activity.NewClient(deps.Coordinator, conn)

		go client.WritePump()

		logx.Info("WebSocket connection established", "connection_id", client.ID())

		client.ReadPump()
	}
}
