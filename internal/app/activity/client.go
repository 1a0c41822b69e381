/*
Package activity contains the core logic of the live check-in event.

This file defines the Client struct, representing an active WebSocket
connection. It runs the read and write pumps, decodes inbound event frames,
and hands them to the Coordinator's dispatch loop.
*/
package activity

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"checkinhub/internal/pkg/logx"
)

const (
	// timeout for writing a frame to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time to wait for a Pong from the client.
	pongWait = 60 * time.Second

	// frequency of server Ping frames.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of an inbound frame.
	maxMessageSize = 8192
)

// Client binds one WebSocket to its broker-level connection identity.
type Client struct {
	coordinator *Coordinator
	ws          *websocket.Conn
	conn        *connection
	logger      zerolog.Logger
}

// NewClient registers a connection identity with the coordinator and wraps
// the WebSocket around it.
func NewClient(coordinator *Coordinator, ws *websocket.Conn) *Client {
	conn := coordinator.Connect()

	clientLogger := logx.Logger().With().
		Str("component", "client").
		Str("connection_id", conn.id).
		Logger()

	return &Client{
		coordinator: coordinator,
		ws:          ws,
		conn:        conn,
		logger:      clientLogger,
	}
}

// ID returns the connection id assigned to this client.
func (c *Client) ID() string {
	return c.conn.id
}

// ReadPump reads event frames from the WebSocket until the connection drops,
// queueing each decoded frame on the coordinator. It handles heartbeat Pongs
// and performs disconnect cleanup on exit.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.ws.SetReadLimit(maxMessageSize)

	if err := c.ws.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading frame (client close/going away)")
			}
			break
		}

		c.processInboundFrame(frame)
	}
}

// cleanupOnDisconnect queues best-effort removal with the coordinator and
// closes the socket.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	c.coordinator.Disconnect(c.conn)

	if err := c.ws.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Client connection close error")
	}
}

// processInboundFrame decodes one envelope and queues it for dispatch.
// Malformed frames are logged and dropped; the core never fails on them.
func (c *Client) processInboundFrame(frame []byte) {
	var envelope Envelope
	if err := json.Unmarshal(frame, &envelope); err != nil {
		c.logger.Warn().Err(err).
			Bytes("frame", frame).
			Msg("Client sent invalid JSON")
		return
	}

	if envelope.Event == "" {
		c.logger.Warn().Msg("Client sent frame without event name")
		return
	}

	c.coordinator.Dispatch(c.conn.id, envelope.Event, envelope.Payload)
}

// WritePump drains the connection's send queue onto the WebSocket and keeps
// the heartbeat alive. It exits when the queue is closed or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.ws.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.conn.send:
			if !c.writeQueuedFrame(frame, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePing() {
				return
			}
		}
	}
}

// writeQueuedFrame writes one queued frame, or the close frame when the send
// queue has been closed. Returns false when the pump should terminate.
func (c *Client) writeQueuedFrame(frame []byte, ok bool) bool {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.ws.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Error().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.logger.Error().Err(err).Msg("Error writing frame")
		return false
	}

	return true
}

// writePing sends the periodic heartbeat Ping. Returns false on write failure.
func (c *Client) writePing() bool {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
