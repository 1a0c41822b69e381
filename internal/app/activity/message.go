package activity

import "encoding/json"

// Inbound event names (client to server).
const (
	EventJoinRoom     = "join-room"
	EventUserCheckin  = "user-checkin"
	EventRequestStats = "request-stats"
	EventAdminAction  = "admin-action"
	EventConfigUpdate = "config-update"
)

// Outbound event names (server to client). EventUserCheckin is reused
// outbound: the display room gets the animation trigger, the admin room the
// full record.
const (
	EventStatsUpdate      = "stats-update"
	EventCheckinSuccess   = "checkin-success"
	EventConnectionUpdate = "connection-update"
	EventSystemMessage    = "system-message"
	EventConfigUpdated    = "config-updated"
)

// Admin console actions carried by EventAdminAction.
const (
	ActionResetStats       = "reset-stats"
	ActionClearUsers       = "clear-users"
	ActionClearCheckins    = "clear-checkins"
	ActionBroadcastMessage = "broadcast-message"
)

// Envelope is the wire frame in both directions: a named event and its
// payload.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// encodeEvent marshals one outbound frame. Fan-out marshals once and reuses
// the bytes for every recipient.
func encodeEvent(event string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Payload: raw})
}

// CheckinRequest is the user-checkin payload from a handset. Timestamp is
// epoch milliseconds; zero means "stamp with server time". Location falls
// back to the configured default. UserID is taken as-is, unvalidated.
type CheckinRequest struct {
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Location  string `json:"location,omitempty"`
}

// AdminAction is the admin-action payload. Message is forwarded verbatim for
// broadcast-message and ignored otherwise.
type AdminAction struct {
	Action  string          `json:"action"`
	Message json.RawMessage `json:"message,omitempty"`
}

// ConfigUpdate is the config-update payload; only the redpack budget is
// configurable at runtime.
type ConfigUpdate struct {
	Redpack *BudgetPatch `json:"redpack,omitempty"`
}

// ConfigUpdated echoes the merged budget configuration to every client.
type ConfigUpdated struct {
	Redpack BudgetConfig `json:"redpack"`
}

// CheckinSuccess is the unicast acknowledgment sent back to the handset that
// checked in.
type CheckinSuccess struct {
	CheckinRecord
	Message string `json:"message"`
}

// DisplayCheckin is the trimmed user-checkin event sent to the display room.
// The display only needs enough to run the reward animation.
type DisplayCheckin struct {
	UserID        string  `json:"userId"`
	UserName      string  `json:"userName"`
	RedpackAmount float64 `json:"redpackAmount"`
}

// ConnectionUpdate notifies the admin room of a membership delta.
type ConnectionUpdate struct {
	Room         Room       `json:"room"`
	Action       string     `json:"action"`
	ConnectionID string     `json:"connectionId"`
	Connections  RoomCounts `json:"connections"`
}
