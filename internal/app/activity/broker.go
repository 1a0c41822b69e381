package activity

import (
	"github.com/rs/zerolog"
)

// EventBroker fans named events out to rooms, to everyone, or to a single
// connection. Delivery is fire-and-forget: an event is marshaled once and
// queued on each recipient's send channel; a full queue drops the frame and a
// gone connection is a no-op, never an error.
//
// The broker reads the registry without locking; the ActivityCoordinator
// serializes broker calls with registry mutations.
type EventBroker struct {
	registry *RoomRegistry
	logger   zerolog.Logger
}

func NewEventBroker(registry *RoomRegistry, logger zerolog.Logger) *EventBroker {
	return &EventBroker{
		registry: registry,
		logger:   logger.With().Str("component", "broker").Logger(),
	}
}

// ToRoom delivers the event to every connection currently in the room.
// An empty room is a no-op.
func (b *EventBroker) ToRoom(room Room, event string, payload any) {
	b.deliver(b.registry.Members(room), event, payload)
}

// ToRooms delivers the event to the members of each listed room.
func (b *EventBroker) ToRooms(rooms []Room, event string, payload any) {
	var targets []*connection
	for _, room := range rooms {
		targets = append(targets, b.registry.Members(room)...)
	}
	b.deliver(targets, event, payload)
}

// ToAll delivers the event to every live connection regardless of room.
func (b *EventBroker) ToAll(event string, payload any) {
	b.deliver(b.registry.All(), event, payload)
}

// ToConn unicasts the event to one connection. A connection that already
// disconnected is a no-op; the race with disconnect is expected.
func (b *EventBroker) ToConn(connectionID, event string, payload any) {
	c, ok := b.registry.Get(connectionID)
	if !ok {
		return
	}
	b.deliver([]*connection{c}, event, payload)
}

func (b *EventBroker) deliver(targets []*connection, event string, payload any) {
	if len(targets) == 0 {
		return
	}

	frame, err := encodeEvent(event, payload)
	if err != nil {
		b.logger.Error().Err(err).Str("event", event).Msg("Failed to marshal outbound event.")
		return
	}

	for _, c := range targets {
		select {
		case c.send <- frame:
		default:
			b.logger.Warn().
				Str("connection_id", c.id).
				Str("event", event).
				Msg("Connection send queue full, dropping event.")
		}
	}
}
