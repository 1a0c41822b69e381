/*
Package activity contains the core logic of the live check-in event: room
membership, the check-in transaction, budget-constrained reward draws, and the
room-scoped event fan-out that keeps the display, handsets, and admin console
in sync.

This file defines the Room enumeration, the connection type addressed by the
EventBroker, and the RoomRegistry that tracks which connection sits in which
room.
*/
package activity

// Room is a named broadcast scope. Every connection belongs to at most one
// room at a time.
type Room string

const (
	// RoomDisplay is joined by the public big-screen clients.
	RoomDisplay Room = "display"

	// RoomHandset is joined by participant phones performing check-ins.
	RoomHandset Room = "handset"

	// RoomAdmin is joined by the administration console.
	RoomAdmin Room = "admin"
)

// ParseRoom maps a client-supplied room name onto the fixed enumeration.
// The second return value is false for anything outside the enumeration.
func ParseRoom(name string) (Room, bool) {
	switch Room(name) {
	case RoomDisplay, RoomHandset, RoomAdmin:
		return Room(name), true
	default:
		return "", false
	}
}

// sendQueueSize is the per-connection outbound buffer. Writes beyond it are
// dropped rather than blocking the dispatch loop.
const sendQueueSize = 256

// connection is the broker-facing view of one transport connection: an opaque
// id, the room it currently holds (empty until a join-room), and the buffered
// queue drained by the transport's write pump.
type connection struct {
	id   string
	room Room
	send chan []byte
}

func newConnection(id string) *connection {
	return &connection{
		id:   id,
		send: make(chan []byte, sendQueueSize),
	}
}

// RoomCounts is the per-room membership snapshot broadcast to the admin
// console and reported by the health endpoint.
type RoomCounts struct {
	Display int `json:"display"`
	Handset int `json:"handset"`
	Admin   int `json:"admin"`
}

// RoomRegistry tracks every live connection and its room membership.
// It is not safe for concurrent use; the ActivityCoordinator serializes all
// access to it.
type RoomRegistry struct {
	conns map[string]*connection
	rooms map[Room]map[string]*connection
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		conns: make(map[string]*connection),
		rooms: map[Room]map[string]*connection{
			RoomDisplay: make(map[string]*connection),
			RoomHandset: make(map[string]*connection),
			RoomAdmin:   make(map[string]*connection),
		},
	}
}

// Add makes a freshly connected, roomless connection addressable.
func (r *RoomRegistry) Add(c *connection) {
	r.conns[c.id] = c
}

// Get returns the connection with the given id, if it is still live.
func (r *RoomRegistry) Get(id string) (*connection, bool) {
	c, ok := r.conns[id]
	return c, ok
}

// Join places the connection into the given room, moving it out of any room
// it previously held. Re-joining the held room is allowed and idempotent.
// An unknown connection id is a no-op and returns false.
func (r *RoomRegistry) Join(id string, room Room) bool {
	c, ok := r.conns[id]
	if !ok {
		return false
	}

	if c.room != "" && c.room != room {
		delete(r.rooms[c.room], id)
	}

	r.rooms[room][id] = c
	c.room = room

	return true
}

// Leave removes the connection from whichever room it holds. The returned
// room is the one it left; ok is false if it held none.
func (r *RoomRegistry) Leave(id string) (Room, bool) {
	c, ok := r.conns[id]
	if !ok || c.room == "" {
		return "", false
	}

	room := c.room
	delete(r.rooms[room], id)
	c.room = ""

	return room, true
}

// Remove forgets the connection entirely, clearing any room membership first.
// The returned room is the one it occupied; ok is false for roomless or
// unknown connections.
func (r *RoomRegistry) Remove(id string) (Room, bool) {
	room, roomed := r.Leave(id)
	delete(r.conns, id)
	return room, roomed
}

// Members returns the connections currently in the given room.
func (r *RoomRegistry) Members(room Room) []*connection {
	members := make([]*connection, 0, len(r.rooms[room]))
	for _, c := range r.rooms[room] {
		members = append(members, c)
	}
	return members
}

// All returns every live connection regardless of room.
func (r *RoomRegistry) All() []*connection {
	all := make([]*connection, 0, len(r.conns))
	for _, c := range r.conns {
		all = append(all, c)
	}
	return all
}

// Counts reports the current size of each room's membership set.
func (r *RoomRegistry) Counts() RoomCounts {
	return RoomCounts{
		Display: len(r.rooms[RoomDisplay]),
		Handset: len(r.rooms[RoomHandset]),
		Admin:   len(r.rooms[RoomAdmin]),
	}
}
