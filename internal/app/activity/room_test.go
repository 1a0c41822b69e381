package activity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRoom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Room
		ok    bool
	}{
		{name: "display", input: "display", want: RoomDisplay, ok: true},
		{name: "handset", input: "handset", want: RoomHandset, ok: true},
		{name: "admin", input: "admin", want: RoomAdmin, ok: true},
		{name: "unknown room", input: "spectator", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "case sensitive", input: "Display", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room, ok := ParseRoom(tt.input)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, room)
		})
	}
}

func TestRegistryJoinAndCounts(t *testing.T) {
	r := NewRoomRegistry()

	c1 := newConnection("c1")
	c2 := newConnection("c2")
	r.Add(c1)
	r.Add(c2)

	require.True(t, r.Join("c1", RoomDisplay))
	require.True(t, r.Join("c2", RoomHandset))

	counts := r.Counts()
	require.Equal(t, RoomCounts{Display: 1, Handset: 1}, counts)

	// A connection holds at most one room: joining another moves it.
	require.True(t, r.Join("c1", RoomAdmin))
	counts = r.Counts()
	require.Equal(t, RoomCounts{Handset: 1, Admin: 1}, counts)

	// Unknown connection ids are a no-op.
	require.False(t, r.Join("ghost", RoomDisplay))
}

func TestRegistryRejoinSameRoomIdempotent(t *testing.T) {
	r := NewRoomRegistry()
	r.Add(newConnection("c1"))

	require.True(t, r.Join("c1", RoomDisplay))
	require.True(t, r.Join("c1", RoomDisplay))

	require.Equal(t, 1, r.Counts().Display)
}

func TestRegistryLeave(t *testing.T) {
	r := NewRoomRegistry()
	r.Add(newConnection("c1"))
	r.Join("c1", RoomHandset)

	room, ok := r.Leave("c1")
	require.True(t, ok)
	require.Equal(t, RoomHandset, room)
	require.Zero(t, r.Counts().Handset)

	// Leaving again is a no-op.
	_, ok = r.Leave("c1")
	require.False(t, ok)
}

func TestRegistryRemove(t *testing.T) {
	r := NewRoomRegistry()
	r.Add(newConnection("c1"))
	r.Join("c1", RoomAdmin)

	room, roomed := r.Remove("c1")
	require.True(t, roomed)
	require.Equal(t, RoomAdmin, room)

	_, ok := r.Get("c1")
	require.False(t, ok)
	require.Empty(t, r.All())
}

func TestRegistryMembersAndAll(t *testing.T) {
	r := NewRoomRegistry()
	for _, id := range []string{"c1", "c2", "c3"} {
		r.Add(newConnection(id))
	}
	r.Join("c1", RoomDisplay)
	r.Join("c2", RoomDisplay)

	require.Len(t, r.Members(RoomDisplay), 2)
	require.Empty(t, r.Members(RoomAdmin))
	// All includes the roomless connection too.
	require.Len(t, r.All(), 3)
}
