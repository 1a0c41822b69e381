package activity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirectoryUpsertCreatesThenAccumulates(t *testing.T) {
	d := NewUserDirectory()

	d.Upsert("u1", "Ann", 1000, 1.88)

	state, ok := d.Get("u1")
	require.True(t, ok)
	require.Equal(t, "Ann", state.Name)
	require.Equal(t, 1, state.CheckinCount)
	require.InDelta(t, 1.88, state.RedpackTotal, 1e-9)
	require.Equal(t, int64(1000), state.LastCheckin)
	require.Equal(t, UserStatusActive, state.Status)

	d.Upsert("u1", "Annie", 2000, 5.88)

	state, ok = d.Get("u1")
	require.True(t, ok)
	require.Equal(t, "Annie", state.Name, "name refreshes on every check-in")
	require.Equal(t, 2, state.CheckinCount)
	require.InDelta(t, 7.76, state.RedpackTotal, 1e-9)
	require.Equal(t, int64(2000), state.LastCheckin)

	require.Equal(t, 1, d.Size())
}

func TestDirectoryTracksDistinctUsers(t *testing.T) {
	d := NewUserDirectory()

	d.Upsert("u1", "Ann", 1, 1)
	d.Upsert("u2", "Bob", 2, 1)
	d.Upsert("u1", "Ann", 3, 1)

	require.Equal(t, 2, d.Size())
	require.Len(t, d.All(), 2)
}

func TestDirectoryClear(t *testing.T) {
	d := NewUserDirectory()
	d.Upsert("u1", "Ann", 1, 1)

	d.Clear()

	require.Zero(t, d.Size())
	_, ok := d.Get("u1")
	require.False(t, ok)
}
