package randx

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCheckinIDFormat(t *testing.T) {
	before := time.Now().UnixMilli()
	id := CheckinID()
	after := time.Now().UnixMilli()

	prefix, suffix, found := strings.Cut(id, "_")
	require.True(t, found, "id %q must contain a single underscore separator", id)

	millis, err := strconv.ParseInt(prefix, 10, 64)
	require.NoError(t, err)
	require.GreaterOrEqual(t, millis, before)
	require.LessOrEqual(t, millis, after)

	require.Len(t, suffix, CheckinIDSuffixLength)
	for _, char := range suffix {
		require.True(t, strings.ContainsRune(Base62Chars, char), "unexpected character %q in suffix", char)
	}
}

func TestCheckinIDUniqueness(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := CheckinID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %q", id)
		seen[id] = struct{}{}
	}
}

func TestConnectionID(t *testing.T) {
	first := ConnectionID()
	second := ConnectionID()

	require.NotEmpty(t, first)
	require.NotEqual(t, first, second)
}
