/*
Package randx provides functions for generating cryptographically secure random identifiers.

It generates the time-prefixed check-in record IDs and the UUID connection IDs used
to address WebSocket clients.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set (62).
	Base62Len = int64(len(Base62Chars))

	// CheckinIDSuffixLength is the length of the random suffix of a check-in record ID.
	CheckinIDSuffixLength = 9
)

// CheckinID generates a check-in record identifier of the form
// "<unix-millis>_<9 base62 chars>". The millisecond prefix keeps IDs roughly
// sortable; the random suffix makes a collision within the same millisecond
// negligible but not impossible.
func CheckinID() string {
	suffix, err := base62String(CheckinIDSuffixLength)
	if err != nil {
		// crypto/rand failing is effectively unheard of; fall back to a UUID
		// segment rather than surfacing an error for an ID.
		suffix = strings.ReplaceAll(uuid.New().String(), "-", "")[:CheckinIDSuffixLength]
	}

	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), suffix)
}

// ConnectionID generates a UUID v4 string identifying one transport connection.
func ConnectionID() string {
	return uuid.New().String()
}

// base62String returns a random Base62 string of the given length using crypto/rand.
func base62String(length int) (string, error) {
	result := make([]byte, length)

	for i := range length {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %v", err)
		}
		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}
