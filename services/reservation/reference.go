package reservation

import (
	"crypto/rand"
	"fmt"
)

// referenceLength is the number of characters in a booking reference.
const referenceLength = 8

// referenceCharset excludes 0/O and 1/I to keep references readable over the
// phone. Uppercase and URL-safe.
const referenceCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// newBookingReference generates a short shareable booking code. Uniqueness is
// enforced by the store's unique index, not here; the generator only keeps
// the collision odds negligible.
func newBookingReference() (string, error) {
	buf := make([]byte, referenceLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate booking reference: %w", err)
	}
	for i, b := range buf {
		buf[i] = referenceCharset[int(b)%len(referenceCharset)]
	}
	return string(buf), nil
}
