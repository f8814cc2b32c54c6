package store

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID generates an opaque random identifier with an entity prefix.
func NewID(prefix string) string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return prefix + "-" + hex.EncodeToString(buf)
}
