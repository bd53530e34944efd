// Package determinism provides primitives for guaranteeing deterministic pricing.
// Pricing code must take dates and identifiers from here, never from the
// ambient clock or a random source.
package determinism

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// quoteNamespace scopes every derived quote ID
var quoteNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("premium-engine/quote"))

// ContentHash is a SHA-256 hash for content integrity
type ContentHash [32]byte

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// String implements Stringer
func (h ContentHash) String() string {
	return h.Hex()[:16] + "..."
}

// Hasher accumulates ordered fields into a content hash
type Hasher struct {
	parts []string
}

// NewHasher creates an empty hasher
func NewHasher() *Hasher {
	return &Hasher{}
}

// Add appends fields in order. Order is significant.
func (h *Hasher) Add(parts ...string) *Hasher {
	h.parts = append(h.parts, parts...)
	return h
}

// Sum computes the hash of all fields added so far
func (h *Hasher) Sum() ContentHash {
	d := sha256.New()
	for _, part := range h.parts {
		d.Write([]byte(part))
		d.Write([]byte{0}) // Separator
	}
	var out ContentHash
	copy(out[:], d.Sum(nil))
	return out
}

// QuoteID derives a stable UUID (v5) from an input hash
func QuoteID(h ContentHash) string {
	return uuid.NewSHA1(quoteNamespace, h[:]).String()
}
