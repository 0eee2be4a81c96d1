package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const maxRequestIDLength = 64

// Generator creates opaque request identifiers.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator returns hex encoded random ids of a fixed byte width.
type RandomGenerator struct {
	size int
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{size: 8}
}

func (g *RandomGenerator) NewID() (string, error) {
	size := g.size
	if size <= 0 {
		size = 8
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// Sanitize accepts a caller supplied id only when it is short and header safe.
func Sanitize(raw string) (string, bool) {
	if raw == "" || len(raw) > maxRequestIDLength {
		return "", false
	}
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return "", false
		}
	}
	return raw, true
}
