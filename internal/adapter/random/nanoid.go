// Package random implements domain.IdentifierGenerator.
package random

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/neomorfeo/serialgen/internal/domain"
)

// Compile-time check: NanoID implements domain.IdentifierGenerator.
var _ domain.IdentifierGenerator = (*NanoID)(nil)

// NanoID samples identifiers with go-nanoid, which draws from crypto/rand and
// rejects out-of-range bytes, so every character has probability 1/len(Alphabet).
type NanoID struct{}

// NewNanoID creates the default generator.
func NewNanoID() *NanoID {
	return &NanoID{}
}

// Generate returns length characters drawn from domain.Alphabet.
func (g *NanoID) Generate(length int) (domain.Identifier, error) {
	if err := domain.CheckLength(length); err != nil {
		return "", err
	}
	// go-nanoid rejects a zero size.
	if length == 0 {
		return "", nil
	}

	s, err := gonanoid.Generate(domain.Alphabet, length)
	if err != nil {
		return "", fmt.Errorf("sampling identifier: %w", err)
	}
	return domain.Identifier(s), nil
}
