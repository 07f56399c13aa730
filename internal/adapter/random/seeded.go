package random

import (
	"math/rand/v2"
	"sync"

	"github.com/neomorfeo/serialgen/internal/domain"
)

// Compile-time check: Seeded implements domain.IdentifierGenerator.
var _ domain.IdentifierGenerator = (*Seeded)(nil)

// Seeded samples identifiers from a PCG source so runs can be replayed.
// rand.IntN is unbiased for any bound. Not suitable for secrets.
type Seeded struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeeded creates a generator whose output is fully determined by seed.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Generate returns length characters drawn from domain.Alphabet.
func (g *Seeded) Generate(length int) (domain.Identifier, error) {
	if err := domain.CheckLength(length); err != nil {
		return "", err
	}

	out := make([]byte, length)

	g.mu.Lock()
	for i := range out {
		out[i] = domain.Alphabet[g.rnd.IntN(len(domain.Alphabet))]
	}
	g.mu.Unlock()

	return domain.Identifier(out), nil
}
