// Package keygen produces demonstration key and frame material. It is a
// Mersenne Twister, not a cryptographic source: seed it explicitly to get
// reproducible keys in tests and demos.
package keygen

import (
	"crypto/rand"
	"crypto/sha512"
	"fmt"

	mtwist "blitter.com/go/mtwist"

	"a51-stream/internal/bits"
)

// Generator hands out pseudorandom bits.
type Generator struct {
	m     *mtwist.MT19937_64
	word  uint64
	avail int
}

// NewSeeded returns a generator whose output depends only on seed.
func NewSeeded(seed []byte) *Generator {
	state := sha512.Sum512(seed)
	g := &Generator{m: mtwist.New()}
	g.m.SeedFullState(state[:])
	return g
}

// New seeds a generator from crypto/rand.
func New() (*Generator, error) {
	seed := make([]byte, sha512.Size)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("keygen: seed: %w", err)
	}
	return NewSeeded(seed), nil
}

// Bits returns the next n bits.
func (g *Generator) Bits(n int) bits.Seq {
	s := make(bits.Seq, n)
	for i := range s {
		if g.avail == 0 {
			// Int63 leaves the top bit clear
			g.word = uint64(g.m.Int63())
			g.avail = 63
		}
		s[i] = bits.Bit(g.word & 1)
		g.word >>= 1
		g.avail--
	}
	return s
}

func (g *Generator) Key(n int) bits.Seq { return g.Bits(n) }

func (g *Generator) Frame(n int) bits.Seq { return g.Bits(n) }
