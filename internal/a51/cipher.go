// Package a51 implements the A5/1 keystream generator: three tapped shift
// registers clocked under a majority vote, keyed by a secret key and a
// public frame number, and an XOR combiner for the resulting keystream.
//
// A Cipher is not safe for concurrent use. Every session builds its own.
package a51

import (
	"fmt"

	"a51-stream/internal/bits"
	"a51-stream/internal/lfsr"
)

// Phase is the position of a Cipher in its one-way lifecycle.
type Phase int

const (
	Unloaded Phase = iota
	LoadingKey
	LoadingFrame
	WarmingUp
	Ready
	Running
)

func (p Phase) String() string {
	switch p {
	case Unloaded:
		return "unloaded"
	case LoadingKey:
		return "loading-key"
	case LoadingFrame:
		return "loading-frame"
	case WarmingUp:
		return "warming-up"
	case Ready:
		return "ready"
	case Running:
		return "running"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Observer receives a copy of the three registers after every clock of the
// loading and warm-up phases and after every keystream step. step counts
// from 1 within the phase.
type Observer func(phase Phase, step int, regs [3]bits.Seq)

// Cipher is the state of one keyed session.
type Cipher struct {
	regs     [3]*lfsr.Register
	phase    Phase
	clocked  [3]bool
	produced int
	warmed   int
	obs      Observer
}

// New builds a cipher for g, loads key then frame, runs the warm-up and
// returns it in the Ready phase. Errors wrap ErrInvalidGeometry,
// ErrKeyLength or ErrFrameLength.
func New(g Geometry, key, frame bits.Seq) (*Cipher, error) {
	return NewObserved(g, key, frame, nil)
}

// NewCanonical is New with Canonical geometry.
func NewCanonical(key, frame bits.Seq) (*Cipher, error) {
	return New(Canonical(), key, frame)
}

// NewObserved is New with an observer attached for the whole lifetime of
// the cipher. obs may be nil.
func NewObserved(g Geometry, key, frame bits.Seq, obs Observer) (*Cipher, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if len(key) != g.KeyBits {
		return nil, fmt.Errorf("%w: got %d bits, want %d", ErrKeyLength, len(key), g.KeyBits)
	}
	if len(frame) != g.FrameBits {
		return nil, fmt.Errorf("%w: got %d bits, want %d", ErrFrameLength, len(frame), g.FrameBits)
	}

	c, err := newUnloaded(g)
	if err != nil {
		return nil, err
	}
	c.obs = obs

	c.phase = LoadingKey
	c.load(key)
	c.phase = LoadingFrame
	c.load(frame)

	c.phase = WarmingUp
	for i := 0; i < g.WarmUp; i++ {
		c.step()
		c.warmed++
		c.notify(c.warmed)
	}
	c.phase = Ready
	return c, nil
}

func newUnloaded(g Geometry) (*Cipher, error) {
	c := &Cipher{phase: Unloaded}
	for i, rc := range g.Registers {
		r, err := lfsr.New(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: register %d: %w", ErrInvalidGeometry, i+1, err)
		}
		c.regs[i] = r
	}
	return c, nil
}

// load clocks every register once per input bit, ignoring the majority
// rule, and XORs the bit into each incoming cell.
func (c *Cipher) load(in bits.Seq) {
	for i, b := range in {
		for _, r := range c.regs {
			r.Shift(1)
			r.Inject(b)
		}
		c.clocked = [3]bool{true, true, true}
		c.notify(i + 1)
	}
}

// step runs one majority-clocked tick and returns the output bit read after
// the conditional shifts.
func (c *Cipher) step() bits.Bit {
	m := Majority(c.regs[0].ClockBit(), c.regs[1].ClockBit(), c.regs[2].ClockBit())
	var out bits.Bit
	for i, r := range c.regs {
		c.clocked[i] = r.ClockBit() == m
		if c.clocked[i] {
			r.Shift(1)
		}
		out ^= r.Output()
	}
	return out
}

func (c *Cipher) notify(step int) {
	if c.obs != nil {
		c.obs(c.phase, step, c.Registers())
	}
}

// NextBit produces one keystream bit.
func (c *Cipher) NextBit() bits.Bit {
	c.phase = Running
	b := c.step()
	c.produced++
	c.notify(c.produced)
	return b
}

// Keystream produces the next n keystream bits. A count of zero or less
// yields an empty sequence and leaves the cipher untouched.
func (c *Cipher) Keystream(n int) bits.Seq {
	if n <= 0 {
		return bits.Seq{}
	}
	ks := make(bits.Seq, n)
	for i := range ks {
		ks[i] = c.NextBit()
	}
	return ks
}

// Registers returns copies of the three registers' cells.
func (c *Cipher) Registers() [3]bits.Seq {
	return [3]bits.Seq{c.regs[0].Snapshot(), c.regs[1].Snapshot(), c.regs[2].Snapshot()}
}

// Clocked reports which registers shifted during the most recent clock.
func (c *Cipher) Clocked() [3]bool { return c.clocked }

func (c *Cipher) Phase() Phase { return c.phase }

// Produced is the number of keystream bits handed out so far.
func (c *Cipher) Produced() int { return c.produced }

// WarmedUp is the number of discarded warm-up steps that ran.
func (c *Cipher) WarmedUp() int { return c.warmed }
