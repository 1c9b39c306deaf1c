// Package lfsr implements a tapped linear feedback shift register whose
// length and tap geometry are configuration, not code.
//
// Cells shift toward index 0: every clock drops cell 0, moves cell i+1 into
// cell i, and writes the feedback bit into the last cell.
package lfsr

import (
	"errors"
	"fmt"

	"a51-stream/internal/bits"
)

// ErrInvalidConfig is wrapped by every error Validate returns.
var ErrInvalidConfig = errors.New("lfsr: invalid config")

// Config is the fixed geometry of one register.
type Config struct {
	Length    int   // number of cells
	ClockBit  int   // cell read by the majority vote
	OutputTap int   // cell contributing to the keystream
	Taps      []int // cells XORed into the incoming bit
}

// Validate checks that every index lies in [0, Length).
func (c Config) Validate() error {
	if c.Length <= 0 {
		return fmt.Errorf("%w: length %d", ErrInvalidConfig, c.Length)
	}
	if c.ClockBit < 0 || c.ClockBit >= c.Length {
		return fmt.Errorf("%w: clock bit %d outside [0,%d)", ErrInvalidConfig, c.ClockBit, c.Length)
	}
	if c.OutputTap < 0 || c.OutputTap >= c.Length {
		return fmt.Errorf("%w: output tap %d outside [0,%d)", ErrInvalidConfig, c.OutputTap, c.Length)
	}
	if len(c.Taps) == 0 {
		return fmt.Errorf("%w: empty tap set", ErrInvalidConfig)
	}
	seen := make(map[int]bool, len(c.Taps))
	for _, t := range c.Taps {
		if t < 0 || t >= c.Length {
			return fmt.Errorf("%w: tap %d outside [0,%d)", ErrInvalidConfig, t, c.Length)
		}
		if seen[t] {
			return fmt.Errorf("%w: duplicate tap %d", ErrInvalidConfig, t)
		}
		seen[t] = true
	}
	return nil
}

// Register is one LFSR. The zero value is not usable; build it with New.
type Register struct {
	cells    bits.Seq
	taps     []int
	clockBit int
	output   int
}

// New allocates an all-zero register for cfg.
func New(cfg Config) (*Register, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	taps := make([]int, len(cfg.Taps))
	copy(taps, cfg.Taps)
	return &Register{
		cells:    make(bits.Seq, cfg.Length),
		taps:     taps,
		clockBit: cfg.ClockBit,
		output:   cfg.OutputTap,
	}, nil
}

// Shift clocks the register n times. It returns the first bit pushed out of
// cell 0, or the current output bit when n is 0.
func (r *Register) Shift(n int) bits.Bit {
	if n <= 0 {
		return r.Output()
	}
	out := r.cells[0]
	last := len(r.cells) - 1
	for ; n > 0; n-- {
		var fb bits.Bit
		for _, t := range r.taps {
			fb ^= r.cells[t]
		}
		copy(r.cells[:last], r.cells[1:])
		r.cells[last] = fb
	}
	return out
}

// Inject XORs b into the incoming cell, the one Shift just filled.
func (r *Register) Inject(b bits.Bit) {
	r.cells[len(r.cells)-1] ^= b & 1
}

// At returns cell i.
func (r *Register) At(i int) bits.Bit { return r.cells[i] }

// ClockBit returns the cell that takes part in the majority vote.
func (r *Register) ClockBit() bits.Bit { return r.cells[r.clockBit] }

// Output returns the cell that feeds the keystream.
func (r *Register) Output() bits.Bit { return r.cells[r.output] }

func (r *Register) Len() int { return len(r.cells) }

// Snapshot returns a copy of the cells.
func (r *Register) Snapshot() bits.Seq { return r.cells.Clone() }
