package a51

import (
	"errors"
	"fmt"

	"a51-stream/internal/lfsr"
)

var (
	ErrInvalidGeometry = errors.New("a51: invalid geometry")
	ErrKeyLength       = errors.New("a51: wrong key length")
	ErrFrameLength     = errors.New("a51: wrong frame length")
)

const (
	KeyBits     = 64
	FrameBits   = 22
	WarmUpSteps = 100
)

// Geometry is everything about a cipher that is fixed before keying: the
// three register configs, the key and frame widths and the warm-up length.
type Geometry struct {
	Registers [3]lfsr.Config
	KeyBits   int
	FrameBits int
	WarmUp    int
}

// Canonical returns the 19/22/23 register layout of GSM A5/1 in index
// form: cell 0 is the most significant bit, so the classic tap bits
// 18,17,16,13 / 21,20 / 22,21,20,7 become small indices and the middle
// clocking bits 8/10/10 become 10/11/12.
func Canonical() Geometry {
	return Geometry{
		Registers: [3]lfsr.Config{
			{Length: 19, ClockBit: 10, OutputTap: 0, Taps: []int{0, 1, 2, 5}},
			{Length: 22, ClockBit: 11, OutputTap: 0, Taps: []int{0, 1}},
			{Length: 23, ClockBit: 12, OutputTap: 0, Taps: []int{0, 1, 2, 15}},
		},
		KeyBits:   KeyBits,
		FrameBits: FrameBits,
		WarmUp:    WarmUpSteps,
	}
}

// Validate rejects geometries New cannot build.
func (g Geometry) Validate() error {
	for i, rc := range g.Registers {
		if err := rc.Validate(); err != nil {
			return fmt.Errorf("%w: register %d: %w", ErrInvalidGeometry, i+1, err)
		}
	}
	if g.KeyBits <= 0 {
		return fmt.Errorf("%w: key bits %d", ErrInvalidGeometry, g.KeyBits)
	}
	if g.FrameBits < 0 {
		return fmt.Errorf("%w: frame bits %d", ErrInvalidGeometry, g.FrameBits)
	}
	if g.WarmUp < 0 {
		return fmt.Errorf("%w: warm-up %d", ErrInvalidGeometry, g.WarmUp)
	}
	return nil
}
