package a51

import "a51-stream/internal/bits"

// Majority returns the value held by at least two of a, b and c.
func Majority(a, b, c bits.Bit) bits.Bit {
	if a+b+c >= 2 {
		return bits.One
	}
	return bits.Zero
}
