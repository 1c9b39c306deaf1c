package a51

import "a51-stream/internal/bits"

// BurstBits is the number of keystream bits in one GSM burst.
const BurstBits = 114

// Burst produces the two 114-bit keystream blocks GSM uses per TDMA frame,
// A->B first, each packed most significant bit first into 15 bytes. The key
// is loaded least significant bit of key[0] first and the frame number least
// significant bit first.
func Burst(key [8]byte, frame uint32) (aToB, bToA []byte) {
	c, err := NewCanonical(bits.FromBytesLSB(key[:]), bits.FromUint(uint64(frame), FrameBits))
	if err != nil {
		// canonical geometry with fixed-width inputs cannot fail
		panic(err)
	}
	aToB = c.Keystream(BurstBits).Bytes()
	bToA = c.Keystream(BurstBits).Bytes()
	return aToB, bToA
}
