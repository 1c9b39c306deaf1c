package a51

import "crypto/cipher"

type stream struct {
	c *Cipher
}

// NewStream adapts c to cipher.Stream. Each keystream byte is eight
// consecutive keystream bits, the first one in the most significant
// position.
func NewStream(c *Cipher) cipher.Stream {
	return &stream{c: c}
}

func (s *stream) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("a51: output smaller than input")
	}
	for i, v := range src {
		dst[i] = v ^ s.nextByte()
	}
}

func (s *stream) nextByte() byte {
	var b byte
	for i := 0; i < 8; i++ {
		b = b<<1 | byte(s.c.NextBit())
	}
	return b
}
