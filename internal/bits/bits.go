// Package bits holds the one-bit-per-element sequences the cipher works on.
package bits

import (
	"errors"
	"fmt"
	"strings"
)

// Bit is a single binary value, 0 or 1.
type Bit uint8

const (
	Zero Bit = 0
	One  Bit = 1
)

// ErrSyntax is returned by Parse for characters other than 0, 1 and separators.
var ErrSyntax = errors.New("bits: invalid character")

// Seq is an ordered, fixed-length sequence of bits.
type Seq []Bit

// FromUint returns the low n bits of v, least significant bit first.
func FromUint(v uint64, n int) Seq {
	s := make(Seq, n)
	for i := 0; i < n && i < 64; i++ {
		s[i] = Bit((v >> i) & 1)
	}
	return s
}

// FromBytes unpacks b most significant bit first, 8 bits per byte.
func FromBytes(b []byte) Seq {
	s := make(Seq, 0, len(b)*8)
	for _, by := range b {
		for i := 7; i >= 0; i-- {
			s = append(s, Bit((by>>i)&1))
		}
	}
	return s
}

// FromBytesLSB unpacks b least significant bit first. This is the GSM key
// order: bit i of the sequence is bit i%8 of byte i/8.
func FromBytesLSB(b []byte) Seq {
	s := make(Seq, 0, len(b)*8)
	for _, by := range b {
		for i := 0; i < 8; i++ {
			s = append(s, Bit((by>>i)&1))
		}
	}
	return s
}

// Parse reads a literal like "0101 1100". Spaces, underscores and commas
// are ignored.
func Parse(str string) (Seq, error) {
	s := make(Seq, 0, len(str))
	for i, r := range str {
		switch r {
		case '0':
			s = append(s, Zero)
		case '1':
			s = append(s, One)
		case ' ', '_', ',':
		default:
			return nil, fmt.Errorf("%w %q at offset %d", ErrSyntax, r, i)
		}
	}
	return s, nil
}

// Bytes packs the sequence most significant bit first. A trailing partial
// byte is padded with zero bits.
func (s Seq) Bytes() []byte {
	out := make([]byte, (len(s)+7)/8)
	for i, b := range s {
		out[i/8] |= byte(b&1) << (7 - uint(i%8))
	}
	return out
}

// BytesLSB packs the sequence least significant bit first, the inverse of
// FromBytesLSB.
func (s Seq) BytesLSB() []byte {
	out := make([]byte, (len(s)+7)/8)
	for i, b := range s {
		out[i/8] |= byte(b&1) << uint(i%8)
	}
	return out
}

// Uint folds the first 64 bits back into an integer, least significant bit
// first. It is the inverse of FromUint.
func (s Seq) Uint() uint64 {
	var v uint64
	for i, b := range s {
		if i == 64 {
			break
		}
		v |= uint64(b&1) << i
	}
	return v
}

func (s Seq) String() string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, b := range s {
		sb.WriteByte('0' + byte(b&1))
	}
	return sb.String()
}

// Equal reports whether s and o hold the same bits.
func (s Seq) Equal(o Seq) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

func (s Seq) Clone() Seq {
	c := make(Seq, len(s))
	copy(c, s)
	return c
}

// Ones counts the set bits.
func (s Seq) Ones() int {
	n := 0
	for _, b := range s {
		n += int(b & 1)
	}
	return n
}
