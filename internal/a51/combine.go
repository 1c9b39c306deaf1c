package a51

import (
	"errors"
	"fmt"

	"a51-stream/internal/bits"
)

var ErrLengthMismatch = errors.New("a51: length mismatch")

// Combine returns text XOR keystream bit by bit. The same call encrypts and
// decrypts. Operands of different lengths are rejected.
func Combine(text, keystream bits.Seq) (bits.Seq, error) {
	if len(text) != len(keystream) {
		return nil, fmt.Errorf("%w: text %d bits, keystream %d bits", ErrLengthMismatch, len(text), len(keystream))
	}
	out := make(bits.Seq, len(text))
	for i := range text {
		out[i] = (text[i] ^ keystream[i]) & 1
	}
	return out, nil
}

func Encrypt(plaintext, keystream bits.Seq) (bits.Seq, error) {
	return Combine(plaintext, keystream)
}

func Decrypt(ciphertext, keystream bits.Seq) (bits.Seq, error) {
	return Combine(ciphertext, keystream)
}
