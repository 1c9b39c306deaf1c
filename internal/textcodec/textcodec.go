// Package textcodec turns text into bit sequences through a named
// single-byte character set, and back.
package textcodec

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"a51-stream/internal/bits"
)

var ErrUnknownCharset = errors.New("textcodec: unknown charset")

var charsets = map[string]encoding.Encoding{
	"utf-8":        encoding.Nop,
	"windows-1252": charmap.Windows1252,
	"windows-1251": charmap.Windows1251,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"koi8-r":       charmap.KOI8R,
	"cp437":        charmap.CodePage437,
}

// Names lists the supported charset names.
func Names() []string {
	names := make([]string, 0, len(charsets))
	for n := range charsets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup is case-insensitive.
func Lookup(name string) (encoding.Encoding, error) {
	enc, ok := charsets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownCharset, name, strings.Join(Names(), ", "))
	}
	return enc, nil
}

// Encode converts text to the charset's bytes and unpacks them most
// significant bit first.
func Encode(charset, text string) (bits.Seq, error) {
	enc, err := Lookup(charset)
	if err != nil {
		return nil, err
	}
	raw, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("textcodec: encode %s: %w", charset, err)
	}
	return bits.FromBytes(raw), nil
}

// Decode is the inverse of Encode. seq must hold whole bytes.
func Decode(charset string, seq bits.Seq) (string, error) {
	if len(seq)%8 != 0 {
		return "", fmt.Errorf("textcodec: %d bits is not a whole number of bytes", len(seq))
	}
	enc, err := Lookup(charset)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(seq.Bytes())
	if err != nil {
		return "", fmt.Errorf("textcodec: decode %s: %w", charset, err)
	}
	return string(out), nil
}
