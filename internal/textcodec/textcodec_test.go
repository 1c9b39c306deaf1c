package textcodec

import (
	"errors"
	"testing"

	"a51-stream/internal/a51"
	"a51-stream/internal/bits"
)

func TestEncodeASCII(t *testing.T) {
	s, err := Encode("windows-1252", "HELLO")
	if err != nil {
		t.Fatal(err)
	}
	want := "0100100001000101010011000100110001001111"
	if s.String() != want {
		t.Errorf("Encode = %s, want %s", s, want)
	}
}

func TestSingleByteCharsets(t *testing.T) {
	tests := []struct {
		charset string
		text    string
		bytes   int
	}{
		{"windows-1252", "café €5", 7},
		{"ISO-8859-15", "€uro", 4},
		{"koi8-r", "привет", 6},
		{"windows-1251", "Ёж", 2},
		{"cp437", "░▒▓", 3},
		{"utf-8", "日本", 6},
	}
	for _, tt := range tests {
		s, err := Encode(tt.charset, tt.text)
		if err != nil {
			t.Errorf("Encode(%s, %q): %v", tt.charset, tt.text, err)
			continue
		}
		if len(s) != tt.bytes*8 {
			t.Errorf("Encode(%s, %q) = %d bits, want %d", tt.charset, tt.text, len(s), tt.bytes*8)
		}
		got, err := Decode(tt.charset, s)
		if err != nil {
			t.Errorf("Decode(%s): %v", tt.charset, err)
			continue
		}
		if got != tt.text {
			t.Errorf("round trip %s = %q, want %q", tt.charset, got, tt.text)
		}
	}
}

func TestUnsupportedRune(t *testing.T) {
	if _, err := Encode("windows-1252", "日本"); err == nil {
		t.Error("expected error for runes outside windows-1252")
	}
}

func TestUnknownCharset(t *testing.T) {
	if _, err := Encode("ebcdic", "x"); !errors.Is(err, ErrUnknownCharset) {
		t.Errorf("err = %v", err)
	}
	if _, err := Decode("ebcdic", make(bits.Seq, 8)); !errors.Is(err, ErrUnknownCharset) {
		t.Errorf("err = %v", err)
	}
}

func TestDecodeRejectsPartialByte(t *testing.T) {
	if _, err := Decode("utf-8", make(bits.Seq, 12)); err == nil {
		t.Error("expected error for 12 bits")
	}
}

func TestEncryptText(t *testing.T) {
	pt, err := Encode("windows-1252", "Grüße")
	if err != nil {
		t.Fatal(err)
	}
	key := bits.FromBytesLSB([]byte{0x12, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF})
	frame := bits.FromUint(0x134, a51.FrameBits)

	c, err := a51.NewCanonical(key, frame)
	if err != nil {
		t.Fatal(err)
	}
	ct, err := a51.Encrypt(pt, c.Keystream(len(pt)))
	if err != nil {
		t.Fatal(err)
	}

	c, _ = a51.NewCanonical(key, frame)
	back, err := a51.Decrypt(ct, c.Keystream(len(ct)))
	if err != nil {
		t.Fatal(err)
	}
	text, err := Decode("windows-1252", back)
	if err != nil {
		t.Fatal(err)
	}
	if text != "Grüße" {
		t.Errorf("got %q", text)
	}
}
