package lfsr

import (
	"errors"
	"testing"

	"a51-stream/internal/bits"
)

func load(t *testing.T, r *Register, s string) {
	t.Helper()
	seq, err := bits.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(seq) != r.Len() {
		t.Fatalf("literal has %d bits, register %d", len(seq), r.Len())
	}
	copy(r.cells, seq)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"canonical", Config{Length: 19, ClockBit: 10, Taps: []int{0, 1, 2, 5}}, true},
		{"zero length", Config{Length: 0, Taps: []int{0}}, false},
		{"clock out of range", Config{Length: 4, ClockBit: 4, Taps: []int{0}}, false},
		{"negative output", Config{Length: 4, OutputTap: -1, Taps: []int{0}}, false},
		{"tap out of range", Config{Length: 4, Taps: []int{0, 4}}, false},
		{"no taps", Config{Length: 4}, false},
		{"duplicate tap", Config{Length: 4, Taps: []int{1, 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate = %v, want ErrInvalidConfig", err)
			}
			if _, nerr := New(tt.cfg); (nerr == nil) != tt.ok {
				t.Fatalf("New error = %v", nerr)
			}
		})
	}
}

func TestNewIsAllZero(t *testing.T) {
	r, err := New(Config{Length: 23, ClockBit: 12, Taps: []int{0, 1, 2, 15}})
	if err != nil {
		t.Fatal(err)
	}
	if r.Snapshot().Ones() != 0 {
		t.Errorf("fresh register = %s", r.Snapshot())
	}
	if got := r.Shift(5); got != 0 || r.Snapshot().Ones() != 0 {
		t.Errorf("all-zero register is not a fixed point: out %d, cells %s", got, r.Snapshot())
	}
}

func TestShiftFeedback(t *testing.T) {
	r, err := New(Config{Length: 5, ClockBit: 2, Taps: []int{0, 3}})
	if err != nil {
		t.Fatal(err)
	}
	load(t, r, "10010")

	// fb = cells[0]^cells[3] = 1^1 = 0
	if out := r.Shift(1); out != 1 {
		t.Errorf("Shift(1) returned %d, want 1", out)
	}
	if got := r.Snapshot().String(); got != "00100" {
		t.Errorf("after one shift = %s, want 00100", got)
	}

	// fb = 0^0 = 0, then fb = 0^0 = 0
	if out := r.Shift(2); out != 0 {
		t.Errorf("Shift(2) returned %d, want 0", out)
	}
	if got := r.Snapshot().String(); got != "10000" {
		t.Errorf("after three shifts = %s, want 10000", got)
	}
}

func TestShiftZeroIsNoop(t *testing.T) {
	r, err := New(Config{Length: 4, OutputTap: 3, Taps: []int{0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	load(t, r, "0101")
	if out := r.Shift(0); out != 1 {
		t.Errorf("Shift(0) = %d, want output bit 1", out)
	}
	if got := r.Snapshot().String(); got != "0101" {
		t.Errorf("Shift(0) changed cells to %s", got)
	}
}

func TestInjectAndAccessors(t *testing.T) {
	r, err := New(Config{Length: 6, ClockBit: 2, OutputTap: 0, Taps: []int{0}})
	if err != nil {
		t.Fatal(err)
	}
	r.Shift(1)
	r.Inject(1)
	if r.At(5) != 1 {
		t.Fatalf("Inject did not set incoming cell: %s", r.Snapshot())
	}
	r.Shift(3)
	if r.ClockBit() != 1 || r.At(2) != 1 {
		t.Errorf("clock bit = %d, cells %s", r.ClockBit(), r.Snapshot())
	}
	r.Shift(2)
	if r.Output() != 1 {
		t.Errorf("output = %d, cells %s", r.Output(), r.Snapshot())
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	r, err := New(Config{Length: 3, Taps: []int{0}})
	if err != nil {
		t.Fatal(err)
	}
	s := r.Snapshot()
	s[0] = 1
	if r.At(0) != 0 {
		t.Error("snapshot aliases register cells")
	}
}

func TestConfigTapsAreCopied(t *testing.T) {
	taps := []int{0, 1}
	r, err := New(Config{Length: 3, Taps: taps})
	if err != nil {
		t.Fatal(err)
	}
	taps[1] = 2
	load(t, r, "010")
	r.Shift(1)
	// still taps {0,1}: fb = 0^1 = 1
	if got := r.Snapshot().String(); got != "101" {
		t.Errorf("cells = %s, want 101", got)
	}
}
