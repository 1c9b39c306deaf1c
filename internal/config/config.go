package config

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"

	"a51-stream/internal/a51"
	"a51-stream/internal/bits"
	"a51-stream/internal/lfsr"
)

// Register is the JSON form of one register's geometry.
type Register struct {
	Length    int   `json:"length"`
	ClockBit  int   `json:"clock_bit"`
	OutputTap int   `json:"output_tap"`
	Taps      []int `json:"taps"`
}

// Config holds key material, cipher geometry and tool settings.
type Config struct {
	// Key material
	Key   string `json:"key"`
	Frame *int64 `json:"frame"`

	// Geometry
	Registers []Register `json:"registers"`
	KeyBits   int        `json:"key_bits"`
	FrameBits *int       `json:"frame_bits"`
	WarmUp    *int       `json:"warm_up"`

	// Tool settings
	Charset   string `json:"charset"`
	OutputDir string `json:"output_dir"`
	Workers   int    `json:"workers"`
	Scale     int    `json:"scale"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// FromFile loads path when it is non-empty and resolves flags over it.
func FromFile(path string, flags Flags) (Config, error) {
	var cfg Config
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return Config{}, err
		}
	}
	cfg.Resolve(flags)
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Frame is only applied when FrameSet is true, since 0 is a valid frame.
type Flags struct {
	Key       string
	Frame     int64
	FrameSet  bool
	Charset   string
	OutputDir string
	Workers   int
	Scale     int
}

// Resolve applies flags over the file values, then fills defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Key != "" {
		c.Key = flags.Key
	}
	if flags.FrameSet {
		f := flags.Frame
		c.Frame = &f
	}
	if flags.Charset != "" {
		c.Charset = flags.Charset
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}

	// Geometry defaults
	canon := a51.Canonical()
	if len(c.Registers) == 0 {
		for _, rc := range canon.Registers {
			c.Registers = append(c.Registers, Register{
				Length:    rc.Length,
				ClockBit:  rc.ClockBit,
				OutputTap: rc.OutputTap,
				Taps:      append([]int(nil), rc.Taps...),
			})
		}
	}
	if c.KeyBits <= 0 {
		c.KeyBits = canon.KeyBits
	}
	if c.FrameBits == nil {
		f := canon.FrameBits
		c.FrameBits = &f
	}
	if c.WarmUp == nil {
		w := canon.WarmUp
		c.WarmUp = &w
	}

	// Tool defaults
	if c.Charset == "" {
		c.Charset = "windows-1252"
	}
	if c.OutputDir == "" {
		c.OutputDir = "a51-out"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Scale <= 0 {
		c.Scale = 4
	}
}

// Geometry converts the resolved config into a validated cipher geometry.
func (c *Config) Geometry() (a51.Geometry, error) {
	if len(c.Registers) != 3 {
		return a51.Geometry{}, fmt.Errorf("config: %w: need 3 registers, have %d", a51.ErrInvalidGeometry, len(c.Registers))
	}
	g := a51.Geometry{KeyBits: c.KeyBits}
	if c.FrameBits != nil {
		g.FrameBits = *c.FrameBits
	}
	if c.WarmUp != nil {
		g.WarmUp = *c.WarmUp
	}
	for i, r := range c.Registers {
		g.Registers[i] = lfsr.Config{
			Length:    r.Length,
			ClockBit:  r.ClockBit,
			OutputTap: r.OutputTap,
			Taps:      r.Taps,
		}
	}
	if err := g.Validate(); err != nil {
		return a51.Geometry{}, fmt.Errorf("config: %w", err)
	}
	return g, nil
}

// KeyBitsSeq parses the configured key for the configured width.
func (c *Config) KeyBitsSeq() (bits.Seq, error) {
	if c.Key == "" {
		return nil, fmt.Errorf("config: no key")
	}
	return ParseKey(c.Key, c.KeyBits)
}

// FrameBitsSeq returns the configured frame number as bits, LSB first.
func (c *Config) FrameBitsSeq() (bits.Seq, error) {
	if c.Frame == nil {
		return nil, fmt.Errorf("config: no frame")
	}
	if c.FrameBits == nil {
		return nil, fmt.Errorf("config: frame width not resolved")
	}
	return FrameSeq(*c.Frame, *c.FrameBits)
}

// FrameSeq checks that frame fits in n bits and unpacks it LSB first.
func FrameSeq(frame int64, n int) (bits.Seq, error) {
	if frame < 0 || (n < 63 && frame >= int64(1)<<n) {
		return nil, fmt.Errorf("config: frame %d does not fit in %d bits", frame, n)
	}
	return bits.FromUint(uint64(frame), n), nil
}

// ParseKey accepts either a string of 0s and 1s or a hex string whose bytes
// are loaded least significant bit first (GSM order). A string made only of
// binary digits is always read as binary; hex keys spelled with 0s and 1s
// alone need the 0x prefix. Either form must yield exactly n bits.
func ParseKey(s string, n int) (bits.Seq, error) {
	s = strings.TrimSpace(s)
	if isBinary(s) {
		seq, err := bits.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("config: key: %w", err)
		}
		if len(seq) != n {
			return nil, fmt.Errorf("config: %w: binary key has %d bits, want %d", a51.ErrKeyLength, len(seq), n)
		}
		return seq, nil
	}

	raw, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(s), "0x"))
	if err != nil {
		return nil, fmt.Errorf("config: key is neither %d binary digits nor hex: %w", n, err)
	}
	seq := bits.FromBytesLSB(raw)
	if len(seq) != n {
		return nil, fmt.Errorf("config: %w: hex key has %d bits, want %d", a51.ErrKeyLength, len(seq), n)
	}
	return seq, nil
}

func isBinary(s string) bool {
	for _, r := range s {
		switch r {
		case '0', '1', ' ', '_', ',':
		default:
			return false
		}
	}
	return s != ""
}

// Material returns everything a tool needs to build a cipher.
func (c *Config) Material() (g a51.Geometry, key, frame bits.Seq, err error) {
	if g, err = c.Geometry(); err != nil {
		return
	}
	if key, err = c.KeyBitsSeq(); err != nil {
		return
	}
	frame, err = c.FrameBitsSeq()
	return
}
