package main

import (
	"flag"
	"fmt"
	"os"

	"a51-stream/internal/a51"
	"a51-stream/internal/keygen"
)

func main() {
	seed := flag.String("seed", "", "Seed for reproducible output (default: crypto/rand)")
	keyBits := flag.Int("key-bits", a51.KeyBits, "Key width in bits")
	frameBits := flag.Int("frame-bits", a51.FrameBits, "Frame width in bits")

	flag.Parse()

	var g *keygen.Generator
	if *seed != "" {
		g = keygen.NewSeeded([]byte(*seed))
	} else {
		var err error
		if g, err = keygen.New(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	key := g.Key(*keyBits)
	frame := g.Frame(*frameBits)

	fmt.Printf("key:   %s\n", key)
	if *keyBits%8 == 0 {
		// the hex form is only valid for whole bytes
		fmt.Printf("key (hex, GSM order): %X\n", key.BytesLSB())
	}
	fmt.Printf("frame: %s (%d)\n", frame, frame.Uint())
}

