package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"a51-stream/internal/a51"
	"a51-stream/internal/bits"
	"a51-stream/internal/config"
	"a51-stream/internal/render"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	key := flag.String("key", "", "Key: hex (GSM bit order) or binary digits")
	frame := flag.Int64("frame", -1, "Frame number")
	n := flag.Int("n", 64*64, "Number of keystream bits to draw")
	width := flag.Int("width", 64, "Bits per row in the keystream image")
	scale := flag.Int("scale", 0, "Pixels per bit (default: 4)")
	outputDir := flag.String("output", "", "Output directory (default: a51-out)")
	delay := flag.Uint("delay", 60, "Milliseconds per animation frame")

	flag.Parse()

	if *n < 0 {
		fmt.Fprintln(os.Stderr, "Error: -n must not be negative")
		os.Exit(2)
	}

	cfg, err := config.FromFile(*configFile, config.Flags{
		Key:       *key,
		Frame:     *frame,
		FrameSet:  *frame >= 0,
		OutputDir: *outputDir,
		Scale:     *scale,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	g, keyBits, frameBits, err := cfg.Material()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// One animation frame per clock of every phase.
	var frames []image.Image
	obs := func(p a51.Phase, step int, regs [3]bits.Seq) {
		if p == a51.Running {
			return
		}
		frames = append(frames, render.Upscale(render.Registers(regs), cfg.Scale*2))
	}

	c, err := a51.NewObserved(g, keyBits, frameBits, obs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	ks := c.Keystream(*n)

	ksPath := filepath.Join(cfg.OutputDir, "keystream.webp")
	if err := render.WriteWebP(ksPath, render.Upscale(render.Keystream(ks, *width), cfg.Scale)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Keystream: %s (%d bits, %d ones)\n", ksPath, len(ks), ks.Ones())

	regPath := filepath.Join(cfg.OutputDir, "registers.webp")
	if err := render.WriteWebP(regPath, render.Upscale(render.Registers(c.Registers()), cfg.Scale*2)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Registers: %s\n", regPath)

	setupPath := filepath.Join(cfg.OutputDir, "setup.webp")
	if err := render.WriteAnimation(setupPath, frames, *delay); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Setup animation: %s (%d frames)\n", setupPath, len(frames))
}
