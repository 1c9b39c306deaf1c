package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"a51-stream/internal/a51"
	"a51-stream/internal/config"
	"a51-stream/internal/imagecrypt"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	key := flag.String("key", "", "Key: hex (GSM bit order) or binary digits")
	frame := flag.Int64("frame", -1, "Frame number")
	in := flag.String("in", "", "Input image (png, jpg, tga or webp)")
	out := flag.String("out", "", "Output WebP path")

	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "Usage: imgcrypt -key K -frame F -in image.png -out image.webp")
		os.Exit(2)
	}

	cfg, err := config.FromFile(*configFile, config.Flags{Key: *key, Frame: *frame, FrameSet: *frame >= 0})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	g, keyBits, frameBits, err := cfg.Material()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	img, err := imagecrypt.Load(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	c, err := a51.New(g, keyBits, frameBits)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	result := imagecrypt.XOR(img, a51.NewStream(c))

	if err := imagecrypt.Save(*out, result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	b := result.Bounds()
	fmt.Printf("OK  %s -> %s  (%dx%d, %d keystream bits, %.2fs)\n",
		*in, *out, b.Dx(), b.Dy(), c.Produced(), time.Since(start).Seconds())
}
