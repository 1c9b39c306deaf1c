package main

import (
	"flag"
	"fmt"
	"os"

	"a51-stream/internal/a51"
	"a51-stream/internal/bits"
	"a51-stream/internal/config"
)

func printBits(name string, s bits.Seq) {
	fmt.Printf("%s:\n[%s]\n", name, s)
}

func printRegisters(regs [3]bits.Seq) {
	for i, r := range regs {
		printBits(fmt.Sprintf("Register %d", i+1), r)
	}
}

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	key := flag.String("key", "", "Key: hex (GSM bit order) or binary digits")
	frame := flag.Int64("frame", -1, "Frame number")
	n := flag.Int("n", a51.BurstBits, "Number of keystream bits")
	format := flag.String("format", "bits", "Output format: bits or hex")
	dump := flag.Bool("dump", false, "Print register contents after each setup phase")

	flag.Parse()

	if *n < 0 {
		fmt.Fprintln(os.Stderr, "Error: -n must not be negative")
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

	var obs a51.Observer
	if *dump {
		printBits(fmt.Sprintf("%d-bit key (private)", len(keyBits)), keyBits)
		printBits(fmt.Sprintf("%d-bit frame (public)", len(frameBits)), frameBits)
		last := map[a51.Phase]int{
			a51.LoadingKey:   g.KeyBits,
			a51.LoadingFrame: g.FrameBits,
			a51.WarmingUp:    g.WarmUp,
		}
		obs = func(p a51.Phase, step int, regs [3]bits.Seq) {
			if want, ok := last[p]; ok && step == want {
				fmt.Printf("\n__ AFTER %s (%d clocks) __\n", p, step)
				printRegisters(regs)
			}
		}
	}

	c, err := a51.NewObserved(g, keyBits, frameBits, obs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ks := c.Keystream(*n)
	if *dump {
		fmt.Println()
	}
	switch *format {
	case "hex":
		fmt.Printf("%X\n", ks.Bytes())
	case "bits":
		printBits("KEYSTREAM", ks)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", *format)
		os.Exit(1)
	}
}
