package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"a51-stream/internal/a51"
	"a51-stream/internal/bits"
	"a51-stream/internal/config"
	"a51-stream/internal/textcodec"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	key := flag.String("key", "", "Key: hex (GSM bit order) or binary digits")
	frame := flag.Int64("frame", -1, "Frame number")
	charset := flag.String("charset", "", "Text charset (default: windows-1252)")
	text := flag.String("text", "", "Plaintext to encrypt")
	cipherHex := flag.String("decrypt", "", "Hex ciphertext to decrypt")
	verbose := flag.Bool("v", false, "Print keystream and bit sequences")

	flag.Parse()

	if (*text == "") == (*cipherHex == "") {
		fmt.Fprintln(os.Stderr, "Error: give exactly one of -text or -decrypt")
		fmt.Fprintf(os.Stderr, "Charsets: %s\n", strings.Join(textcodec.Names(), ", "))
		os.Exit(2)
	}

	cfg, err := config.FromFile(*configFile, config.Flags{
		Key:      *key,
		Frame:    *frame,
		FrameSet: *frame >= 0,
		Charset:  *charset,
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
	c, err := a51.New(g, keyBits, frameBits)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var in bits.Seq
	if *text != "" {
		in, err = textcodec.Encode(cfg.Charset, *text)
	} else {
		var raw []byte
		raw, err = hex.DecodeString(*cipherHex)
		in = bits.FromBytes(raw)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	ks := c.Keystream(len(in))
	out, err := a51.Combine(in, ks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("KEYSTREAM: [%s]\n", ks)
		fmt.Printf("INPUT:     [%s]\n", in)
		fmt.Printf("OUTPUT:    [%s]\n", out)
	}

	if *text != "" {
		fmt.Printf("%X\n", out.Bytes())
		return
	}
	plain, err := textcodec.Decode(cfg.Charset, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding text: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(plain)
}
