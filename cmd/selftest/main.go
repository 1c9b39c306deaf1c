package main

import (
	"bytes"
	"fmt"
	"os"

	"a51-stream/internal/a51"
	"a51-stream/internal/bits"
)

// Reference vector for key 12 23 45 67 89 AB CD EF, frame 0x134.
var (
	refKey   = [8]byte{0x12, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF}
	refFrame = uint32(0x134)

	goodAtoB = []byte{0x53, 0x4E, 0xAA, 0x58, 0x2F, 0xE8, 0x15,
		0x1A, 0xB6, 0xE1, 0x85, 0x5A, 0x72, 0x8C, 0x00}
	goodBtoA = []byte{0x24, 0xFD, 0x35, 0xA3, 0x5D, 0x5F, 0xB6,
		0x52, 0x6D, 0x32, 0xF9, 0x06, 0xDF, 0x1A, 0xC0}
)

func check(name string, ok bool) bool {
	status := "OK  "
	if !ok {
		status = "FAIL"
	}
	fmt.Printf("%s %s\n", status, name)
	return ok
}

func main() {
	pass := true

	aToB, bToA := a51.Burst(refKey, refFrame)
	pass = check("A->B burst matches reference", bytes.Equal(aToB, goodAtoB)) && pass
	pass = check("B->A burst matches reference", bytes.Equal(bToA, goodBtoA)) && pass

	zero, err := a51.NewCanonical(make(bits.Seq, a51.KeyBits), make(bits.Seq, a51.FrameBits))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	regs := zero.Registers()
	pass = check("all-zero key is a fixed point",
		regs[0].Ones()+regs[1].Ones()+regs[2].Ones() == 0 && zero.NextBit() == 0) && pass

	msg := bits.FromBytes([]byte("HELLO"))
	c, _ := a51.NewCanonical(bits.FromBytesLSB(refKey[:]), bits.FromUint(uint64(refFrame), a51.FrameBits))
	ks := c.Keystream(len(msg))
	ct, _ := a51.Encrypt(msg, ks)
	pt, _ := a51.Decrypt(ct, ks)
	pass = check("decrypt(encrypt(m)) == m", pt.Equal(msg)) && pass

	_, err = a51.Combine(msg, ks[:len(ks)-1])
	pass = check("length mismatch rejected", err != nil) && pass

	if !pass {
		os.Exit(1)
	}
	fmt.Println("Test Successful!")
}
