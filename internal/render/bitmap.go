// Package render draws keystreams and register states as one-pixel-per-bit
// bitmaps and writes them as lossless WebP.
package render

import (
	"image"
	"image/color"

	"a51-stream/internal/bits"
)

var (
	colorOne   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colorZero  = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	colorEmpty = color.NRGBA{R: 96, G: 96, B: 96, A: 255}
)

// registerTint colors set cells per register so the three rows stay
// distinguishable once scaled up.
var registerTint = [3]color.NRGBA{
	{R: 230, G: 80, B: 80, A: 255},
	{R: 80, G: 200, B: 90, A: 255},
	{R: 80, G: 130, B: 235, A: 255},
}

// Keystream lays seq out row by row, width bits per row. Cells past the end
// of seq in the last row are grey.
func Keystream(seq bits.Seq, width int) *image.NRGBA {
	if width <= 0 {
		width = 1
	}
	height := (len(seq) + width - 1) / width
	if height == 0 {
		height = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		c := colorEmpty
		if i < len(seq) {
			c = colorZero
			if seq[i] == bits.One {
				c = colorOne
			}
		}
		img.SetNRGBA(i%width, i/width, c)
	}
	return img
}

// Registers draws one row per register, cell 0 on the left. Rows are as
// wide as the longest register; the slack is grey.
func Registers(regs [3]bits.Seq) *image.NRGBA {
	width := 0
	for _, r := range regs {
		if len(r) > width {
			width = len(r)
		}
	}
	if width == 0 {
		width = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, len(regs)))
	for y, r := range regs {
		for x := 0; x < width; x++ {
			c := colorEmpty
			if x < len(r) {
				c = colorZero
				if r[x] == bits.One {
					c = registerTint[y]
				}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
