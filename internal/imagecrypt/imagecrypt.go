// Package imagecrypt encrypts the pixels of an image with a keystream and
// stores the result as lossless WebP, so decrypting the saved file gives
// back the original colors.
package imagecrypt

import (
	"crypto/cipher"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"

	"a51-stream/internal/render"
)

var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".tga":  tga.Decode,
	".webp": nativewebp.Decode,
}

// Load decodes a PNG, JPEG, TGA or WebP file into an NRGBA image. The
// decoder is picked by extension because TGA has no magic number.
func Load(path string) (*image.NRGBA, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("imagecrypt: unknown extension: %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imagecrypt: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("imagecrypt: decode %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

// XOR returns a copy of img whose R, G and B channels are XORed with the
// stream, row by row. Alpha is forced to opaque: transparent pixels would
// otherwise lose their color channels in the encoded file.
func XOR(img *image.NRGBA, stream cipher.Stream) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	rgb := make([]byte, 3*b.Dx())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			copy(rgb[3*x:3*x+3], img.Pix[i:i+3])
		}
		stream.XORKeyStream(rgb, rgb)
		for x := 0; x < b.Dx(); x++ {
			out.SetNRGBA(x, y, color.NRGBA{R: rgb[3*x], G: rgb[3*x+1], B: rgb[3*x+2], A: 255})
		}
	}
	return out
}

// Save writes img as lossless WebP.
func Save(path string, img image.Image) error {
	return render.WriteWebP(path, img)
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}
