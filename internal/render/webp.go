package render

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
)

// WriteWebP saves img as a lossless WebP file, creating parent directories.
func WriteWebP(path string, img image.Image) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("render: WebP encode %s: %w", path, err)
	}
	return f.Close()
}

// WriteAnimation saves frames as an endlessly looping WebP animation with
// delayMs milliseconds per frame.
func WriteAnimation(path string, frames []image.Image, delayMs uint) error {
	if len(frames) == 0 {
		return fmt.Errorf("render: %s: no frames", path)
	}
	ani := &nativewebp.Animation{
		Images:    frames,
		Durations: make([]uint, len(frames)),
		Disposals: make([]uint, len(frames)),
	}
	for i := range ani.Durations {
		ani.Durations[i] = delayMs
	}

	f, err := create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := nativewebp.EncodeAll(f, ani, nil); err != nil {
		return fmt.Errorf("render: WebP animation %s: %w", path, err)
	}
	return f.Close()
}

func create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return f, nil
}
