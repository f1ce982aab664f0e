package segments

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// EdgeOptions tunes the binary edge map.
type EdgeOptions struct {
	// BlurSigma is the Gaussian blur applied before the gradient; 0 disables it.
	BlurSigma float64 `json:"blur_sigma" toml:"blur_sigma"`

	// Threshold is the gradient magnitude (0-255) at or above which a pixel is an edge.
	Threshold uint8 `json:"threshold" toml:"threshold"`
}

// DefaultEdgeOptions suit clean, high-contrast targets.
var DefaultEdgeOptions = EdgeOptions{BlurSigma: 1.0, Threshold: 128}

// EdgeMap returns a height×width grid where true marks an edge pixel.
// Indices are relative to img.Bounds().Min.
func EdgeMap(img image.Image, opts EdgeOptions) ([][]bool, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, ErrEmptyImage
	}

	var src image.Image = imaging.Grayscale(img)
	if opts.BlurSigma > 0 {
		src = imaging.Blur(src, opts.BlurSigma)
	}
	// The gradient is clamped at zero, so each polarity needs its own pass:
	// dark-to-light transitions on src, light-to-dark on its negative.
	rising := segment.Threshold(effect.Sobel(src), opts.Threshold)
	falling := segment.Threshold(effect.Sobel(effect.Invert(src)), opts.Threshold)

	edges := make([][]bool, height)
	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				continue
			}
			edges[y][x] = isSet(rising, x, y) || isSet(falling, x, y)
		}
	}
	return edges, nil
}

// isSet reports whether the pixel at offset (x, y) from the image origin is
// non-black.
func isSet(img image.Image, x, y int) bool {
	b := img.Bounds()
	v, _, _, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
	return v > 0
}
