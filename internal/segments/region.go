package segments

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/line-tools-mcp/internal/geometry"
)

// Region is a rectangle of interest in image coordinates. X2 and Y2 are
// exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (r Region) rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Within runs src over the part of img inside r and reports the segments in
// img's coordinates. Restricting extraction to the target's neighbourhood
// keeps clutter elsewhere in the frame out of the candidate set.
func Within(src Source, img image.Image, r Region) ([]geometry.Line, error) {
	rect := r.rect()
	b := img.Bounds()
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 || !rect.In(b) {
		return nil, fmt.Errorf("%w: (%d,%d)-(%d,%d) in image bounds (%d,%d)-(%d,%d)",
			ErrRegion, r.X1, r.Y1, r.X2, r.Y2, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
	}

	lines, err := src.Segments(imaging.Crop(img, rect))
	if err != nil {
		return nil, err
	}
	origin := geometry.Point{X: rect.Min.X, Y: rect.Min.Y}
	for i := range lines {
		lines[i] = lines[i].Translate(origin)
	}
	return lines, nil
}
