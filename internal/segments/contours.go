package segments

import (
	"image"
	"math"

	"github.com/golang/geo/r2"

	"github.com/ironsheep/line-tools-mcp/internal/geometry"
)

// minContourPixels discards connected components too small to be a line.
const minContourPixels = 10

// ContourSource fits one segment to each connected edge component and tags
// it with the component's bounding-box area, so that TopByArea favours large
// outlines over specks.
type ContourSource struct {
	// MinLength is the shortest fitted segment, in pixels, that is reported.
	MinLength int

	Edges EdgeOptions
}

// Segments implements Source.
func (c ContourSource) Segments(img image.Image) ([]geometry.Line, error) {
	edges, err := EdgeMap(img, c.Edges)
	if err != nil {
		return nil, err
	}
	origin := geometry.Point{X: img.Bounds().Min.X, Y: img.Bounds().Min.Y}

	lines := make([]geometry.Line, 0)
	for _, contour := range findContours(edges) {
		l, ok := fitContour(contour)
		if !ok || l.Length() < float64(c.MinLength) {
			continue
		}
		lines = append(lines, l.Translate(origin))
	}
	return lines, nil
}

// findContours groups 8-connected edge pixels into components.
func findContours(edges [][]bool) [][]geometry.Point {
	height := len(edges)
	width := 0
	if height > 0 {
		width = len(edges[0])
	}

	visited := make([][]bool, height)
	for y := range visited {
		visited[y] = make([]bool, width)
	}

	contours := make([][]geometry.Point, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] || visited[y][x] {
				continue
			}
			contour := floodFill(edges, visited, x, y)
			if len(contour) >= minContourPixels {
				contours = append(contours, contour)
			}
		}
	}
	return contours
}

// floodFill collects the component containing (startX, startY) with an
// explicit stack.
func floodFill(edges, visited [][]bool, startX, startY int) []geometry.Point {
	height, width := len(edges), len(edges[0])
	stack := []geometry.Point{{X: startX, Y: startY}}
	var contour []geometry.Point

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !edges[p.Y][p.X] {
			continue
		}
		visited[p.Y][p.X] = true
		contour = append(contour, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx != 0 || dy != 0 {
					stack = append(stack, geometry.Point{X: p.X + dx, Y: p.Y + dy})
				}
			}
		}
	}
	return contour
}

// fitContour fits a least-squares line through the pixels and returns the
// segment between the extreme projections onto it.
func fitContour(contour []geometry.Point) (geometry.Line, bool) {
	if len(contour) < 2 {
		return geometry.Line{}, false
	}

	vecs := make([]r2.Point, len(contour))
	var centroid r2.Point
	for i, p := range contour {
		vecs[i] = p.Vec()
		centroid = centroid.Add(vecs[i])
	}
	centroid = centroid.Mul(1 / float64(len(contour)))

	var sxx, syy, sxy float64
	for _, v := range vecs {
		d := v.Sub(centroid)
		sxx += d.X * d.X
		syy += d.Y * d.Y
		sxy += d.X * d.Y
	}
	if sxx == 0 && syy == 0 {
		return geometry.Line{}, false
	}

	// Major axis of the covariance ellipse.
	theta := 0.5 * math.Atan2(2*sxy, sxx-syy)
	dir := r2.Point{X: math.Cos(theta), Y: math.Sin(theta)}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vecs {
		t := v.Sub(centroid).Dot(dir)
		lo = math.Min(lo, t)
		hi = math.Max(hi, t)
	}

	rect := r2.RectFromPoints(vecs...)
	size := rect.Size()
	area := (size.X + 1) * (size.Y + 1)

	p0 := geometry.FromVec(centroid.Add(dir.Mul(lo)))
	p1 := geometry.FromVec(centroid.Add(dir.Mul(hi)))
	return geometry.NewWithArea(p0, p1, area), true
}
