package segments

import (
	"image"
	"math"
	"sort"

	"github.com/ironsheep/line-tools-mcp/internal/geometry"
)

// HoughSource extracts segments with a probabilistic-free Hough line transform.
type HoughSource struct {
	// MinLength is the shortest segment, in pixels, that is reported.
	MinLength int

	// MaxLines caps the number of segments traced from accumulator peaks.
	MaxLines int

	Edges EdgeOptions
}

type houghPeak struct {
	rho   int
	theta int
	votes int
}

// Segments implements Source.
func (h HoughSource) Segments(img image.Image) ([]geometry.Line, error) {
	edges, err := EdgeMap(img, h.Edges)
	if err != nil {
		return nil, err
	}
	origin := geometry.Point{X: img.Bounds().Min.X, Y: img.Bounds().Min.Y}
	height, width := len(edges), len(edges[0])

	maxRho := int(math.Sqrt(float64(width*width + height*height)))
	const numAngles = 180
	accumulator := make([][]int, maxRho*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	cosT := make([]float64, numAngles)
	sinT := make([]float64, numAngles)
	for t := 0; t < numAngles; t++ {
		cosT[t] = math.Cos(float64(t) * math.Pi / 180)
		sinT[t] = math.Sin(float64(t) * math.Pi / 180)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] {
				continue
			}
			for t := 0; t < numAngles; t++ {
				idx := int(float64(x)*cosT[t]+float64(y)*sinT[t]) + maxRho
				if idx >= 0 && idx < maxRho*2 {
					accumulator[idx][t]++
				}
			}
		}
	}

	peaks := findPeaks(accumulator, maxRho, h.MinLength/2)
	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].votes > peaks[j].votes
	})

	lines := make([]geometry.Line, 0)
	for _, p := range peaks {
		if h.MaxLines > 0 && len(lines) >= h.MaxLines {
			break
		}
		l, ok := traceSegment(edges, p, cosT[p.theta], sinT[p.theta], h.MinLength)
		if !ok {
			continue
		}
		lines = append(lines, l.Translate(origin))
	}
	return lines, nil
}

// findPeaks returns accumulator cells with at least threshold votes that are
// not exceeded anywhere in their 5×5 neighbourhood. Theta wraps around.
func findPeaks(acc [][]int, maxRho, threshold int) []houghPeak {
	numAngles := len(acc[0])
	peaks := make([]houghPeak, 0)
	for r := 0; r < len(acc); r++ {
		for t := 0; t < numAngles; t++ {
			votes := acc[r][t]
			if votes == 0 || votes < threshold {
				continue
			}
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := r + dr
					nt := (t + dt + numAngles) % numAngles
					if nr >= 0 && nr < len(acc) && acc[nr][nt] > votes {
						isMax = false
					}
				}
			}
			if isMax {
				peaks = append(peaks, houghPeak{rho: r - maxRho, theta: t, votes: votes})
			}
		}
	}
	return peaks
}

// traceSegment collects the edge pixels within 2 pixels of the peak's line
// and returns the segment between the two extreme ones along the line.
func traceSegment(edges [][]bool, p houghPeak, cosA, sinA float64, minLength int) (geometry.Line, bool) {
	rho := float64(p.rho)
	var start, end geometry.Point
	count := 0
	lo, hi := math.MaxFloat64, -math.MaxFloat64

	for y := range edges {
		for x, edge := range edges[y] {
			if !edge {
				continue
			}
			if math.Abs(float64(x)*cosA+float64(y)*sinA-rho) >= 2.0 {
				continue
			}
			count++
			// Position along the line direction (-sin, cos).
			d := -float64(x)*sinA + float64(y)*cosA
			if d < lo {
				lo = d
				start = geometry.Point{X: x, Y: y}
			}
			if d > hi {
				hi = d
				end = geometry.Point{X: x, Y: y}
			}
		}
	}

	if count < minLength {
		return geometry.Line{}, false
	}
	l := geometry.New(start, end)
	if l.Length() < float64(minLength) {
		return geometry.Line{}, false
	}
	return l, true
}
