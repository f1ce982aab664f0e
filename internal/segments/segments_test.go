package segments

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/line-tools-mcp/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestImage creates a solid image of the given color.
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// fillRect paints [x0,x1)×[y0,y1) black.
func fillRect(img *image.RGBA, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.Set(x, y, color.Black)
		}
	}
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frame.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestEdgeMap_StepEdge(t *testing.T) {
	img := createTestImage(60, 40, color.White)
	fillRect(img, 30, 0, 60, 40)

	edges, err := EdgeMap(img, DefaultEdgeOptions)
	require.NoError(t, err)
	require.Len(t, edges, 40)
	require.Len(t, edges[0], 60)

	assert.True(t, edges[20][29] || edges[20][30], "step should produce an edge")
	assert.False(t, edges[20][5], "flat region has no edge")
	assert.False(t, edges[20][55], "flat region has no edge")
	for x := 0; x < 60; x++ {
		assert.False(t, edges[0][x], "border row is never an edge")
	}
}

func TestEdgeMap_Empty(t *testing.T) {
	_, err := EdgeMap(image.NewRGBA(image.Rect(0, 0, 0, 0)), DefaultEdgeOptions)
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestHough_HorizontalBar(t *testing.T) {
	img := createTestImage(200, 100, color.White)
	fillRect(img, 0, 48, 200, 52)

	lines, err := HoughSource{MinLength: 40, MaxLines: 10, Edges: DefaultEdgeOptions}.Segments(img)
	require.NoError(t, err)
	require.NotEmpty(t, lines)

	found := false
	for _, l := range lines {
		if l.IsHorizontal(geometry.DefaultTolerance) && l.Length() > 100 &&
			l.P0.Y >= 44 && l.P0.Y <= 56 {
			found = true
		}
	}
	assert.True(t, found, "expected a long horizontal segment near y=50, got %v", lines)
}

func TestHough_VerticalBar(t *testing.T) {
	img := createTestImage(100, 200, color.White)
	fillRect(img, 60, 0, 63, 200)

	lines, err := HoughSource{MinLength: 40, MaxLines: 10, Edges: DefaultEdgeOptions}.Segments(img)
	require.NoError(t, err)

	found := false
	for _, l := range lines {
		if l.IsVertical(geometry.DefaultTolerance) && l.Length() > 100 {
			found = true
		}
	}
	assert.True(t, found, "expected a long vertical segment, got %v", lines)
}

func TestHough_BlankImage(t *testing.T) {
	lines, err := HoughSource{MinLength: 20}.Segments(createTestImage(80, 80, color.White))
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.NotNil(t, lines)
}

func TestContours_Bar(t *testing.T) {
	img := createTestImage(200, 100, color.White)
	fillRect(img, 20, 48, 180, 53)

	lines, err := ContourSource{MinLength: 40, Edges: DefaultEdgeOptions}.Segments(img)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	l := lines[0]
	assert.True(t, l.IsHorizontal(geometry.DefaultTolerance), "got %v", l)
	assert.Greater(t, l.Length(), 120.0)
	assert.Greater(t, l.Area, 0.0)
}

func TestContours_OffsetBounds(t *testing.T) {
	img := createTestImage(200, 100, color.White)
	fillRect(img, 20, 48, 180, 53)
	sub := img.SubImage(image.Rect(10, 10, 200, 100))

	lines, err := ContourSource{MinLength: 40, Edges: DefaultEdgeOptions}.Segments(sub)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.InDelta(t, 50, lines[0].Midpoint().Y, 4, "coordinates stay in source space")
}

func TestFitContour_Diagonal(t *testing.T) {
	var pts []geometry.Point
	for i := 0; i < 50; i++ {
		pts = append(pts, geometry.Point{X: i, Y: i})
	}
	l, ok := fitContour(pts)
	require.True(t, ok)
	assert.InDelta(t, 69.3, l.Length(), 2)
	m, _ := l.Slope().Value()
	assert.InDelta(t, 1, m, 0.1)
}

func TestFitContour_SinglePixel(t *testing.T) {
	_, ok := fitContour([]geometry.Point{{X: 3, Y: 3}, {X: 3, Y: 3}})
	assert.False(t, ok)
}

func TestParseAlgorithm(t *testing.T) {
	a, err := ParseAlgorithm(" Hough ")
	require.NoError(t, err)
	assert.Equal(t, Hough, a)

	a, err = ParseAlgorithm("CONTOURS")
	require.NoError(t, err)
	assert.Equal(t, Contours, a)

	_, err = ParseAlgorithm("canny")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestNew(t *testing.T) {
	src, err := New(DefaultOptions)
	require.NoError(t, err)
	assert.IsType(t, HoughSource{}, src)

	src, err = New(Options{Algorithm: Contours, MinLength: 5})
	require.NoError(t, err)
	assert.Equal(t, ContourSource{MinLength: 5}, src)

	_, err = New(Options{Algorithm: "sift"})
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestImageCache(t *testing.T) {
	path := writePNG(t, createTestImage(32, 24, color.White))
	cache := NewImageCache()

	a, err := cache.Load(path)
	require.NoError(t, err)
	b, err := cache.Load(path)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, cache.Len())

	info, err := cache.Info(path)
	require.NoError(t, err)
	assert.Equal(t, 32, info.Width)
	assert.Equal(t, 24, info.Height)
	assert.Equal(t, "png", info.Format)
	assert.Greater(t, info.FileSizeBytes, int64(0))

	cache.Evict(path)
	assert.Equal(t, 0, cache.Len())
}

func TestImageCache_Missing(t *testing.T) {
	_, err := NewImageCache().Load(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestWithin(t *testing.T) {
	img := createTestImage(200, 200, color.White)
	fillRect(img, 20, 48, 180, 53)  // inside the region
	fillRect(img, 20, 148, 180, 153) // outside it

	src := ContourSource{MinLength: 40, Edges: DefaultEdgeOptions}
	lines, err := Within(src, img, Region{X1: 0, Y1: 0, X2: 200, Y2: 100})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.InDelta(t, 50, lines[0].Midpoint().Y, 4)

	lines, err = Within(src, img, Region{X1: 0, Y1: 100, X2: 200, Y2: 200})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.InDelta(t, 150, lines[0].Midpoint().Y, 4, "segments are reported in image coordinates")
}

func TestWithin_InvalidRegion(t *testing.T) {
	img := createTestImage(50, 50, color.White)
	src := HoughSource{MinLength: 10}

	for _, r := range []Region{
		{X1: 10, Y1: 10, X2: 10, Y2: 40},
		{X1: 0, Y1: 0, X2: 60, Y2: 40},
		{X1: -1, Y1: 0, X2: 20, Y2: 20},
	} {
		_, err := Within(src, img, r)
		assert.ErrorIs(t, err, ErrRegion, "region %+v", r)
	}
}
