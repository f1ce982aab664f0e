package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/line-tools-mcp/internal/geometry"
)

func TestClassify(t *testing.T) {
	lines := []geometry.Line{
		geometry.Segment(10, 0, 10, 100), // vertical
		geometry.Segment(0, 10, 100, 10), // horizontal
		geometry.Segment(0, 0, 10, 10),   // 45 degrees, both
		geometry.Segment(5, 5, 5, 5),     // degenerate, neither
		geometry.Segment(0, 100, 3, 0),   // steep falling, vertical
		geometry.Segment(0, 50, 100, 45), // shallow falling, horizontal
	}

	c := Classify(lines, geometry.DefaultTolerance)

	assert.Equal(t, []geometry.Line{lines[0], lines[2], lines[4]}, c.Verticals)
	assert.Equal(t, []geometry.Line{lines[1], lines[2], lines[5]}, c.Horizontals)
}

func TestClassify_TightTolerance(t *testing.T) {
	lines := []geometry.Line{
		geometry.Segment(0, 0, 10, 10),
		geometry.Segment(0, 0, 1, 30),
		geometry.Segment(0, 0, 40, 1),
	}
	tol := geometry.Tolerance{Vertical: 10, Horizontal: 0.1}

	c := Classify(lines, tol)
	assert.Equal(t, []geometry.Line{lines[1]}, c.Verticals)
	assert.Equal(t, []geometry.Line{lines[2]}, c.Horizontals)
}

func TestClassify_Empty(t *testing.T) {
	c := Classify(nil, geometry.DefaultTolerance)
	assert.Empty(t, c.Verticals)
	assert.Empty(t, c.Horizontals)
	assert.NotNil(t, c.Verticals)
}

func TestClassified_Pool(t *testing.T) {
	c := Classified{
		Verticals:   []geometry.Line{geometry.Segment(10, 0, 10, 100)},
		Horizontals: []geometry.Line{geometry.Segment(0, 10, 100, 10)},
	}
	assert.Equal(t, []geometry.Line{c.Horizontals[0], c.Verticals[0]}, c.Pool())
}

func TestClassified_PoolSharedLine(t *testing.T) {
	lines := []geometry.Line{
		geometry.Segment(0, 0, 0, 100),
		geometry.Segment(0, 10, 100, 10),
		geometry.Segment(100, 150, 200, 250),
		geometry.Segment(300, 0, 300, 100),
		geometry.Segment(0, 90, 100, 90),
	}
	c := Classify(lines, geometry.DefaultTolerance)
	require.Len(t, c.Verticals, 3)
	require.Len(t, c.Horizontals, 3)

	pool := c.Pool()
	assert.Len(t, pool, len(lines), "the diagonal is emitted once")
	assert.Equal(t, c, Classify(pool, geometry.DefaultTolerance))
}
