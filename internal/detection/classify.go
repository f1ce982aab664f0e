package detection

import "github.com/ironsheep/line-tools-mcp/internal/geometry"

// Classified holds lines partitioned by orientation.
//
// With overlapping tolerances a line may appear in both sets; a degenerate
// line never appears in either.
type Classified struct {
	Verticals   []geometry.Line `json:"verticals"`
	Horizontals []geometry.Line `json:"horizontals"`
}

// Pool returns every line of c once, in a fresh slice.
//
// A line in both sets is emitted a single time, and the relative order of
// each set is kept, so classifying the pool with the tolerance that produced
// c yields the same sets in the same order.
func (c Classified) Pool() []geometry.Line {
	inV := make(map[geometry.Line]int, len(c.Verticals))
	for _, l := range c.Verticals {
		inV[l]++
	}
	inH := make(map[geometry.Line]int, len(c.Horizontals))
	for _, l := range c.Horizontals {
		inH[l]++
	}

	pool := make([]geometry.Line, 0, len(c.Horizontals)+len(c.Verticals))
	i, j := 0, 0
	for i < len(c.Verticals) || j < len(c.Horizontals) {
		switch {
		case j < len(c.Horizontals) && inV[c.Horizontals[j]] == 0:
			pool = append(pool, c.Horizontals[j])
			j++
		case i < len(c.Verticals) && inH[c.Verticals[i]] == 0:
			pool = append(pool, c.Verticals[i])
			i++
		case i < len(c.Verticals) && j < len(c.Horizontals) && c.Verticals[i] == c.Horizontals[j]:
			shared := c.Verticals[i]
			pool = append(pool, shared)
			inV[shared]--
			inH[shared]--
			i++
			j++
		case i < len(c.Verticals):
			// The two sets disagree on the order of their shared lines.
			pool = append(pool, c.Verticals[i])
			inV[c.Verticals[i]]--
			i++
		default:
			pool = append(pool, c.Horizontals[j])
			inH[c.Horizontals[j]]--
			j++
		}
	}
	return pool
}

// Classify splits lines into vertical and horizontal sets using tol.
func Classify(lines []geometry.Line, tol geometry.Tolerance) Classified {
	return Classified{
		Verticals:   Verticals(lines, tol),
		Horizontals: Horizontals(lines, tol),
	}
}

// Verticals returns the lines that are vertical under tol, in input order.
func Verticals(lines []geometry.Line, tol geometry.Tolerance) []geometry.Line {
	result := make([]geometry.Line, 0)
	for _, l := range lines {
		if l.IsVertical(tol) {
			result = append(result, l)
		}
	}
	return result
}

// Horizontals returns the lines that are horizontal under tol, in input order.
func Horizontals(lines []geometry.Line, tol geometry.Tolerance) []geometry.Line {
	result := make([]geometry.Line, 0)
	for _, l := range lines {
		if l.IsHorizontal(tol) {
			result = append(result, l)
		}
	}
	return result
}
