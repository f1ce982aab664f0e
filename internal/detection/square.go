package detection

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/golang/geo/r2"

	"github.com/ironsheep/line-tools-mcp/internal/geometry"
)

// Square holds the corners of a reconstructed rectangular target.
//
// Corners is empty when no square was found, otherwise it has four points in
// the order (left, top), (left, bottom), (right, top), (right, bottom).
type Square struct {
	Corners []geometry.Point `json:"corners"`
}

// Center returns the centroid of the corners, the error signal handed to
// downstream controllers. ok is false for an empty square.
func (s Square) Center() (geometry.Point, bool) {
	if len(s.Corners) == 0 {
		return geometry.Point{}, false
	}
	return geometry.FromVec(s.Bounds().Center()), true
}

// Bounds returns the axis-aligned rectangle enclosing the corners.
func (s Square) Bounds() r2.Rect {
	pts := make([]r2.Point, len(s.Corners))
	for i, c := range s.Corners {
		pts[i] = c.Vec()
	}
	return r2.RectFromPoints(pts...)
}

// SquareReconstructor builds square corners from the extremal lines of a
// deduplicated candidate set.
type SquareReconstructor struct {
	eliminator *Eliminator
	selector   Selector
	logger     *log.Logger
}

// NewSquareReconstructor returns a reconstructor that deduplicates with e and
// picks boundary lines with s. A nil logger discards output.
func NewSquareReconstructor(e *Eliminator, s Selector, logger *log.Logger) *SquareReconstructor {
	return &SquareReconstructor{eliminator: e, selector: s, logger: orDiscard(logger)}
}

// Reconstruct deduplicates raw candidates and reconstructs a square from them.
func (r *SquareReconstructor) Reconstruct(raw []geometry.Line) (Square, bool) {
	return r.FromClassified(r.eliminator.Eliminate(raw))
}

// FromClassified reconstructs a square from already deduplicated sets.
//
// A square is found only when the leftmost, rightmost, topmost and
// bottommost lines all exist and every vertical/horizontal pairing
// intersects. Otherwise it returns an empty Square and false.
func (r *SquareReconstructor) FromClassified(c Classified) (Square, bool) {
	xs := r.selector.XExtremes(c.Verticals)
	ys := r.selector.YExtremes(c.Horizontals)
	if !xs.Complete() || !ys.Complete() {
		r.logger.Debug("square not found: missing boundary line",
			"left", xs.Min != nil, "right", xs.Max != nil,
			"top", ys.Min != nil, "bottom", ys.Max != nil)
		return Square{}, false
	}

	corners := make([]geometry.Point, 0, 4)
	for _, v := range xs.Lines() {
		for _, h := range ys.Lines() {
			p, ok := v.Intersect(h)
			if !ok {
				r.logger.Debug("square not found: parallel boundary pair", "vertical", v, "horizontal", h)
				return Square{}, false
			}
			corners = append(corners, p)
		}
	}
	return Square{Corners: corners}, true
}

// SquareTracker remembers the last square found across frames so callers can
// keep steering on stale corners while the current frame reports failure.
//
// SquareTracker is safe for concurrent use.
type SquareTracker struct {
	mu     sync.Mutex
	last   Square
	has    bool
	frames int
	misses int
}

// Observe records the verdict for one frame and returns the most recent
// successful square, which is the current one when found is true.
func (t *SquareTracker) Observe(s Square, found bool) (Square, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.frames++
	if found {
		t.last = s
		t.has = true
		t.misses = 0
	} else {
		t.misses++
	}
	return t.last, t.has
}

// Last returns the most recent successful square.
func (t *SquareTracker) Last() (Square, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.has
}

// Misses returns the number of consecutive frames without a square.
func (t *SquareTracker) Misses() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.misses
}

// Frames returns the number of frames observed.
func (t *SquareTracker) Frames() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frames
}
