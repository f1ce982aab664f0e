package detection

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/line-tools-mcp/internal/geometry"
)

// DefaultMinLineDistance is the perpendicular distance below which two lines
// of the same orientation are treated as one.
const DefaultMinLineDistance = 20.0

// Eliminator classifies raw candidates and merges near-duplicate lines.
//
// Tolerance is used only for the classification done during elimination and
// is independent of whatever tolerance the rest of the pipeline runs with.
type Eliminator struct {
	MinLineDistance float64
	Tolerance       geometry.Tolerance

	logger *log.Logger
}

// NewEliminator returns an Eliminator with the dedup tolerance of 1 on both axes.
// A nil logger discards output.
func NewEliminator(minLineDistance float64, logger *log.Logger) *Eliminator {
	return &Eliminator{
		MinLineDistance: minLineDistance,
		Tolerance:       geometry.DefaultTolerance,
		logger:          orDiscard(logger),
	}
}

// Eliminate classifies lines and removes near duplicates within each set.
//
// Within a set, lines are visited in input order and a line is dropped when
// an earlier survivor lies closer than MinLineDistance to its midpoint, so the
// first of any close pair wins. Eliminate(c.Pool()) returns c for any c it
// produced, including lines that sit in both sets.
func (e *Eliminator) Eliminate(lines []geometry.Line) Classified {
	c := Classify(lines, e.Tolerance)
	out := Classified{
		Verticals:   e.Dedupe(c.Verticals),
		Horizontals: e.Dedupe(c.Horizontals),
	}
	e.log().Debug("eliminated redundant lines",
		"candidates", len(lines),
		"verticals", len(c.Verticals), "vertical_survivors", len(out.Verticals),
		"horizontals", len(c.Horizontals), "horizontal_survivors", len(out.Horizontals))
	return out
}

// Dedupe removes near duplicates from a single set without classifying it.
// Survivors keep their input order, so Dedupe is idempotent.
func (e *Eliminator) Dedupe(lines []geometry.Line) []geometry.Line {
	kept := make([]geometry.Line, 0, len(lines))
	for _, l := range lines {
		redundant := false
		for _, k := range kept {
			if math.Abs(k.PerpDistanceTo(l)) < e.MinLineDistance {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, l)
		}
	}
	return kept
}

func (e *Eliminator) log() *log.Logger {
	return orDiscard(e.logger)
}

var discard = log.New(io.Discard)

// orDiscard returns l, or a logger that writes nowhere when l is nil.
func orDiscard(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return discard
}
