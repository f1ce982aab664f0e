package detection

import (
	"github.com/charmbracelet/log"

	"github.com/ironsheep/line-tools-mcp/internal/geometry"
)

// Config holds every tunable of the detection pipeline.
type Config struct {
	// Tolerance classifies lines for extremal selection and filtering.
	Tolerance geometry.Tolerance

	// DedupTolerance classifies lines while eliminating redundancies.
	DedupTolerance geometry.Tolerance

	// MinLineDistance is the perpendicular distance under which two lines merge.
	MinLineDistance float64

	// Margin is the extremal replacement margin in pixels.
	Margin int

	// LegacyBottommostX restores the old bottommost comparison, see Selector.
	LegacyBottommostX bool

	// Chains and Quantity configure the filter pipeline.
	Chains   []Chain
	Quantity int
}

// DefaultConfig returns the configuration the detector ships with: both
// tolerances at 1, a 20 pixel merge distance, a 10 pixel margin, and the
// x-extremes and y-extremes chains.
func DefaultConfig() Config {
	return Config{
		Tolerance:       geometry.DefaultTolerance,
		DedupTolerance:  geometry.DefaultTolerance,
		MinLineDistance: DefaultMinLineDistance,
		Margin:          DefaultMargin,
		Chains:          []Chain{{OpXExtremes}, {OpYExtremes}},
	}
}

// Detector runs the per-frame pipeline: redundancy elimination followed by
// either the filter chains or square reconstruction.
type Detector struct {
	eliminator *Eliminator
	pipeline   Pipeline
	squares    *SquareReconstructor
	logger     *log.Logger
}

// NewDetector validates cfg and wires the pipeline stages together.
// A nil logger discards output.
func NewDetector(cfg Config, logger *log.Logger) (*Detector, error) {
	logger = orDiscard(logger)

	selector := Selector{
		Margin:            cfg.Margin,
		Tolerance:         cfg.Tolerance,
		LegacyBottommostX: cfg.LegacyBottommostX,
	}
	pipeline := Pipeline{Chains: cfg.Chains, Quantity: cfg.Quantity, Selector: selector}
	if err := pipeline.Validate(); err != nil {
		return nil, err
	}

	eliminator := &Eliminator{
		MinLineDistance: cfg.MinLineDistance,
		Tolerance:       cfg.DedupTolerance,
		logger:          logger,
	}
	return &Detector{
		eliminator: eliminator,
		pipeline:   pipeline,
		squares:    NewSquareReconstructor(eliminator, selector, logger),
		logger:     logger,
	}, nil
}

// Eliminator returns the redundancy eliminator used by d.
func (d *Detector) Eliminator() *Eliminator { return d.eliminator }

// Selector returns the extremal selector used by d.
func (d *Detector) Selector() Selector { return d.pipeline.Selector }

// Lines deduplicates raw candidates and runs the filter chains over them.
func (d *Detector) Lines(raw []geometry.Line) ([]geometry.Line, error) {
	classified := d.eliminator.Eliminate(raw)
	lines, err := d.pipeline.Run(classified)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("filtered lines", "candidates", len(raw), "result", len(lines))
	return lines, nil
}

// Square deduplicates raw candidates and reconstructs a square from them.
func (d *Detector) Square(raw []geometry.Line) (Square, bool) {
	return d.squares.Reconstruct(raw)
}
