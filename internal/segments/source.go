package segments

import (
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/line-tools-mcp/internal/geometry"
)

// Source extracts raw candidate segments from an image.
type Source interface {
	Segments(img image.Image) ([]geometry.Line, error)
}

// Algorithm names a segment extraction strategy.
type Algorithm string

const (
	Hough    Algorithm = "hough"
	Contours Algorithm = "contours"
)

// ParseAlgorithm accepts an algorithm name in any case.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(s))); a {
	case Hough, Contours:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Options selects and tunes a Source.
type Options struct {
	Algorithm Algorithm   `json:"algorithm" toml:"algorithm"`
	MinLength int         `json:"min_length" toml:"min_length"`
	MaxLines  int         `json:"max_lines" toml:"max_lines"`
	Edges     EdgeOptions `json:"edges" toml:"edges"`
}

// DefaultOptions uses Hough extraction with the default edge map.
var DefaultOptions = Options{
	Algorithm: Hough,
	MinLength: 20,
	MaxLines:  50,
	Edges:     DefaultEdgeOptions,
}

// New builds the Source described by opts.
func New(opts Options) (Source, error) {
	switch opts.Algorithm {
	case Hough, "":
		return HoughSource{MinLength: opts.MinLength, MaxLines: opts.MaxLines, Edges: opts.Edges}, nil
	case Contours:
		return ContourSource{MinLength: opts.MinLength, Edges: opts.Edges}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, opts.Algorithm)
}
