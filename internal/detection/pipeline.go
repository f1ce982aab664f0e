package detection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ironsheep/line-tools-mcp/internal/geometry"
)

// Operator names one narrowing step of a filter chain.
type Operator string

// Filter operators.
const (
	OpXExtremes   Operator = "x_extremes"
	OpYExtremes   Operator = "y_extremes"
	OpVerticals   Operator = "verticals"
	OpHorizontals Operator = "horizontals"
)

// ValidOperators is the set of supported filter operators.
var ValidOperators = map[Operator]bool{
	OpXExtremes:   true,
	OpYExtremes:   true,
	OpVerticals:   true,
	OpHorizontals: true,
}

// ParseOperator resolves an operator name. Case and underscores are ignored,
// so "xExtremes", "XEXTREMES" and "x_extremes" are the same operator.
func ParseOperator(name string) (Operator, error) {
	key := strings.ToLower(strings.ReplaceAll(name, "_", ""))
	for op := range ValidOperators {
		if strings.ReplaceAll(string(op), "_", "") == key {
			return op, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperator, name)
}

// Chain is an ordered list of operators applied one after another.
type Chain []Operator

// ParseChain resolves every name in names.
func ParseChain(names []string) (Chain, error) {
	if len(names) == 0 {
		return nil, ErrEmptyChain
	}
	chain := make(Chain, 0, len(names))
	for _, n := range names {
		op, err := ParseOperator(n)
		if err != nil {
			return nil, err
		}
		chain = append(chain, op)
	}
	return chain, nil
}

// Pipeline runs independent filter chains over a deduplicated candidate pool
// and concatenates their results.
type Pipeline struct {
	// Chains are evaluated independently, each starting from the full pool.
	Chains []Chain

	// Quantity, when positive, keeps only that many lines with the largest area.
	Quantity int

	// Selector supplies the tolerance and margin used by every operator.
	Selector Selector
}

// Validate reports configuration errors: an empty chain, an unknown operator
// or a negative quantity.
func (p Pipeline) Validate() error {
	for i, chain := range p.Chains {
		if len(chain) == 0 {
			return fmt.Errorf("chain %d: %w", i, ErrEmptyChain)
		}
		for _, op := range chain {
			if !ValidOperators[op] {
				return fmt.Errorf("chain %d: %w: %q", i, ErrUnknownOperator, op)
			}
		}
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeQuantity, p.Quantity)
	}
	return nil
}

// Run applies the pipeline to c. Without chains the pool itself is the
// result. Missing extremes are skipped rather than returned as holes.
func (p Pipeline) Run(c Classified) ([]geometry.Line, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	pool := c.Pool()
	result := pool
	if len(p.Chains) > 0 {
		result = make([]geometry.Line, 0)
		for _, chain := range p.Chains {
			lines := pool
			for _, op := range chain {
				lines = p.apply(op, lines)
			}
			result = append(result, lines...)
		}
	}

	if p.Quantity > 0 {
		result = TopByArea(result, p.Quantity)
	}
	return result, nil
}

func (p Pipeline) apply(op Operator, lines []geometry.Line) []geometry.Line {
	tol := p.Selector.Tolerance
	switch op {
	case OpXExtremes:
		return p.Selector.XExtremes(lines).Lines()
	case OpYExtremes:
		return p.Selector.YExtremes(lines).Lines()
	case OpVerticals:
		return Verticals(lines, tol)
	case OpHorizontals:
		return Horizontals(lines, tol)
	}
	return lines
}

// TopByArea returns up to k lines sorted by Area, largest first. Lines with
// equal area keep their input order. The input slice is not modified.
func TopByArea(lines []geometry.Line, k int) []geometry.Line {
	sorted := make([]geometry.Line, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Area > sorted[j].Area
	})
	if k < len(sorted) {
		sorted = sorted[:k]
	}
	return sorted
}
