// internal/scoring/engine/weights.go
package engine

import (
	"fmt"
	"math"
	"sort"
)

// WeightTolerance is the allowed deviation of a weight table's sum from 1.0.
const WeightTolerance = 1e-6

// Weights maps factor names to their contribution share. A valid table is
// non-negative, sums to 1.0 within WeightTolerance, and names exactly the
// factor set of its domain. Violations are configuration errors surfaced at
// startup, never at call time.
type Weights map[string]float64

// Validate checks the table against the domain's factor names.
func (w Weights) Validate(factorNames []string) error {
	if len(w) == 0 {
		return fmt.Errorf("weight table is empty")
	}

	sum := 0.0
	for name, weight := range w {
		if weight < 0 {
			return fmt.Errorf("negative weight %.4f for factor %q", weight, name)
		}
		sum += weight
	}
	if math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("weights sum to %.6f, must sum to 1.0", sum)
	}

	if len(w) != len(factorNames) {
		return fmt.Errorf("weight table names %d factors, domain has %d", len(w), len(factorNames))
	}
	for _, name := range factorNames {
		if _, ok := w[name]; !ok {
			return fmt.Errorf("weight table missing factor %q", name)
		}
	}

	return nil
}

// Clone returns an independent copy of the table.
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// FactorNames returns the table's factor names in sorted order.
func (w Weights) FactorNames() []string {
	names := make([]string, 0, len(w))
	for name := range w {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
