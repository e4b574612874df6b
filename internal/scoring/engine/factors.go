// internal/scoring/engine/factors.go
package engine

// FactorScore is one normalized signal. Present is false when the provider
// could not compute the factor for the given inputs; the aggregator then
// redistributes the factor's weight instead of assuming zero.
type FactorScore struct {
	Value   float64
	Present bool
}

// Absent marks a factor that cannot be computed for this pair.
func Absent() FactorScore {
	return FactorScore{}
}

// Score wraps a computed value, clamping it to [0,1].
func Score(v float64) FactorScore {
	return FactorScore{Value: Clamp01(v), Present: true}
}

// PairProvider computes one factor for a (subject, candidate) pair.
type PairProvider func(subject, candidate EntitySignals) FactorScore

// EntityProvider computes one factor for a single entity, used by the
// pricing and fraud domains.
type EntityProvider func(entity EntitySignals) FactorScore

// Clamp01 clamps v into [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
