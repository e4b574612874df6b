// internal/scoring/engine/engine.go
package engine

import (
	"fmt"
	"sort"
)

// Engine evaluates a fixed set of factor providers under a validated weight
// table for one scoring domain. An Engine is immutable after construction and
// safe for concurrent use.
type Engine struct {
	domain          string
	pairProviders   map[string]PairProvider
	entityProviders map[string]EntityProvider
	weights         Weights
	secondaryFactor string
}

// NewEngine builds an engine for a pair domain (project x candidate). The
// weight table must cover exactly the provider names; a mismatch is a
// configuration error and the caller should treat it as fatal.
func NewEngine(domain string, providers map[string]PairProvider, weights Weights, secondaryFactor string) (*Engine, error) {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	if err := weights.Validate(names); err != nil {
		return nil, fmt.Errorf("domain %s: %w", domain, err)
	}
	return &Engine{
		domain:          domain,
		pairProviders:   providers,
		weights:         weights.Clone(),
		secondaryFactor: secondaryFactor,
	}, nil
}

// NewEntityEngine builds an engine for an entity domain, where each factor is
// computed from a single entity's signals.
func NewEntityEngine(domain string, providers map[string]EntityProvider, weights Weights, secondaryFactor string) (*Engine, error) {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	if err := weights.Validate(names); err != nil {
		return nil, fmt.Errorf("domain %s: %w", domain, err)
	}
	return &Engine{
		domain:          domain,
		entityProviders: providers,
		weights:         weights.Clone(),
		secondaryFactor: secondaryFactor,
	}, nil
}

// Domain returns the engine's domain name.
func (e *Engine) Domain() string { return e.domain }

// SecondaryFactor returns the factor used as the ranking tiebreaker.
func (e *Engine) SecondaryFactor() string { return e.secondaryFactor }

// ScorePair evaluates every pair provider and aggregates the results.
func (e *Engine) ScorePair(subject, candidate EntitySignals) ScoreResult {
	scores := make(map[string]FactorScore, len(e.pairProviders))
	for name, provider := range e.pairProviders {
		scores[name] = provider(subject, candidate)
	}
	return Aggregate(scores, e.weights)
}

// ScoreEntity evaluates every entity provider and aggregates the results.
func (e *Engine) ScoreEntity(entity EntitySignals) ScoreResult {
	scores := make(map[string]FactorScore, len(e.entityProviders))
	for name, provider := range e.entityProviders {
		scores[name] = provider(entity)
	}
	return Aggregate(scores, e.weights)
}

// Rank thresholds, orders, and truncates a candidate list using the engine's
// secondary factor as tiebreaker.
func (e *Engine) Rank(candidates []RankedCandidate, minScore float64, limit int) RankedList {
	return Rank(candidates, minScore, limit, e.secondaryFactor)
}

// Introspection describes an engine's configuration for diagnostics.
type Introspection struct {
	Domain          string   `json:"domain"`
	Factors         []string `json:"factors"`
	Weights         Weights  `json:"weights"`
	SecondaryFactor string   `json:"secondary_factor,omitempty"`
}

// Introspect reports the engine's domain, factor names, and weight table.
func (e *Engine) Introspect() Introspection {
	factors := make([]string, 0, len(e.weights))
	for name := range e.weights {
		factors = append(factors, name)
	}
	sort.Strings(factors)
	return Introspection{
		Domain:          e.domain,
		Factors:         factors,
		Weights:         e.weights.Clone(),
		SecondaryFactor: e.secondaryFactor,
	}
}
