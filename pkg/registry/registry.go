// pkg/registry/registry.go
// Package registry describes the configured scoring domains in one JSON
// document: factor names, weight tables, thresholds, and tie-break keys.
// The registry is the operational source of truth served by the domain
// introspection endpoint; it is cross-checked against the compiled-in
// engines at startup so the document and the code cannot drift apart.
package registry

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
)

// weightTolerance mirrors the engine's weight-sum tolerance.
const weightTolerance = 1e-6

// Domain kinds.
const (
	KindPair   = "pair"
	KindEntity = "entity"
)

// Domain describes one scoring domain.
type Domain struct {
	Name           string             `json:"name"`
	Kind           string             `json:"kind"`
	Factors        []string           `json:"factors"`
	Weights        map[string]float64 `json:"weights"`
	NeutralFactors []string           `json:"neutral_factors,omitempty"`
	SecondaryKey   string             `json:"secondary_key,omitempty"`
	MinScore       float64            `json:"min_score,omitempty"`
	MaxResults     int                `json:"max_results,omitempty"`
	Tags           []string           `json:"tags,omitempty"`
}

// Registry is the full set of configured domains.
type Registry struct {
	Version int      `json:"version"`
	Domains []Domain `json:"domains"`
}

// Load reads and validates a registry document.
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	var reg Registry
	if err := json.Unmarshal(raw, &reg); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}

	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Validate checks structural integrity: unique names, known kinds, factor
// and weight-table agreement, weight sums, and in-set secondary keys.
func (r *Registry) Validate() error {
	if len(r.Domains) == 0 {
		return fmt.Errorf("registry has no domains")
	}

	seen := make(map[string]struct{}, len(r.Domains))
	for _, d := range r.Domains {
		if d.Name == "" {
			return fmt.Errorf("domain with empty name")
		}
		if _, dup := seen[d.Name]; dup {
			return fmt.Errorf("domain %q declared twice", d.Name)
		}
		seen[d.Name] = struct{}{}

		if err := d.validate(); err != nil {
			return fmt.Errorf("domain %q: %w", d.Name, err)
		}
	}
	return nil
}

func (d Domain) validate() error {
	if d.Kind != KindPair && d.Kind != KindEntity {
		return fmt.Errorf("unknown kind %q", d.Kind)
	}
	if len(d.Factors) == 0 {
		return fmt.Errorf("no factors declared")
	}

	factorSet := make(map[string]struct{}, len(d.Factors))
	for _, f := range d.Factors {
		if _, dup := factorSet[f]; dup {
			return fmt.Errorf("factor %q declared twice", f)
		}
		factorSet[f] = struct{}{}
	}

	if len(d.Weights) != len(d.Factors) {
		return fmt.Errorf("weight table names %d factors, domain declares %d", len(d.Weights), len(d.Factors))
	}
	sum := 0.0
	for name, w := range d.Weights {
		if _, ok := factorSet[name]; !ok {
			return fmt.Errorf("weight for undeclared factor %q", name)
		}
		if w < 0 {
			return fmt.Errorf("negative weight for factor %q", name)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("weights sum to %.6f, must sum to 1.0", sum)
	}

	for _, n := range d.NeutralFactors {
		if _, ok := factorSet[n]; !ok {
			return fmt.Errorf("neutral factor %q not in factor set", n)
		}
	}
	if d.SecondaryKey != "" {
		if _, ok := factorSet[d.SecondaryKey]; !ok {
			return fmt.Errorf("secondary key %q not in factor set", d.SecondaryKey)
		}
	}
	if d.MinScore < 0 || d.MinScore > 1 {
		return fmt.Errorf("min_score %.4f outside [0,1]", d.MinScore)
	}

	return nil
}

// Find returns the named domain.
func (r *Registry) Find(name string) (*Domain, bool) {
	for i := range r.Domains {
		if r.Domains[i].Name == name {
			return &r.Domains[i], true
		}
	}
	return nil, false
}

// Names returns the registered domain names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Domains))
	for _, d := range r.Domains {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}
