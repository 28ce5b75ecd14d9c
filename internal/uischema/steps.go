// Package uischema loads presentation metadata that sits alongside the
// onboarding schema: per-step titles, descriptions and button copy that do
// not belong in the OpenAPI document itself.
package uischema

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// StepConfig describes how a single wizard step is presented.
type StepConfig struct {
	Number      int    `yaml:"step"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	NextLabel   string `yaml:"nextLabel"`
}

// Store holds step presentation config keyed by step number.
type Store struct {
	steps map[int]StepConfig
	order []int
}

// Load parses a YAML steps document into a Store. An empty document yields an
// empty store; malformed or duplicate entries are errors.
func Load(data []byte) (*Store, error) {
	store := &Store{steps: make(map[int]StepConfig)}
	if len(strings.TrimSpace(string(data))) == 0 {
		return store, nil
	}

	var doc struct {
		Steps []StepConfig `yaml:"steps"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("uischema: parse steps: %w", err)
	}

	for _, step := range doc.Steps {
		if step.Number < 1 {
			return nil, fmt.Errorf("uischema: step number %d is out of range", step.Number)
		}
		if _, exists := store.steps[step.Number]; exists {
			return nil, fmt.Errorf("uischema: duplicate step %d", step.Number)
		}
		store.steps[step.Number] = step
		store.order = append(store.order, step.Number)
	}
	sort.Ints(store.order)
	return store, nil
}

// Step returns the configuration for the supplied step number.
func (s *Store) Step(number int) (StepConfig, bool) {
	if s == nil {
		return StepConfig{}, false
	}
	step, ok := s.steps[number]
	return step, ok
}

// Steps returns all configured steps in ascending order.
func (s *Store) Steps() []StepConfig {
	if s == nil {
		return nil
	}
	steps := make([]StepConfig, 0, len(s.order))
	for _, number := range s.order {
		steps = append(steps, s.steps[number])
	}
	return steps
}

// Empty reports whether the store holds any steps.
func (s *Store) Empty() bool {
	return s == nil || len(s.steps) == 0
}
