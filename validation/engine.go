package validation

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Togather-Foundation/schemaorg/schema"
)

var ErrNilRule = errors.New("nil rule")

// Option configures an engine at construction.
type Option func(*Engine)

// WithStopOnFirstError makes the engine stop rule iteration once any rule
// has produced an error-severity finding. Warnings never stop a run.
func WithStopOnFirstError() Option {
	return func(g *Engine) { g.stopOnFirstError = true }
}

// Engine runs rules against entities in registration order.
//
// Register and Unregister are meant for a setup phase; once built, an
// engine is safe for concurrent Validate calls.
type Engine struct {
	mu               sync.RWMutex
	rules            []Rule
	index            map[string]int
	stopOnFirstError bool
}

// NewEngine returns an engine with no rules.
func NewEngine(opts ...Option) *Engine {
	g := &Engine{index: make(map[string]int)}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// DefaultEngine returns an engine loaded with the built-in rules in
// canonical order: required, types, empty, compliance.
func DefaultEngine(opts ...Option) *Engine {
	g := NewEngine(opts...)
	for _, rule := range []Rule{
		RequiredPropertiesRule{},
		PropertyTypesRule{},
		EmptyValuesRule{},
		NewSchemaOrgComplianceRule(),
	} {
		if err := g.Register(rule); err != nil {
			panic(err)
		}
	}
	return g
}

// Register adds a rule. Registering a name that already exists replaces the
// existing rule in place, keeping its position.
func (g *Engine) Register(rule Rule) error {
	if rule == nil {
		return ErrNilRule
	}
	name := rule.Name()
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrNilRule)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if i, exists := g.index[name]; exists {
		g.rules[i] = rule
		return nil
	}
	g.index[name] = len(g.rules)
	g.rules = append(g.rules, rule)
	return nil
}

// Unregister removes a rule by name and reports whether it was present.
// Removing an absent name is a no-op. Later rules keep their relative
// order.
func (g *Engine) Unregister(name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	i, exists := g.index[name]
	if !exists {
		return false
	}
	g.rules = append(g.rules[:i], g.rules[i+1:]...)
	delete(g.index, name)
	for n, j := range g.index {
		if j > i {
			g.index[n] = j - 1
		}
	}
	return true
}

// Rules returns the registered rule names in registration order.
func (g *Engine) Rules() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	names := make([]string, len(g.rules))
	for i, rule := range g.rules {
		names[i] = rule.Name()
	}
	return names
}

// Validate runs every applicable rule in registration order and collects
// the findings. A nil entity yields a single error finding. With
// WithStopOnFirstError set, iteration stops after the first rule that
// produced an error; warnings never stop the run.
func (g *Engine) Validate(e *schema.Entity) Result {
	result := NewResult()
	if e == nil {
		result.Add(NewError(CodeInvalidPropertyValue, "entity", "entity is nil"))
		return result
	}

	g.mu.RLock()
	rules := make([]Rule, len(g.rules))
	copy(rules, g.rules)
	g.mu.RUnlock()

	for _, rule := range rules {
		if !rule.Applies(e) {
			continue
		}
		for _, err := range rule.Check(e) {
			result.Add(err)
		}
		if g.stopOnFirstError && len(result.Errors) > 0 {
			break
		}
	}
	return result
}
