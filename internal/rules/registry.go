package rules

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/modpatch/internal/core/domain"
	"github.com/custodia-labs/modpatch/internal/core/ports/driven"
)

// BuilderFunc creates a PatchRule from generic config.
// Config is a map of rule-specific settings derived from user config.
type BuilderFunc func(cfg map[string]any) (driven.PatchRule, error)

// Registry maps rule names to their builders.
// It allows dynamic construction of rules from configuration.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates a new rule registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a rule builder to the registry.
// Name should be unique and match the rule's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a rule by name with the given config.
// Returns an error wrapping domain.ErrUnknownRule if the name is not registered.
func (r *Registry) Build(name string, cfg map[string]any) (driven.PatchRule, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownRule, name)
	}
	return builder(cfg)
}

// Has returns true if a rule with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered rule names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildEngine builds an engine holding the enabled rules from settings,
// in the order they are listed.
func (r *Registry) BuildEngine(settings domain.PatchSettings) (*Engine, error) {
	cfg := ConfigFromSettings(settings)
	engine := NewEngine()
	for _, name := range settings.Rules {
		rule, err := r.Build(name, cfg)
		if err != nil {
			return nil, fmt.Errorf("build rule %s: %w", name, err)
		}
		engine.Add(rule)
	}
	return engine, nil
}
