// Package rules provides the patch rule engine and the rule registry.
package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/modpatch/internal/core/domain"
	"github.com/custodia-labs/modpatch/internal/core/ports/driven"
	"github.com/custodia-labs/modpatch/internal/logger"
)

// Ensure Engine implements the interface.
var _ driven.RuleEngine = (*Engine)(nil)

// Engine chains PatchRules and runs them in order against a module.
type Engine struct {
	rules []driven.PatchRule
}

// NewEngine creates a rule engine with the given rules.
// Rules are executed in the order provided.
func NewEngine(rules ...driven.PatchRule) *Engine {
	return &Engine{
		rules: rules,
	}
}

// Run applies every rule once, in order, and returns one outcome per rule.
// Rule errors never escape: each is mapped onto a skipped or failed outcome
// and the next rule still runs.
func (e *Engine) Run(ctx context.Context, d *domain.Descriptor) []domain.PatchOutcome {
	if d == nil {
		return nil
	}

	outcomes := make([]domain.PatchOutcome, 0, len(e.rules))
	for _, rule := range e.rules {
		outcome := runRule(ctx, rule, d)
		logger.Debug("%s/%s: %s %s", d.Name, outcome.Rule, outcome.Status, outcome.Detail)
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// runRule invokes a single rule and classifies its result.
func runRule(ctx context.Context, rule driven.PatchRule, d *domain.Descriptor) (outcome domain.PatchOutcome) {
	outcome = domain.PatchOutcome{
		Rule:   rule.Name(),
		Module: d.Name,
	}

	defer func() {
		if r := recover(); r != nil {
			outcome.Status = domain.PatchFailed
			outcome.Detail = fmt.Sprintf("panic: %v", r)
			logger.Warn("rule %s panicked on module %s: %v", outcome.Rule, d.Name, r)
		}
	}()

	result, err := rule.Apply(ctx, d)
	outcome.Status, outcome.Detail = Classify(result, err)
	if outcome.Status == domain.PatchFailed {
		logger.Warn("rule %s failed on module %s: %v", outcome.Rule, d.Name, err)
	}
	return outcome
}

// Classify maps a rule result and error onto an outcome status and detail.
func Classify(result domain.RuleResult, err error) (domain.PatchStatus, string) {
	switch {
	case err == nil && result.Applied:
		return domain.PatchApplied, result.Detail
	case err == nil:
		return domain.PatchSkipped, result.Detail
	case errors.Is(err, domain.ErrIO):
		return domain.PatchFailed, err.Error()
	case errors.Is(err, domain.ErrCapabilityAbsent), errors.Is(err, domain.ErrInvalidInput):
		return domain.PatchSkipped, err.Error()
	default:
		return domain.PatchFailed, "unexpected: " + err.Error()
	}
}

// Add appends a rule to the engine.
func (e *Engine) Add(rule driven.PatchRule) {
	e.rules = append(e.rules, rule)
}

// Len returns the number of rules in the engine.
func (e *Engine) Len() int {
	return len(e.rules)
}

// Names returns the rule names in execution order.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.rules))
	for _, rule := range e.rules {
		names = append(names, rule.Name())
	}
	return names
}
