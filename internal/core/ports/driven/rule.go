package driven

import (
	"context"

	"github.com/custodia-labs/modpatch/internal/core/domain"
)

// PatchRule is one idempotent fix applied to a module.
// Rules are chained in order by the engine.
type PatchRule interface {
	// Name returns the rule name for reports and configuration.
	Name() string

	// Apply patches the module. On success it reports whether anything was
	// written. Errors wrap a domain error so the engine can classify them:
	// ErrCapabilityAbsent and ErrInvalidInput become skipped outcomes,
	// ErrIO and anything else become failed outcomes.
	Apply(ctx context.Context, d *domain.Descriptor) (domain.RuleResult, error)
}

// RuleEngine runs the configured rules against one module.
type RuleEngine interface {
	// Run applies every rule once, in order, and returns one outcome per rule.
	Run(ctx context.Context, d *domain.Descriptor) []domain.PatchOutcome
}
