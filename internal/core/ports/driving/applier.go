package driving

import (
	"context"

	"github.com/custodia-labs/modpatch/internal/core/domain"
)

// Applier drives the rule engine over the module tree.
type Applier interface {
	// Apply patches every module and returns the aggregated report.
	// Only discovery failures and cancellation are returned as errors;
	// per-module problems are recorded as outcomes.
	Apply(ctx context.Context) (*domain.Report, error)

	// ApplyModule patches a single module by name.
	ApplyModule(ctx context.Context, name string) (*domain.Report, error)
}
