package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/modpatch/internal/core/domain"
	"github.com/custodia-labs/modpatch/internal/core/ports/driven"
	"github.com/custodia-labs/modpatch/internal/core/ports/driving"
	"github.com/custodia-labs/modpatch/internal/logger"
)

// Ensure Applier implements the interface.
var _ driving.Applier = (*Applier)(nil)

// Applier runs the rule engine over every module in a descriptor store.
type Applier struct {
	store  driven.DescriptorStore
	engine driven.RuleEngine
	jobs   int
	root   string
	now    func() time.Time
}

// ApplierOption configures the applier.
type ApplierOption func(*Applier)

// WithJobs bounds how many modules are patched concurrently.
// Values below 2 keep the pass sequential.
func WithJobs(n int) ApplierOption {
	return func(a *Applier) {
		if n > 0 {
			a.jobs = n
		}
	}
}

// WithRoot records the project root in reports.
func WithRoot(root string) ApplierOption {
	return func(a *Applier) {
		a.root = root
	}
}

// NewApplier creates a new applier.
func NewApplier(store driven.DescriptorStore, engine driven.RuleEngine, opts ...ApplierOption) *Applier {
	a := &Applier{
		store:  store,
		engine: engine,
		jobs:   domain.DefaultJobs,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply patches every module. Discovery failures abort the pass; rule
// problems are recorded as outcomes and never stop other modules.
func (a *Applier) Apply(ctx context.Context) (*domain.Report, error) {
	report := a.newReport()

	logger.Section("Apply")
	descriptors, err := a.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load modules: %w", err)
	}
	logger.Info("Loaded %d modules (jobs=%d)", len(descriptors), a.jobs)

	slots := make([][]domain.PatchOutcome, len(descriptors))
	if err := a.run(ctx, descriptors, slots); err != nil {
		return nil, err
	}

	for i, d := range descriptors {
		report.Outcomes = append(report.Outcomes, slots[i]...)
		report.Modules = append(report.Modules, d.Snapshot())
	}
	report.FinishedAt = a.now()

	counts := report.Counts()
	logger.Info("Pass %s finished: %d applied, %d skipped, %d failed",
		report.RunID, counts.Applied, counts.Skipped, counts.Failed)
	return report, nil
}

// ApplyModule patches a single module by name.
func (a *Applier) ApplyModule(ctx context.Context, name string) (*domain.Report, error) {
	report := a.newReport()

	d, err := a.store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get module %s: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Outcomes = a.engine.Run(ctx, d)
	report.Modules = []domain.ModuleSnapshot{d.Snapshot()}
	report.FinishedAt = a.now()
	return report, nil
}

// run fills slots[i] with the outcomes of descriptors[i]. Each descriptor is
// patched by exactly one goroutine.
func (a *Applier) run(ctx context.Context, descriptors []*domain.Descriptor, slots [][]domain.PatchOutcome) error {
	if a.jobs <= 1 {
		for i, d := range descriptors {
			if err := ctx.Err(); err != nil {
				return err
			}
			logger.Debug("Patching module %s (%s)", d.Name, d.Kind)
			slots[i] = a.engine.Run(ctx, d)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.jobs)
	for i, d := range descriptors {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			logger.Debug("Patching module %s (%s)", d.Name, d.Kind)
			slots[i] = a.engine.Run(gctx, d)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (a *Applier) newReport() *domain.Report {
	return &domain.Report{
		RunID:     uuid.New().String(),
		Root:      a.root,
		StartedAt: a.now(),
	}
}
