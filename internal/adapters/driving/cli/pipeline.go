package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	fsadapter "github.com/custodia-labs/modpatch/internal/adapters/driven/fs"
	"github.com/custodia-labs/modpatch/internal/adapters/driven/storage/tree"
	"github.com/custodia-labs/modpatch/internal/core/domain"
	"github.com/custodia-labs/modpatch/internal/core/services"
	"github.com/custodia-labs/modpatch/internal/rules"
)

// pipeline is everything one command needs to run a pass.
type pipeline struct {
	settings *domain.PatchSettings
	store    *tree.DescriptorStore
	applier  *services.Applier
}

// newRegistry returns a registry holding the built-in rules.
func newRegistry() *rules.Registry {
	registry := rules.NewRegistry()
	rules.RegisterDefaults(registry, fsadapter.OS{})
	return registry
}

// newPipeline wires the store, engine and applier from stored settings.
// A positive jobs value overrides the configured concurrency.
func newPipeline(jobs int) (*pipeline, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if jobs > 0 {
		settings.Jobs = jobs
	}

	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", projectRoot, err)
	}

	engine, err := newRegistry().BuildEngine(*settings)
	if err != nil {
		return nil, err
	}

	store := tree.New(root, tree.WithManifestPath(settings.ManifestPath))
	return &pipeline{
		settings: settings,
		store:    store,
		applier:  services.NewApplier(store, engine, services.WithJobs(settings.Jobs), services.WithRoot(root)),
	}, nil
}
