package driven

import (
	"context"

	"github.com/custodia-labs/modpatch/internal/core/domain"
)

// ModuleWatcher reports changes to module descriptor and manifest files.
type ModuleWatcher interface {
	// Watch starts watching and returns a channel of changes.
	// The channel is closed when ctx is cancelled or the watcher is closed.
	Watch(ctx context.Context) (<-chan domain.ModuleChange, error)

	// Close releases watcher resources. Safe to call more than once.
	Close() error
}
