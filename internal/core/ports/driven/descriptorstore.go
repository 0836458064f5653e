package driven

import (
	"context"

	"github.com/custodia-labs/modpatch/internal/core/domain"
)

// DescriptorStore enumerates build modules.
// Order of the returned descriptors is unspecified.
type DescriptorStore interface {
	// Load returns every module descriptor.
	// Returns an error wrapping domain.ErrDiscovery if the tree cannot be enumerated.
	Load(ctx context.Context) ([]*domain.Descriptor, error)

	// Get returns a single module descriptor by name.
	// Returns domain.ErrNotFound if no such module exists.
	Get(ctx context.Context, name string) (*domain.Descriptor, error)
}
