package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/modpatch/internal/core/domain"
	"github.com/custodia-labs/modpatch/internal/core/ports/driven"
)

// Ensure DescriptorStore implements the interface.
var _ driven.DescriptorStore = (*DescriptorStore)(nil)

// DescriptorStore is an in-memory implementation of driven.DescriptorStore.
// It hands out the stored descriptors themselves, so rule mutations are
// visible to later lookups.
type DescriptorStore struct {
	mu          sync.RWMutex
	descriptors map[string]*domain.Descriptor
}

// NewDescriptorStore creates a new in-memory descriptor store.
func NewDescriptorStore(descriptors ...*domain.Descriptor) *DescriptorStore {
	s := &DescriptorStore{
		descriptors: make(map[string]*domain.Descriptor),
	}
	for _, d := range descriptors {
		s.descriptors[d.Name] = d
	}
	return s
}

// Save stores or replaces a descriptor.
func (s *DescriptorStore) Save(_ context.Context, d *domain.Descriptor) error {
	if d == nil || d.Name == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.descriptors[d.Name] = d
	return nil
}

// Get retrieves a descriptor by name.
func (s *DescriptorStore) Get(_ context.Context, name string) (*domain.Descriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.descriptors[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// Delete removes a descriptor.
func (s *DescriptorStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.descriptors, name)
	return nil
}

// List returns all descriptors sorted by name.
func (s *DescriptorStore) List(_ context.Context) ([]*domain.Descriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*domain.Descriptor, 0, len(s.descriptors))
	for _, d := range s.descriptors {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// Load returns all descriptors. It never fails.
func (s *DescriptorStore) Load(ctx context.Context) ([]*domain.Descriptor, error) {
	return s.List(ctx)
}
