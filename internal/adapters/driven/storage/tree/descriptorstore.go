// Package tree provides a driven.DescriptorStore that discovers modules by
// walking a project directory for module descriptor files.
package tree

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/modpatch/internal/core/domain"
	"github.com/custodia-labs/modpatch/internal/core/ports/driven"
)

// Descriptor file names recognised in module directories.
const (
	TOMLDescriptorFile = "module.toml"
	YAMLDescriptorFile = "module.yaml"
)

// Ensure DescriptorStore implements the interface.
var _ driven.DescriptorStore = (*DescriptorStore)(nil)

// moduleFile is the on-disk shape of a module descriptor.
// Targets are untyped so both "17" and 1.8 are accepted.
type moduleFile struct {
	Name         string   `toml:"name" yaml:"name"`
	Plugins      []string `toml:"plugins" yaml:"plugins"`
	Namespace    string   `toml:"namespace" yaml:"namespace"`
	JavaTarget   any      `toml:"java_target" yaml:"java_target"`
	KotlinTarget any      `toml:"kotlin_target" yaml:"kotlin_target"`
	Manifest     string   `toml:"manifest" yaml:"manifest"`
}

// DescriptorStore loads descriptors from module.toml / module.yaml files
// below a root directory. Every call re-reads the tree.
type DescriptorStore struct {
	root         string
	manifestPath string
}

// Option configures the store.
type Option func(*DescriptorStore)

// WithManifestPath sets the manifest location relative to each module directory.
func WithManifestPath(rel string) Option {
	return func(s *DescriptorStore) {
		if rel != "" {
			s.manifestPath = rel
		}
	}
}

// New creates a store rooted at root.
func New(root string, opts ...Option) *DescriptorStore {
	s := &DescriptorStore{
		root:         root,
		manifestPath: domain.DefaultManifestPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the project root.
func (s *DescriptorStore) Root() string {
	return s.root
}

// Load walks the root and returns every module sorted by name.
func (s *DescriptorStore) Load(ctx context.Context) ([]*domain.Descriptor, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDiscovery, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrDiscovery, s.root)
	}

	var descriptors []*domain.Descriptor
	seen := make(map[string]string)

	err = filepath.WalkDir(s.root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if entry.IsDir() {
			if path != s.root && skipDir(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.Name() != TOMLDescriptorFile && entry.Name() != YAMLDescriptorFile {
			return nil
		}

		d, err := s.readDescriptor(path)
		if err != nil {
			return err
		}
		if prev, dup := seen[d.Name]; dup {
			return fmt.Errorf("duplicate module %q in %s and %s", d.Name, prev, path)
		}
		seen[d.Name] = path
		descriptors = append(descriptors, d)
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrDiscovery, err)
	}

	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].Name < descriptors[j].Name
	})
	return descriptors, nil
}

// Get loads the tree and returns the named module.
func (s *DescriptorStore) Get(ctx context.Context, name string) (*domain.Descriptor, error) {
	descriptors, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range descriptors {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("module %s: %w", name, domain.ErrNotFound)
}

// readDescriptor parses one descriptor file.
func (s *DescriptorStore) readDescriptor(path string) (*domain.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var mf moduleFile
	switch filepath.Base(path) {
	case TOMLDescriptorFile:
		err = toml.Unmarshal(data, &mf)
	default:
		err = yaml.Unmarshal(data, &mf)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	name := strings.TrimSpace(mf.Name)
	if name == "" {
		name = filepath.Base(dir)
	}

	manifest := mf.Manifest
	if manifest == "" {
		manifest = s.manifestPath
	}
	if !filepath.IsAbs(manifest) {
		manifest = filepath.Join(dir, manifest)
	}

	return domain.NewDescriptor(name, dir, manifest, mf.Plugins, domain.AndroidExtension{
		NamespaceValue:    mf.Namespace,
		JavaTargetValue:   versionString(mf.JavaTarget),
		KotlinTargetValue: versionString(mf.KotlinTarget),
	}), nil
}

// DescriptorPaths returns the descriptor file paths a module directory may hold.
func DescriptorPaths(dir string) []string {
	return []string{
		filepath.Join(dir, TOMLDescriptorFile),
		filepath.Join(dir, YAMLDescriptorFile),
	}
}

// skipDir reports whether a directory is never descended.
func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "build"
}

// versionString normalises a decoded version value.
func versionString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
