// Package manifest provides the rule that strips the deprecated package
// attribute from module manifests.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"regexp"

	"github.com/custodia-labs/modpatch/internal/core/domain"
	"github.com/custodia-labs/modpatch/internal/core/ports/driven"
)

// packageAttr matches a package="..." assignment with its leading whitespace.
var packageAttr = regexp.MustCompile(`\s+package="[^"]+"`)

// Rule removes package="..." from the module manifest.
// It implements the PatchRule interface.
type Rule struct {
	fs driven.FileSystem
}

// New creates a manifest rule that reads and writes through fsys.
func New(fsys driven.FileSystem) *Rule {
	return &Rule{fs: fsys}
}

// Name returns the rule name.
func (r *Rule) Name() string {
	return domain.RuleManifest
}

// Apply strips the attribute in a single substitution pass. The file is
// written only when its content changed.
func (r *Rule) Apply(_ context.Context, d *domain.Descriptor) (domain.RuleResult, error) {
	if !d.Kind.IsAndroid() {
		return domain.RuleResult{}, fmt.Errorf("%s module has no android manifest: %w", d.Kind, domain.ErrCapabilityAbsent)
	}
	if d.ManifestPath == "" {
		return domain.RuleResult{Detail: "no manifest path"}, nil
	}

	info, err := r.fs.Stat(d.ManifestPath)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.RuleResult{Detail: "manifest not found"}, nil
	}
	if err != nil {
		return domain.RuleResult{}, fmt.Errorf("%w: stat %s: %w", domain.ErrIO, d.ManifestPath, err)
	}
	if info.IsDir() {
		return domain.RuleResult{}, fmt.Errorf("%w: %s is a directory", domain.ErrIO, d.ManifestPath)
	}

	original, err := r.fs.ReadFile(d.ManifestPath)
	if err != nil {
		return domain.RuleResult{}, fmt.Errorf("%w: read %s: %w", domain.ErrIO, d.ManifestPath, err)
	}

	patched, removed := Strip(string(original))
	if removed == 0 {
		return domain.RuleResult{Detail: "no package attribute"}, nil
	}

	if err := r.fs.WriteFile(d.ManifestPath, []byte(patched), info.Mode().Perm()); err != nil {
		return domain.RuleResult{}, fmt.Errorf("%w: write %s: %w", domain.ErrIO, d.ManifestPath, err)
	}
	return domain.RuleResult{
		Applied: true,
		Detail:  fmt.Sprintf("removed %d package attribute(s)", removed),
	}, nil
}

// Strip removes every package="..." assignment and reports how many were removed.
func Strip(text string) (string, int) {
	removed := len(packageAttr.FindAllStringIndex(text, -1))
	if removed == 0 {
		return text, 0
	}
	return packageAttr.ReplaceAllString(text, ""), removed
}
