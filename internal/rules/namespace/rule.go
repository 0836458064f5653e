// Package namespace provides the rule that assigns a fallback namespace to
// android modules that declare none.
package namespace

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/modpatch/internal/core/domain"
)

// DefaultPrefix is prepended to the sanitised module name.
const DefaultPrefix = domain.DefaultNamespacePrefix

// Rule sets prefix + sanitised module name when the namespace is blank.
// It implements the PatchRule interface.
type Rule struct {
	prefix string
}

// Option configures the namespace rule.
type Option func(*Rule)

// WithPrefix sets the namespace prefix.
func WithPrefix(prefix string) Option {
	return func(r *Rule) {
		r.prefix = prefix
	}
}

// New creates a new namespace rule with the given options.
func New(opts ...Option) *Rule {
	r := &Rule{prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the rule name.
func (r *Rule) Name() string {
	return domain.RuleNamespace
}

// Apply assigns the fallback namespace. An existing non-blank namespace is
// never overwritten. Lookup and derivation problems are reported as skips.
func (r *Rule) Apply(_ context.Context, d *domain.Descriptor) (domain.RuleResult, error) {
	m, ok := d.AndroidCapable()
	if !ok {
		return domain.RuleResult{}, fmt.Errorf("%s module has no android extension: %w", d.Kind, domain.ErrCapabilityAbsent)
	}

	current, err := m.Namespace()
	if err != nil {
		return domain.RuleResult{}, fmt.Errorf("%w: read namespace: %w", domain.ErrCapabilityAbsent, err)
	}
	if strings.TrimSpace(current) != "" {
		return domain.RuleResult{Detail: "namespace already set to " + current}, nil
	}

	ns, err := Derive(r.prefix, d.Name)
	if err != nil {
		return domain.RuleResult{}, err
	}

	if err := m.SetNamespace(ns); err != nil {
		return domain.RuleResult{}, fmt.Errorf("%w: set namespace: %w", domain.ErrCapabilityAbsent, err)
	}
	return domain.RuleResult{Applied: true, Detail: "namespace set to " + ns}, nil
}

// Derive builds the fallback namespace for a module name.
func Derive(prefix, name string) (string, error) {
	sanitised := Sanitize(strings.TrimSpace(name))
	if sanitised == "" {
		return "", fmt.Errorf("%w: cannot derive namespace from module name %q", domain.ErrInvalidInput, name)
	}
	return prefix + sanitised, nil
}

// Sanitize replaces every rune that is not allowed in a namespace segment
// (letters, digits, underscore, dot) with an underscore.
func Sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if domain.IsNamespaceRune(r) {
			return r
		}
		return '_'
	}, name)
}
