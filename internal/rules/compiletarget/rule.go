// Package compiletarget provides the rule that pins the Java and Kotlin
// compiler targets of android modules to one version.
package compiletarget

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/modpatch/internal/core/domain"
)

// DefaultTarget is the version pinned on both toolchains.
const DefaultTarget = domain.DefaultCompileTarget

// Rule sets both compiler targets unconditionally.
// It implements the PatchRule interface.
type Rule struct {
	target string
}

// Option configures the compile target rule.
type Option func(*Rule)

// WithTarget sets the target version.
func WithTarget(target string) Option {
	return func(r *Rule) {
		if strings.TrimSpace(target) != "" {
			r.target = strings.TrimSpace(target)
		}
	}
}

// New creates a new compile target rule with the given options.
func New(opts ...Option) *Rule {
	r := &Rule{target: DefaultTarget}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the rule name.
func (r *Rule) Name() string {
	return domain.RuleCompileTarget
}

// Target returns the pinned version.
func (r *Rule) Target() string {
	return r.target
}

// Apply writes the target on every toolchain the module exposes, regardless
// of the current values. It reports applied whenever at least one target was
// written, so repeated runs keep reporting applied. A toolchain that declares
// a different target but cannot be written makes the whole rule skip.
func (r *Rule) Apply(_ context.Context, d *domain.Descriptor) (domain.RuleResult, error) {
	m, ok := d.AndroidCapable()
	if !ok {
		return domain.RuleResult{}, fmt.Errorf("%s module has no compile options: %w", d.Kind, domain.ErrCapabilityAbsent)
	}

	toolchains := []struct {
		name string
		get  func() (string, error)
		set  func(string) error
	}{
		{"java", m.JavaTarget, m.SetJavaTarget},
		{"kotlin", m.KotlinTarget, m.SetKotlinTarget},
	}

	var set, absent []string
	for _, tc := range toolchains {
		err := tc.set(r.target)
		if err == nil {
			set = append(set, tc.name)
			continue
		}
		if current, _ := tc.get(); current != "" && current != r.target {
			return domain.RuleResult{}, fmt.Errorf("%s target %s cannot be changed: %w", tc.name, current, err)
		}
		absent = append(absent, tc.name+": "+err.Error())
	}

	if len(set) == 0 {
		return domain.RuleResult{}, fmt.Errorf("%w: %s", domain.ErrCapabilityAbsent, strings.Join(absent, "; "))
	}

	detail := fmt.Sprintf("%s target set to %s", strings.Join(set, "+"), r.target)
	if len(absent) > 0 {
		detail += " (" + strings.Join(absent, "; ") + ")"
	}
	return domain.RuleResult{Applied: true, Detail: detail}, nil
}
