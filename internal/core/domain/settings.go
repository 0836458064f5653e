package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Built-in rule names, in canonical order.
const (
	RuleNamespace     = "namespace"
	RuleManifest      = "manifest"
	RuleCompileTarget = "compile-target"
)

// Default patch settings.
const (
	DefaultNamespacePrefix = "com.fix."
	DefaultCompileTarget   = "17"
	DefaultManifestPath    = "src/main/AndroidManifest.xml"
	DefaultJobs            = 1
)

// DefaultRules returns the built-in rules in the order they run.
func DefaultRules() []string {
	return []string{RuleNamespace, RuleManifest, RuleCompileTarget}
}

// PatchSettings configures a patching pass.
type PatchSettings struct {
	// NamespacePrefix is prepended to the sanitised module name.
	NamespacePrefix string

	// CompileTarget is pinned on both Java and Kotlin toolchains.
	CompileTarget string

	// ManifestPath is the manifest location relative to a module directory.
	ManifestPath string

	// Rules lists enabled rules in execution order.
	Rules []string

	// Jobs bounds how many modules are patched concurrently.
	Jobs int
}

// DefaultPatchSettings returns settings matching the stock fix pack.
func DefaultPatchSettings() PatchSettings {
	return PatchSettings{
		NamespacePrefix: DefaultNamespacePrefix,
		CompileTarget:   DefaultCompileTarget,
		ManifestPath:    DefaultManifestPath,
		Rules:           DefaultRules(),
		Jobs:            DefaultJobs,
	}
}

// IsNamespaceRune reports whether r may appear in a namespace.
func IsNamespaceRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.':
		return true
	default:
		return false
	}
}

// ValidateNamespacePrefix checks that prefix only holds namespace runes and
// starts with a letter. An empty prefix is allowed.
func ValidateNamespacePrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	first := prefix[0]
	if !(first >= 'a' && first <= 'z' || first >= 'A' && first <= 'Z') {
		return fmt.Errorf("%w: namespace prefix %q must start with a letter", ErrInvalidInput, prefix)
	}
	if i := strings.IndexFunc(prefix, func(r rune) bool { return !IsNamespaceRune(r) }); i >= 0 {
		r, _ := utf8.DecodeRuneInString(prefix[i:])
		return fmt.Errorf("%w: namespace prefix %q has invalid character %q", ErrInvalidInput, prefix, r)
	}
	return nil
}

// Validate checks the settings for values no pass could run with.
func (s PatchSettings) Validate() error {
	if err := ValidateNamespacePrefix(s.NamespacePrefix); err != nil {
		return err
	}
	if strings.TrimSpace(s.CompileTarget) == "" {
		return fmt.Errorf("%w: compile target is empty", ErrInvalidInput)
	}
	if strings.TrimSpace(s.ManifestPath) == "" {
		return fmt.Errorf("%w: manifest path is empty", ErrInvalidInput)
	}
	if s.Jobs < 1 {
		return fmt.Errorf("%w: jobs must be at least 1, got %d", ErrInvalidInput, s.Jobs)
	}
	if len(s.Rules) == 0 {
		return fmt.Errorf("%w: no rules enabled", ErrInvalidInput)
	}
	return nil
}
