package rules

import (
	"strconv"

	"github.com/custodia-labs/modpatch/internal/core/domain"
	"github.com/custodia-labs/modpatch/internal/core/ports/driven"
	"github.com/custodia-labs/modpatch/internal/rules/compiletarget"
	"github.com/custodia-labs/modpatch/internal/rules/manifest"
	"github.com/custodia-labs/modpatch/internal/rules/namespace"
)

// Config keys understood by the built-in rule builders.
const (
	ConfigPrefix = "prefix"
	ConfigTarget = "target"
)

// RegisterDefaults registers all built-in rules with the registry.
// The manifest rule reads and writes through fsys.
func RegisterDefaults(r *Registry, fsys driven.FileSystem) {
	r.Register(domain.RuleNamespace, buildNamespace)
	r.Register(domain.RuleManifest, func(_ map[string]any) (driven.PatchRule, error) {
		return manifest.New(fsys), nil
	})
	r.Register(domain.RuleCompileTarget, buildCompileTarget)
}

// ConfigFromSettings converts patch settings into generic rule config.
func ConfigFromSettings(s domain.PatchSettings) map[string]any {
	return map[string]any{
		ConfigPrefix: s.NamespacePrefix,
		ConfigTarget: s.CompileTarget,
	}
}

// buildNamespace creates a namespace rule from generic config.
// Supported config keys:
//   - prefix (string): Namespace prefix (default: "com.fix.")
func buildNamespace(cfg map[string]any) (driven.PatchRule, error) {
	var opts []namespace.Option
	if prefix, ok := getStringFromConfig(cfg, ConfigPrefix); ok {
		opts = append(opts, namespace.WithPrefix(prefix))
	}
	return namespace.New(opts...), nil
}

// buildCompileTarget creates a compile target rule from generic config.
// Supported config keys:
//   - target (string): Java/Kotlin target version (default: "17")
func buildCompileTarget(cfg map[string]any) (driven.PatchRule, error) {
	var opts []compiletarget.Option
	if target, ok := getStringFromConfig(cfg, ConfigTarget); ok {
		opts = append(opts, compiletarget.WithTarget(target))
	}
	return compiletarget.New(opts...), nil
}

// getStringFromConfig safely extracts a string from generic config map.
// Integers from TOML parsing are accepted for version-like values.
func getStringFromConfig(cfg map[string]any, key string) (string, bool) {
	val, ok := cfg[key]
	if !ok {
		return "", false
	}

	switch v := val.(type) {
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}
