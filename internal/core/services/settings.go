package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/modpatch/internal/core/domain"
	"github.com/custodia-labs/modpatch/internal/core/ports/driven"
	"github.com/custodia-labs/modpatch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyNamespacePrefix = "namespace.prefix"
	KeyCompileTarget   = "compile.target"
	KeyManifestPath    = "manifest.path"
	KeyRulesEnabled    = "rules.enabled"
	KeyApplyJobs       = "apply.jobs"
)

// SettingsService maps configuration keys onto patch settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get returns the stored settings, falling back to defaults for unset keys.
func (s *SettingsService) Get() (*domain.PatchSettings, error) {
	settings := domain.DefaultPatchSettings()
	if s.configStore == nil {
		return &settings, nil
	}

	if _, ok := s.configStore.Get(KeyNamespacePrefix); ok {
		settings.NamespacePrefix = s.configStore.GetString(KeyNamespacePrefix)
	}
	if v := s.versionValue(KeyCompileTarget); v != "" {
		settings.CompileTarget = v
	}
	if v := s.configStore.GetString(KeyManifestPath); v != "" {
		settings.ManifestPath = v
	}
	if v := s.configStore.GetStringSlice(KeyRulesEnabled); len(v) > 0 {
		settings.Rules = v
	}
	if v := s.configStore.GetInt(KeyApplyJobs); v > 0 {
		settings.Jobs = v
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings from %s: %w", s.configStore.Path(), err)
	}
	return &settings, nil
}

// Set validates and stores a single setting.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return fmt.Errorf("%w: no config store", domain.ErrInvalidInput)
	}

	value = strings.TrimSpace(value)
	switch key {
	case KeyNamespacePrefix:
		if err := domain.ValidateNamespacePrefix(value); err != nil {
			return err
		}
		return s.configStore.Set(key, value)

	case KeyCompileTarget, KeyManifestPath:
		if value == "" {
			return fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, value)

	case KeyRulesEnabled:
		rules, err := parseRules(value)
		if err != nil {
			return err
		}
		return s.configStore.Set(key, rules)

	case KeyApplyJobs:
		jobs, err := strconv.Atoi(value)
		if err != nil || jobs < 1 {
			return fmt.Errorf("%w: %s must be a positive integer, got %q", domain.ErrInvalidInput, key, value)
		}
		return s.configStore.Set(key, jobs)

	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Keys returns the recognised setting keys.
func (s *SettingsService) Keys() []string {
	return []string{KeyNamespacePrefix, KeyCompileTarget, KeyManifestPath, KeyRulesEnabled, KeyApplyJobs}
}

// versionValue reads a version-like key that TOML may have parsed as a number.
func (s *SettingsService) versionValue(key string) string {
	val, ok := s.configStore.Get(key)
	if !ok {
		return ""
	}
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// parseRules splits a comma-separated rule list and checks every name.
func parseRules(value string) ([]string, error) {
	known := domain.DefaultRules()
	var rules []string
	for _, part := range strings.Split(value, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if !slices.Contains(known, name) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownRule, name)
		}
		if !slices.Contains(rules, name) {
			rules = append(rules, name)
		}
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: no rules given", domain.ErrInvalidInput)
	}
	return rules, nil
}
