package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPatchSettings(t *testing.T) {
	s := DefaultPatchSettings()

	assert.Equal(t, "com.fix.", s.NamespacePrefix)
	assert.Equal(t, "17", s.CompileTarget)
	assert.Equal(t, "src/main/AndroidManifest.xml", s.ManifestPath)
	assert.Equal(t, []string{RuleNamespace, RuleManifest, RuleCompileTarget}, s.Rules)
	assert.Equal(t, 1, s.Jobs)
	assert.NoError(t, s.Validate())
}

func TestDefaultRules_ReturnsFreshSlice(t *testing.T) {
	a := DefaultRules()
	a[0] = "changed"
	assert.Equal(t, RuleNamespace, DefaultRules()[0])
}

func TestPatchSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PatchSettings)
	}{
		{"empty compile target", func(s *PatchSettings) { s.CompileTarget = " " }},
		{"empty manifest path", func(s *PatchSettings) { s.ManifestPath = "" }},
		{"zero jobs", func(s *PatchSettings) { s.Jobs = 0 }},
		{"no rules", func(s *PatchSettings) { s.Rules = nil }},
		{"prefix with space", func(s *PatchSettings) { s.NamespacePrefix = "com fix." }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultPatchSettings()
			tt.mutate(&s)
			err := s.Validate()
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestPatchSettings_EmptyPrefixAllowed(t *testing.T) {
	s := DefaultPatchSettings()
	s.NamespacePrefix = ""
	assert.NoError(t, s.Validate())
}

func TestValidateNamespacePrefix(t *testing.T) {
	tests := []struct {
		prefix string
		valid  bool
	}{
		{"", true},
		{"com.fix.", true},
		{"org.acme_tools.", true},
		{"com fix.", false},
		{"-x.", false},
		{"1com.", false},
		{".com.", false},
		{"com/fix.", false},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			err := ValidateNamespacePrefix(tt.prefix)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrInvalidInput))
			}
		})
	}
}

func TestIsNamespaceRune(t *testing.T) {
	for _, r := range "azAZ09_." {
		assert.True(t, IsNamespaceRune(r), string(r))
	}
	for _, r := range " -/é" {
		assert.False(t, IsNamespaceRune(r), string(r))
	}
}
