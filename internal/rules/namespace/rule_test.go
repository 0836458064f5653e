package namespace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/modpatch/internal/core/domain"
)

func library(name, ns string) *domain.Descriptor {
	return domain.NewDescriptor(name, "/p/"+name, "", []string{domain.PluginAndroidLibrary},
		domain.AndroidExtension{NamespaceValue: ns})
}

// brokenModule fails every namespace access.
type brokenModule struct {
	domain.AndroidExtension
}

func (b *brokenModule) SetNamespace(string) error {
	return errors.New("setter rejected value")
}

func TestNew_Defaults(t *testing.T) {
	r := New()
	assert.Equal(t, "com.fix.", r.prefix)
	assert.Equal(t, domain.RuleNamespace, r.Name())
}

func TestWithPrefix(t *testing.T) {
	r := New(WithPrefix("org.patched."))
	assert.Equal(t, "org.patched.", r.prefix)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"my-lib", "my_lib"},
		{"core", "core"},
		{"on-audio-query", "on_audio_query"},
		{"with space", "with_space"},
		{"dotted.name", "dotted.name"},
		{"Mixed_Case9", "Mixed_Case9"},
		{"ünïcode", "_n_code"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.in))
		})
	}
}

func TestDerive(t *testing.T) {
	ns, err := Derive("com.fix.", "my-lib")
	require.NoError(t, err)
	assert.Equal(t, "com.fix.my_lib", ns)

	_, err = Derive("com.fix.", "   ")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestApply_BlankNamespace(t *testing.T) {
	d := library("my-lib", "")

	res, err := New().Apply(context.Background(), d)

	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, "com.fix.my_lib", d.Namespace())
}

func TestApply_WhitespaceNamespaceIsBlank(t *testing.T) {
	d := library("my-lib", "  ")

	res, err := New().Apply(context.Background(), d)

	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, "com.fix.my_lib", d.Namespace())
}

func TestApply_ExistingNamespaceNeverOverwritten(t *testing.T) {
	d := library("my-lib", "com.example.lib")
	r := New()

	for i := 0; i < 3; i++ {
		res, err := r.Apply(context.Background(), d)
		require.NoError(t, err)
		assert.False(t, res.Applied)
		assert.Contains(t, res.Detail, "com.example.lib")
	}
	assert.Equal(t, "com.example.lib", d.Namespace())
}

func TestApply_SecondRunSkips(t *testing.T) {
	d := library("my-lib", "")
	r := New()

	first, err := r.Apply(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, first.Applied)

	second, err := r.Apply(context.Background(), d)
	require.NoError(t, err)
	assert.False(t, second.Applied)
	assert.Equal(t, "com.fix.my_lib", d.Namespace())
}

func TestApply_OtherModule(t *testing.T) {
	d := domain.NewDescriptor("core", "/p/core", "", nil, domain.AndroidExtension{})

	_, err := New().Apply(context.Background(), d)

	assert.True(t, errors.Is(err, domain.ErrCapabilityAbsent))
	assert.Equal(t, "", d.Namespace())
}

func TestApply_UnderivableName(t *testing.T) {
	d := library("", "")

	_, err := New().Apply(context.Background(), d)

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, "", d.Namespace())
}

func TestApply_SetterFailure(t *testing.T) {
	d := library("my-lib", "")
	d.Android = &brokenModule{}

	_, err := New().Apply(context.Background(), d)

	assert.True(t, errors.Is(err, domain.ErrCapabilityAbsent))
	assert.Contains(t, err.Error(), "setter rejected value")
}
