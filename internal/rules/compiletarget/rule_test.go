package compiletarget

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/modpatch/internal/core/domain"
)

// javaless has no Java compile options.
type javaless struct {
	domain.AndroidExtension
}

func (j *javaless) SetJavaTarget(string) error {
	return domain.ErrCapabilityAbsent
}

func TestNew_Defaults(t *testing.T) {
	r := New()
	assert.Equal(t, "17", r.Target())
	assert.Equal(t, domain.RuleCompileTarget, r.Name())
}

func TestWithTarget(t *testing.T) {
	assert.Equal(t, "21", New(WithTarget("21")).Target())
	assert.Equal(t, "17", New(WithTarget("  ")).Target())
}

func TestApply_PinsBothTargets(t *testing.T) {
	tests := []struct {
		name   string
		java   string
		kotlin string
	}{
		{"mismatched", "1.8", "21"},
		{"unset", "", ""},
		{"already pinned", "17", "17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := domain.NewDescriptor("app", "/p/app", "",
				[]string{domain.PluginAndroidApplication, domain.PluginKotlinAndroid},
				domain.AndroidExtension{JavaTargetValue: tt.java, KotlinTargetValue: tt.kotlin})

			res, err := New().Apply(context.Background(), d)

			require.NoError(t, err)
			assert.True(t, res.Applied)
			assert.Equal(t, "17", d.JavaTarget())
			assert.Equal(t, "17", d.KotlinTarget())
		})
	}
}

func TestApply_AlwaysReportsApplied(t *testing.T) {
	d := domain.NewDescriptor("lib", "/p/lib", "",
		[]string{domain.PluginAndroidLibrary, domain.PluginKotlinAndroid}, domain.AndroidExtension{})
	r := New()

	for i := 0; i < 3; i++ {
		res, err := r.Apply(context.Background(), d)
		require.NoError(t, err)
		assert.True(t, res.Applied)
	}
}

func TestApply_JavaOnlyModule(t *testing.T) {
	d := domain.NewDescriptor("lib", "/p/lib", "", []string{domain.PluginAndroidLibrary},
		domain.AndroidExtension{JavaTargetValue: "1.8"})

	res, err := New().Apply(context.Background(), d)

	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, "17", d.JavaTarget())
	assert.Contains(t, res.Detail, "java target set to 17")
	assert.Contains(t, res.Detail, "kotlin")
}

func TestApply_NoTargetsAvailable(t *testing.T) {
	d := domain.NewDescriptor("lib", "/p/lib", "", []string{domain.PluginAndroidLibrary}, domain.AndroidExtension{})
	d.Android = &javaless{}

	_, err := New().Apply(context.Background(), d)

	assert.True(t, errors.Is(err, domain.ErrCapabilityAbsent))
}

func TestApply_OtherModule(t *testing.T) {
	d := domain.NewDescriptor("core", "/p/core", "", nil, domain.AndroidExtension{})

	_, err := New().Apply(context.Background(), d)

	assert.True(t, errors.Is(err, domain.ErrCapabilityAbsent))
}

func TestApply_DeclaredKotlinTargetWithoutPlugin(t *testing.T) {
	d := domain.NewDescriptor("lib", "/p/lib", "", []string{domain.PluginAndroidLibrary},
		domain.AndroidExtension{JavaTargetValue: "1.8", KotlinTargetValue: "1.8"})

	res, err := New().Apply(context.Background(), d)

	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, "java+kotlin target set to 17", res.Detail)
	assert.Equal(t, "17", d.JavaTarget())
	assert.Equal(t, "17", d.KotlinTarget())
}

func TestApply_DeclaredTargetThatCannotBeSetSkips(t *testing.T) {
	d := domain.NewDescriptor("lib", "/p/lib", "", []string{domain.PluginAndroidLibrary}, domain.AndroidExtension{})
	d.Android = &javaless{domain.AndroidExtension{JavaTargetValue: "1.8", KotlinTargetValue: "11", Kotlin: true}}

	_, err := New().Apply(context.Background(), d)

	assert.True(t, errors.Is(err, domain.ErrCapabilityAbsent))
	assert.Contains(t, err.Error(), "java target 1.8 cannot be changed")
	assert.Equal(t, "11", d.KotlinTarget())
}
