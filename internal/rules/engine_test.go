package rules

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/modpatch/internal/core/domain"
)

// mockRule is a test rule that returns a predefined result.
type mockRule struct {
	name   string
	result domain.RuleResult
	err    error
	panics bool
	calls  int
}

func (m *mockRule) Name() string {
	return m.name
}

func (m *mockRule) Apply(_ context.Context, _ *domain.Descriptor) (domain.RuleResult, error) {
	m.calls++
	if m.panics {
		panic("boom")
	}
	return m.result, m.err
}

func testDescriptor() *domain.Descriptor {
	return domain.NewDescriptor("my-lib", "/p/my-lib", "", []string{domain.PluginAndroidLibrary}, domain.AndroidExtension{})
}

func TestNewEngine(t *testing.T) {
	e := NewEngine()
	require.NotNil(t, e)
	assert.Equal(t, 0, e.Len())
}

func TestEngine_Add(t *testing.T) {
	e := NewEngine()
	e.Add(&mockRule{name: "a"})
	e.Add(&mockRule{name: "b"})

	assert.Equal(t, 2, e.Len())
	assert.Equal(t, []string{"a", "b"}, e.Names())
}

func TestEngine_Run_NilDescriptor(t *testing.T) {
	e := NewEngine(&mockRule{name: "a"})
	assert.Nil(t, e.Run(context.Background(), nil))
}

func TestEngine_Run_EmptyEngine(t *testing.T) {
	outcomes := NewEngine().Run(context.Background(), testDescriptor())
	assert.Empty(t, outcomes)
}

func TestEngine_Run_OrderAndMapping(t *testing.T) {
	e := NewEngine(
		&mockRule{name: "applies", result: domain.RuleResult{Applied: true, Detail: "done"}},
		&mockRule{name: "noop", result: domain.RuleResult{Detail: "nothing to do"}},
		&mockRule{name: "absent", err: fmt.Errorf("kotlin: %w", domain.ErrCapabilityAbsent)},
		&mockRule{name: "invalid", err: fmt.Errorf("%w: bad name", domain.ErrInvalidInput)},
		&mockRule{name: "io", err: fmt.Errorf("%w: write: denied", domain.ErrIO)},
		&mockRule{name: "unexpected", err: errors.New("surprise")},
	)

	outcomes := e.Run(context.Background(), testDescriptor())

	require.Len(t, outcomes, 6)
	expected := []struct {
		rule   string
		status domain.PatchStatus
	}{
		{"applies", domain.PatchApplied},
		{"noop", domain.PatchSkipped},
		{"absent", domain.PatchSkipped},
		{"invalid", domain.PatchSkipped},
		{"io", domain.PatchFailed},
		{"unexpected", domain.PatchFailed},
	}
	for i, exp := range expected {
		assert.Equal(t, exp.rule, outcomes[i].Rule)
		assert.Equal(t, "my-lib", outcomes[i].Module)
		assert.Equal(t, exp.status, outcomes[i].Status, exp.rule)
	}
	assert.Equal(t, "done", outcomes[0].Detail)
	assert.Contains(t, outcomes[4].Detail, "denied")
	assert.Contains(t, outcomes[5].Detail, "surprise")
}

func TestEngine_Run_FailureDoesNotStopLaterRules(t *testing.T) {
	failing := &mockRule{name: "io", err: domain.ErrIO}
	after := &mockRule{name: "after", result: domain.RuleResult{Applied: true}}

	outcomes := NewEngine(failing, after).Run(context.Background(), testDescriptor())

	require.Len(t, outcomes, 2)
	assert.Equal(t, domain.PatchFailed, outcomes[0].Status)
	assert.Equal(t, domain.PatchApplied, outcomes[1].Status)
	assert.Equal(t, 1, after.calls)
}

func TestEngine_Run_PanicBecomesFailure(t *testing.T) {
	after := &mockRule{name: "after", result: domain.RuleResult{Applied: true}}

	outcomes := NewEngine(&mockRule{name: "panics", panics: true}, after).Run(context.Background(), testDescriptor())

	require.Len(t, outcomes, 2)
	assert.Equal(t, domain.PatchFailed, outcomes[0].Status)
	assert.Contains(t, outcomes[0].Detail, "boom")
	assert.Equal(t, domain.PatchApplied, outcomes[1].Status)
}

func TestEngine_Run_EachRuleOnce(t *testing.T) {
	a := &mockRule{name: "a"}
	b := &mockRule{name: "b"}

	NewEngine(a, b).Run(context.Background(), testDescriptor())

	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
}

func TestClassify(t *testing.T) {
	status, detail := Classify(domain.RuleResult{Applied: true, Detail: "x"}, nil)
	assert.Equal(t, domain.PatchApplied, status)
	assert.Equal(t, "x", detail)

	status, _ = Classify(domain.RuleResult{Applied: true}, domain.ErrIO)
	assert.Equal(t, domain.PatchFailed, status)
}
