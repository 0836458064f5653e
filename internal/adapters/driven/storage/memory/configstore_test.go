package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(map[string]any{"compile.target": "21"})

	assert.Equal(t, "21", store.GetString("compile.target"))
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("namespace.prefix", "com.a."))
	require.NoError(t, store.Set("namespace.prefix", "com.b."))

	val, ok := store.Get("namespace.prefix")
	assert.True(t, ok)
	assert.Equal(t, "com.b.", val)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore(map[string]any{"s": "v", "n": 3})

	assert.Equal(t, "v", store.GetString("s"))
	assert.Equal(t, "", store.GetString("n"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected int
	}{
		{"int", 4, 4},
		{"int64", int64(8), 8},
		{"float64", float64(2), 2},
		{"string", "4", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore(map[string]any{"apply.jobs": tt.value})
			assert.Equal(t, tt.expected, store.GetInt("apply.jobs"))
		})
	}

	assert.Equal(t, 0, NewConfigStore().GetInt("missing"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"typed":   []string{"namespace", "manifest"},
		"generic": []any{"namespace", 1, "compile-target"},
		"wrong":   "namespace",
	})

	assert.Equal(t, []string{"namespace", "manifest"}, store.GetStringSlice("typed"))
	assert.Equal(t, []string{"namespace", "compile-target"}, store.GetStringSlice("generic"))
	assert.Nil(t, store.GetStringSlice("wrong"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("apply.jobs", i)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("apply.jobs")
		}()
	}
	wg.Wait()
}
