package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/modpatch/internal/core/domain"
)

// syncBuffer is a bytes.Buffer safe for a concurrent reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch", watchCmd.Use)
	require.NotNil(t, watchCmd.Flags().Lookup("debounce"))
}

func TestWatchTargets(t *testing.T) {
	lib := domain.NewDescriptor("lib", "/p/lib", "/p/lib/src/main/AndroidManifest.xml",
		[]string{domain.PluginAndroidLibrary}, domain.AndroidExtension{})
	core := domain.NewDescriptor("core", "/p/core", "", []string{"java-library"}, domain.AndroidExtension{})

	targets := watchTargets([]*domain.Descriptor{lib, core})

	require.Len(t, targets, 5)
	assert.Equal(t, filepath.Join("/p/lib", "module.toml"), targets[0].Path)
	assert.Equal(t, domain.ChangeManifest, targets[2].Kind)
	assert.Equal(t, "/p/lib/src/main/AndroidManifest.xml", targets[2].Path)
	assert.Equal(t, "core", targets[4].Module)
}

func TestWatchCmd_RepatchesOnManifestWrite(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	root := writeProject(t)
	manifest := filepath.Join(root, "my-lib", "src", "main", "AndroidManifest.xml")

	out := new(syncBuffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs([]string{"watch", "--root", root, "--debounce", "20ms"})
	defer rootCmd.SetArgs(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- rootCmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Watching 2 modules")
	}, 5*time.Second, 20*time.Millisecond)
	assert.NotContains(t, readFile(t, manifest), "package=")

	writeFile(t, manifest, `<manifest package="com.again">`+"\n</manifest>\n")

	require.Eventually(t, func() bool {
		return !strings.Contains(readFile(t, manifest), "package=")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
	assert.Contains(t, out.String(), "1 modules:")
}
