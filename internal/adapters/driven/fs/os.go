// Package fs provides the operating-system implementation of driven.FileSystem.
package fs

import (
	iofs "io/fs"
	"os"

	"github.com/custodia-labs/modpatch/internal/core/ports/driven"
)

// Ensure OS implements the interface.
var _ driven.FileSystem = OS{}

// OS reads and writes files on the local disk.
type OS struct{}

// Stat returns file info.
func (OS) Stat(path string) (iofs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile returns the whole file content.
func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile replaces the file content.
func (OS) WriteFile(path string, data []byte, perm iofs.FileMode) error {
	return os.WriteFile(path, data, perm)
}
