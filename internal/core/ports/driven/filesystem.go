package driven

import "io/fs"

// FileSystem is the file access rules need for module artifacts.
type FileSystem interface {
	// Stat returns file info. Missing files return an error matching fs.ErrNotExist.
	Stat(path string) (fs.FileInfo, error)

	// ReadFile returns the whole file content.
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the file content.
	WriteFile(path string, data []byte, perm fs.FileMode) error
}
