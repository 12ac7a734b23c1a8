// Package ports defines interfaces (contracts) for external dependencies.
// These enable dependency injection and testability via mock implementations.
package ports

import (
	"os"
)

// FileSystem abstracts the filesystem operations the renamer performs.
// Production code uses the osfs adapter; tests use mocks.MockFileSystem.
type FileSystem interface {
	// ReadDir reads the named directory and returns its entries.
	ReadDir(name string) ([]os.DirEntry, error)

	// Stat returns file info for the named file, following symlinks.
	Stat(name string) (os.FileInfo, error)

	// Lstat returns file info for the named file without following symlinks.
	Lstat(name string) (os.FileInfo, error)

	// Rename renames (moves) oldpath to newpath.
	Rename(oldpath, newpath string) error

	// SameFile reports whether fi1 and fi2 describe the same file.
	SameFile(fi1, fi2 os.FileInfo) bool
}
