// Package mocks provides mock implementations for testing.
package mocks

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mcdonaldj/renamer/internal/ports"
)

// MockFileSystem implements ports.FileSystem for testing.
// It models a flat set of directories, which is all the renamer touches.
type MockFileSystem struct {
	// Dirs maps directory paths to their entries for ReadDir
	Dirs map[string][]os.DirEntry
	// Stats maps paths to FileInfo for Lstat
	Stats map[string]os.FileInfo
	// Errors maps paths to errors returned by ReadDir and Lstat
	Errors map[string]error
	// RenameErrors maps source paths to errors returned by Rename
	RenameErrors map[string]error
	// Aliases maps a path to the path it resolves to, simulating
	// case- or normalization-insensitive filesystems
	Aliases map[string]string
	// RenameCalls records every Rename call in order
	RenameCalls []RenameCall
}

// RenameCall records the arguments of one Rename call.
type RenameCall struct {
	OldPath string
	NewPath string
}

// NewMockFileSystem creates a new mock filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Dirs:         make(map[string][]os.DirEntry),
		Stats:        make(map[string]os.FileInfo),
		Errors:       make(map[string]error),
		RenameErrors: make(map[string]error),
		Aliases:      make(map[string]string),
	}
}

// AddDir registers dir as an existing, empty directory.
func (m *MockFileSystem) AddDir(dir string) {
	if _, ok := m.Dirs[dir]; !ok {
		m.Dirs[dir] = []os.DirEntry{}
	}
	m.Stats[dir] = &mockFileInfo{name: filepath.Base(dir), isDir: true, mode: fs.ModeDir}
}

// AddFile adds a regular file called name to dir.
func (m *MockFileSystem) AddFile(dir, name string) {
	m.addEntry(dir, &mockFileInfo{name: name, modTime: time.Now()})
}

// AddSubdir adds a directory called name to dir.
func (m *MockFileSystem) AddSubdir(dir, name string) {
	m.addEntry(dir, &mockFileInfo{name: name, isDir: true, mode: fs.ModeDir})
	m.AddDir(filepath.Join(dir, name))
}

// AddSymlink adds a symlink called name to dir pointing at target, an
// absolute path in the mock.
func (m *MockFileSystem) AddSymlink(dir, name, target string) {
	m.addEntry(dir, &mockFileInfo{name: name, mode: fs.ModeSymlink, target: target})
}

func (m *MockFileSystem) addEntry(dir string, info *mockFileInfo) {
	m.AddDir(dir)
	m.Dirs[dir] = append(m.Dirs[dir], &mockDirEntry{info: info})
	m.Stats[filepath.Join(dir, info.name)] = info
}

// Names returns the entry names of dir sorted by name.
func (m *MockFileSystem) Names(dir string) []string {
	var names []string
	for _, e := range m.Dirs[dir] {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// ReadDir reads the named directory and returns directory entries.
func (m *MockFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	entries, ok := m.Dirs[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	out := make([]os.DirEntry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// Stat returns file info for the named file, following symlinks.
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	for hops := 0; hops < 8; hops++ {
		info, err := m.Lstat(name)
		if err != nil {
			return nil, err
		}
		fi, ok := info.(*mockFileInfo)
		if !ok || fi.mode&fs.ModeSymlink == 0 {
			return info, nil
		}
		name = fi.target
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: errors.New("too many levels of symbolic links")}
}

// Lstat returns file info for the named file.
func (m *MockFileSystem) Lstat(name string) (os.FileInfo, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	if target, ok := m.Aliases[name]; ok {
		name = target
	}
	if info, ok := m.Stats[name]; ok {
		return info, nil
	}
	return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
}

// Rename renames (moves) oldpath to newpath, replacing any existing newpath.
func (m *MockFileSystem) Rename(oldpath, newpath string) error {
	m.RenameCalls = append(m.RenameCalls, RenameCall{OldPath: oldpath, NewPath: newpath})
	if err, ok := m.RenameErrors[oldpath]; ok {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: err}
	}
	info, ok := m.Stats[oldpath]
	if !ok {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrNotExist}
	}

	m.removeEntry(oldpath)
	m.removeEntry(newpath)
	for alias, target := range m.Aliases {
		if alias == newpath || target == oldpath {
			delete(m.Aliases, alias)
		}
	}

	fi := info.(*mockFileInfo)
	fi.name = filepath.Base(newpath)
	m.Stats[newpath] = fi
	dir := filepath.Dir(newpath)
	m.Dirs[dir] = append(m.Dirs[dir], &mockDirEntry{info: fi})
	return nil
}

func (m *MockFileSystem) removeEntry(path string) {
	delete(m.Stats, path)
	dir, base := filepath.Dir(path), filepath.Base(path)
	entries := m.Dirs[dir]
	for i, e := range entries {
		if e.Name() == base {
			m.Dirs[dir] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

// SameFile reports whether fi1 and fi2 describe the same file.
func (m *MockFileSystem) SameFile(fi1, fi2 os.FileInfo) bool {
	a, ok1 := fi1.(*mockFileInfo)
	b, ok2 := fi2.(*mockFileInfo)
	return ok1 && ok2 && a == b
}

// mockFileInfo implements os.FileInfo for testing.
type mockFileInfo struct {
	name    string
	size    int64
	mode    os.FileMode
	modTime time.Time
	isDir   bool
	target  string
}

func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.size }
func (fi *mockFileInfo) Mode() os.FileMode  { return fi.mode }
func (fi *mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *mockFileInfo) IsDir() bool        { return fi.isDir }
func (fi *mockFileInfo) Sys() interface{}   { return nil }

// mockDirEntry implements os.DirEntry for testing.
type mockDirEntry struct {
	info *mockFileInfo
}

func (d *mockDirEntry) Name() string               { return d.info.name }
func (d *mockDirEntry) IsDir() bool                { return d.info.isDir }
func (d *mockDirEntry) Type() fs.FileMode          { return d.info.mode.Type() }
func (d *mockDirEntry) Info() (fs.FileInfo, error) { return d.info, nil }

// Compile-time check that MockFileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*MockFileSystem)(nil)
