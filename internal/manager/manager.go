// Package manager implements the file manager core: one object holding a
// current directory, with operations to change it, read, create, and
// delete files, and list directory contents.
//
// All operations delegate to a [fs.FS] and surface failures synchronously
// to the caller. A Manager is plain mutable state with no locking;
// concurrent use of one instance is the caller's problem.
package manager

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/calvinalkan/fileman/internal/fs"
)

// Manager tracks a current directory and performs file operations
// relative to it (CreateFile, ListFiles) or on caller-supplied full
// paths (ReadFile, Delete, ChangeDirectory).
type Manager struct {
	fsys       fs.FS
	currentDir string
}

// New returns a Manager rooted at the process working directory.
func New(fsys fs.FS) (*Manager, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cannot get working directory: %w", err)
	}

	return &Manager{fsys: fsys, currentDir: wd}, nil
}

// NewAt returns a Manager rooted at dir. The directory is not validated;
// callers that need validation should follow up with [Manager.ChangeDirectory].
func NewAt(fsys fs.FS, dir string) *Manager {
	return &Manager{fsys: fsys, currentDir: dir}
}

// CurrentDir returns the current directory.
func (m *Manager) CurrentDir() string {
	return m.currentDir
}

// ChangeDirectory sets the current directory to path.
//
// The path is stored verbatim, with no normalization. Fails if path is
// empty, does not exist, or names something other than a directory.
func (m *Manager) ChangeDirectory(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	info, err := m.fsys.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot change directory to %s: %w", path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s %w", path, ErrNotDirectory)
	}

	m.currentDir = path

	return nil
}

// ReadFile returns the full contents of the file at path.
//
// The path is used as-is, not joined with the current directory. A
// missing file is reported with a wrapped not-exist error; a
// permission failure from the underlying open is returned unchanged.
// Callers that care about the distinction rely on the latter being the
// exact error the filesystem produced.
func (m *Manager) ReadFile(path string) (string, error) {
	f, err := m.fsys.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return "", err
		}

		return "", fmt.Errorf("cannot read %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	return string(data), nil
}

// CreateFile creates or truncates a file named name inside the current
// directory and writes content to it. The name must be a bare filename,
// not a path; an empty name is rejected.
func (m *Manager) CreateFile(name, content string) error {
	if name == "" {
		return ErrEmptyFilename
	}

	path := filepath.Join(m.currentDir, name)

	f, err := m.fsys.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}

	_, werr := io.WriteString(f, content)

	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("writing %s: %w", path, werr)
	}

	if cerr != nil {
		return fmt.Errorf("closing %s: %w", path, cerr)
	}

	return nil
}

// Delete removes the file at path. The path is used as-is, not joined
// with the current directory.
func (m *Manager) Delete(path string) error {
	err := m.fsys.Remove(path)
	if err != nil {
		return fmt.Errorf("cannot delete %s: %w", path, err)
	}

	return nil
}

// ListFiles returns the names of the entries directly contained in the
// current directory, sorted ascending. An empty directory yields an
// empty slice. Does not recurse.
func (m *Manager) ListFiles() ([]string, error) {
	entries, err := m.fsys.ReadDir(m.currentDir)
	if err != nil {
		return nil, fmt.Errorf("cannot list %s: %w", m.currentDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names, nil
}
