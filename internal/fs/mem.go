package fs

import (
	"bytes"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Op names an FS operation for error injection on [Mem].
type Op string

// Operations that support injection.
const (
	OpOpen    Op = "open"
	OpCreate  Op = "create"
	OpStat    Op = "stat"
	OpRemove  Op = "remove"
	OpReadDir Op = "readdir"
)

var (
	errNotReadable  = errors.New("file not open for reading")
	errNotWritable  = errors.New("file not open for writing")
	errIsDirectory  = errors.New("is a directory")
	errNotDirectory = errors.New("not a directory")
	errNotEmpty     = errors.New("directory not empty")
)

// Mem implements [FS] entirely in memory.
//
// It exists so unit tests can exercise error paths without touching real
// disk: [Mem.FailWith] forces a specific operation on a specific path to
// return a caller-chosen error, which is then returned by the next call
// exactly as injected (same error value, no wrapping). This is how tests
// force a permission-denied open on a file that does not need to exist.
//
// Missing paths fail with a [iofs.PathError] wrapping [iofs.ErrNotExist],
// matching the [os] package, so os.IsNotExist and errors.Is checks behave
// identically against Real and Mem.
//
// Mem is safe for concurrent use, though the manager built on top of it
// is not (and does not need to be).
type Mem struct {
	mu       sync.Mutex
	files    map[string]*memEntry
	dirs     map[string]bool
	failures map[string]error
}

type memEntry struct {
	data    []byte
	modTime time.Time
}

// NewMem returns an empty in-memory filesystem containing only the root
// directory and ".".
func NewMem() *Mem {
	return &Mem{
		files:    map[string]*memEntry{},
		dirs:     map[string]bool{"/": true, ".": true},
		failures: map[string]error{},
	}
}

// FailWith injects err for the next calls of op on path.
// The error is returned exactly as given. Injection persists until
// cleared with a nil err.
func (m *Mem) FailWith(op Op, path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := string(op) + "\x00" + filepath.Clean(path)
	if err == nil {
		delete(m.failures, key)

		return
	}

	m.failures[key] = err
}

// AddFile creates a file with the given content, creating parent
// directories as needed. Intended for test setup.
func (m *Mem) AddFile(path string, data []byte) {
	path = filepath.Clean(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.addParents(path)
	m.files[path] = &memEntry{data: append([]byte(nil), data...), modTime: time.Now()}
}

// AddDir creates a directory and all parents. Intended for test setup.
func (m *Mem) AddDir(path string) {
	path = filepath.Clean(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.addParents(path)
	m.dirs[path] = true
}

// --- FS implementation ---

func (m *Mem) Open(path string) (File, error) {
	path = filepath.Clean(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected(OpOpen, path); err != nil {
		return nil, err
	}

	entry, ok := m.files[path]
	if !ok {
		if m.dirs[path] {
			// Directory handles only support Stat, like a bare os.Open on a dir.
			return &memFile{fs: m, path: path, isDir: true}, nil
		}

		return nil, pathErr("open", path, iofs.ErrNotExist)
	}

	return &memFile{fs: m, path: path, reader: bytes.NewReader(entry.data)}, nil
}

func (m *Mem) Create(path string) (File, error) {
	path = filepath.Clean(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected(OpCreate, path); err != nil {
		return nil, err
	}

	if m.dirs[path] {
		return nil, pathErr("open", path, errIsDirectory)
	}

	if !m.dirs[filepath.Dir(path)] {
		return nil, pathErr("open", path, iofs.ErrNotExist)
	}

	// Create or truncate.
	m.files[path] = &memEntry{modTime: time.Now()}

	return &memFile{fs: m, path: path, writable: true}, nil
}

func (m *Mem) ReadFile(path string) ([]byte, error) {
	f, err := m.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mf := f.(*memFile)
	if mf.isDir {
		return nil, pathErr("read", path, errIsDirectory)
	}

	data := make([]byte, mf.reader.Len())
	_, _ = mf.reader.Read(data)

	return data, nil
}

func (m *Mem) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := m.Create(path)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()

		return err
	}

	return f.Close()
}

func (m *Mem) ReadDir(path string) ([]os.DirEntry, error) {
	path = filepath.Clean(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected(OpReadDir, path); err != nil {
		return nil, err
	}

	if !m.dirs[path] {
		if _, ok := m.files[path]; ok {
			return nil, pathErr("readdirent", path, errNotDirectory)
		}

		return nil, pathErr("open", path, iofs.ErrNotExist)
	}

	var entries []os.DirEntry

	for p, entry := range m.files {
		if filepath.Dir(p) == path {
			entries = append(entries, &memDirEntry{name: filepath.Base(p), size: int64(len(entry.data)), modTime: entry.modTime})
		}
	}

	for p := range m.dirs {
		if p != path && filepath.Dir(p) == path {
			entries = append(entries, &memDirEntry{name: filepath.Base(p), isDir: true})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	return entries, nil
}

func (m *Mem) MkdirAll(path string, perm os.FileMode) error {
	path = filepath.Clean(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[path]; ok {
		return pathErr("mkdir", path, errNotDirectory)
	}

	m.addParents(path)
	m.dirs[path] = true

	return nil
}

func (m *Mem) Stat(path string) (os.FileInfo, error) {
	path = filepath.Clean(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.statLocked(path)
}

func (m *Mem) Exists(path string) (bool, error) {
	_, err := m.Stat(path)
	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

func (m *Mem) Remove(path string) error {
	path = filepath.Clean(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected(OpRemove, path); err != nil {
		return err
	}

	if _, ok := m.files[path]; ok {
		delete(m.files, path)

		return nil
	}

	if m.dirs[path] {
		for p := range m.files {
			if filepath.Dir(p) == path {
				return pathErr("remove", path, errNotEmpty)
			}
		}

		for p := range m.dirs {
			if p != path && filepath.Dir(p) == path {
				return pathErr("remove", path, errNotEmpty)
			}
		}

		delete(m.dirs, path)

		return nil
	}

	return pathErr("remove", path, iofs.ErrNotExist)
}

// --- Internals ---

func (m *Mem) statLocked(path string) (os.FileInfo, error) {
	if err := m.injected(OpStat, path); err != nil {
		return nil, err
	}

	if entry, ok := m.files[path]; ok {
		return &memFileInfo{name: filepath.Base(path), size: int64(len(entry.data)), modTime: entry.modTime}, nil
	}

	if m.dirs[path] {
		return &memFileInfo{name: filepath.Base(path), isDir: true}, nil
	}

	return nil, pathErr("stat", path, iofs.ErrNotExist)
}

// injected returns the injected error for (op, path), if any.
// Callers must hold m.mu.
func (m *Mem) injected(op Op, path string) error {
	return m.failures[string(op)+"\x00"+path]
}

// addParents marks every ancestor of path as a directory.
// Callers must hold m.mu.
func (m *Mem) addParents(path string) {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		if m.dirs[dir] {
			return
		}

		m.dirs[dir] = true

		if dir == filepath.Dir(dir) {
			return
		}
	}
}

func pathErr(op, path string, err error) error {
	return &iofs.PathError{Op: op, Path: path, Err: err}
}

// memFile is an open handle on a Mem file.
type memFile struct {
	fs       *Mem
	path     string
	reader   *bytes.Reader
	writable bool
	isDir    bool
	closed   bool
}

func (f *memFile) Read(p []byte) (int, error) {
	if f.closed {
		return 0, pathErr("read", f.path, iofs.ErrClosed)
	}

	if f.isDir {
		return 0, pathErr("read", f.path, errIsDirectory)
	}

	if f.reader == nil {
		return 0, pathErr("read", f.path, errNotReadable)
	}

	return f.reader.Read(p)
}

func (f *memFile) Write(p []byte) (int, error) {
	if f.closed {
		return 0, pathErr("write", f.path, iofs.ErrClosed)
	}

	if !f.writable {
		return 0, pathErr("write", f.path, errNotWritable)
	}

	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	entry := f.fs.files[f.path]
	entry.data = append(entry.data, p...)
	entry.modTime = time.Now()

	return len(p), nil
}

func (f *memFile) Close() error {
	if f.closed {
		return pathErr("close", f.path, iofs.ErrClosed)
	}

	f.closed = true

	return nil
}

func (f *memFile) Stat() (os.FileInfo, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	return f.fs.statLocked(f.path)
}

// memFileInfo implements os.FileInfo for Mem entries.
type memFileInfo struct {
	name    string
	size    int64
	isDir   bool
	modTime time.Time
}

func (i *memFileInfo) Name() string { return i.name }

func (i *memFileInfo) Size() int64 { return i.size }

func (i *memFileInfo) Mode() os.FileMode {
	if i.isDir {
		return os.ModeDir | 0o755
	}

	return 0o644
}

func (i *memFileInfo) ModTime() time.Time { return i.modTime }

func (i *memFileInfo) IsDir() bool { return i.isDir }

func (i *memFileInfo) Sys() any { return nil }

// memDirEntry implements os.DirEntry for Mem directory listings.
type memDirEntry struct {
	name    string
	size    int64
	isDir   bool
	modTime time.Time
}

func (e *memDirEntry) Name() string { return e.name }

func (e *memDirEntry) IsDir() bool { return e.isDir }

func (e *memDirEntry) Type() os.FileMode {
	if e.isDir {
		return os.ModeDir
	}

	return 0
}

func (e *memDirEntry) Info() (os.FileInfo, error) {
	return &memFileInfo{name: e.name, size: e.size, isDir: e.isDir, modTime: e.modTime}, nil
}

// Compile-time interface check.
var _ FS = (*Mem)(nil)
