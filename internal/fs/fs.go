// Package fs provides a small filesystem abstraction so the file manager
// can be tested against an in-memory fake instead of real disk.
//
// The main types are:
//   - [FS]: interface for filesystem operations
//   - [File]: interface for open files (satisfied by [os.File])
//   - [Real]: production implementation using the [os] package
//   - [Mem]: in-memory implementation with deterministic error injection
//
// Example usage:
//
//	fsys := fs.NewReal()
//	f, err := fsys.Open("notes.txt")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	data, _ := io.ReadAll(f)
package fs

import (
	"io"
	"os"
)

// File represents an open file descriptor.
//
// This interface is satisfied by [os.File] and works with all standard
// library functions that accept [io.Reader], [io.Writer], or [io.Closer].
type File interface {
	io.ReadWriteCloser

	// Stat returns the [os.FileInfo] for this file. See [os.File.Stat].
	Stat() (os.FileInfo, error)
}

// FS defines filesystem operations for reading, writing, and managing files.
//
// Two implementations are provided:
//   - [Real]: production use, wraps the [os] package
//   - [Mem]: testing use, in-memory with error injection
//
// All methods mirror their [os] package equivalents, including error
// semantics: missing paths fail with errors matching [os.ErrNotExist],
// access failures with errors matching [os.ErrPermission].
type FS interface {
	// Open opens a file for reading. See [os.Open].
	Open(path string) (File, error)

	// Create creates or truncates a file for writing. See [os.Create].
	// The file is created with mode 0666 (before umask).
	Create(path string) (File, error)

	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically.
	// Uses a temp file + rename to prevent partial writes on crash.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// ReadDir reads a directory and returns its entries sorted by name.
	// See [os.ReadDir].
	ReadDir(path string) ([]os.DirEntry, error)

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	// No error if the directory already exists.
	MkdirAll(path string, perm os.FileMode) error

	// Stat returns file info. See [os.Stat].
	// Returns an error matching [os.ErrNotExist] if the path is missing.
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// Remove deletes a file or empty directory. See [os.Remove].
	Remove(path string) error
}

// Compile-time interface checks.
var _ File = (*os.File)(nil)
