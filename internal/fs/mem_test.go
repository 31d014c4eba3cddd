package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// =============================================================================
// Mem FS Tests
//
// Mem must match the os package's error semantics closely enough that code
// written against Real behaves identically against Mem:
//   - missing paths fail with errors matching os.ErrNotExist
//   - injected errors come back as the exact value that was injected
// =============================================================================

// -----------------------------------------------------------------------------
// Open/Read Tests
// -----------------------------------------------------------------------------

func TestMem_Open_ReadsSeededContent(t *testing.T) {
	mem := NewMem()
	mem.AddFile("/docs/note.txt", []byte("hello"))

	f, err := mem.Open("/docs/note.txt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	if got, want := string(data), "hello"; got != want {
		t.Fatalf("content=%q, want=%q", got, want)
	}
}

func TestMem_Open_MissingFileMatchesNotExist(t *testing.T) {
	mem := NewMem()

	_, err := mem.Open("/nope.txt")

	if !os.IsNotExist(err) {
		t.Fatalf("err=%v, want not-exist", err)
	}

	if !errors.Is(err, iofs.ErrNotExist) {
		t.Fatalf("err=%v, want errors.Is ErrNotExist", err)
	}
}

// -----------------------------------------------------------------------------
// Create Tests
// -----------------------------------------------------------------------------

func TestMem_Create_WriteReadRoundTrip(t *testing.T) {
	mem := NewMem()
	mem.AddDir("/work")

	f, err := mem.Create("/work/out.txt")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := f.Write([]byte("payload")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := mem.ReadFile("/work/out.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if got, want := string(data), "payload"; got != want {
		t.Fatalf("content=%q, want=%q", got, want)
	}
}

func TestMem_Create_TruncatesExisting(t *testing.T) {
	mem := NewMem()
	mem.AddFile("/work/out.txt", []byte("old content"))

	f, err := mem.Create("/work/out.txt")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := mem.ReadFile("/work/out.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if got, want := string(data), ""; got != want {
		t.Fatalf("content=%q, want=%q", got, want)
	}
}

func TestMem_Create_MissingParentFails(t *testing.T) {
	mem := NewMem()

	_, err := mem.Create("/no-such-dir/out.txt")

	if !os.IsNotExist(err) {
		t.Fatalf("err=%v, want not-exist", err)
	}
}

// -----------------------------------------------------------------------------
// ReadDir Tests
// -----------------------------------------------------------------------------

func TestMem_ReadDir_SortedNamesAndTypes(t *testing.T) {
	mem := NewMem()
	mem.AddFile("/work/b.txt", nil)
	mem.AddFile("/work/a.txt", nil)
	mem.AddDir("/work/sub")

	entries, err := mem.ReadDir("/work")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}

	want := []string{"a.txt", "b.txt", "sub"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}

	if got, want := entries[2].IsDir(), true; got != want {
		t.Fatalf("sub IsDir=%v, want=%v", got, want)
	}
}

func TestMem_ReadDir_EmptyDirectory(t *testing.T) {
	mem := NewMem()
	mem.AddDir("/empty")

	entries, err := mem.ReadDir("/empty")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	if got, want := len(entries), 0; got != want {
		t.Fatalf("len=%d, want=%d", got, want)
	}
}

// -----------------------------------------------------------------------------
// Remove Tests
// -----------------------------------------------------------------------------

func TestMem_Remove_DeletesFile(t *testing.T) {
	mem := NewMem()
	mem.AddFile("/work/gone.txt", []byte("x"))

	if err := mem.Remove("/work/gone.txt"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	exists, err := mem.Exists("/work/gone.txt")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}

	if got, want := exists, false; got != want {
		t.Fatalf("exists=%v, want=%v", got, want)
	}
}

func TestMem_Remove_MissingFileMatchesNotExist(t *testing.T) {
	mem := NewMem()

	err := mem.Remove("/absent.txt")

	if !os.IsNotExist(err) {
		t.Fatalf("err=%v, want not-exist", err)
	}
}

func TestMem_Remove_NonEmptyDirectoryFails(t *testing.T) {
	mem := NewMem()
	mem.AddFile("/work/keep.txt", nil)

	err := mem.Remove("/work")

	if err == nil {
		t.Fatal("expected error removing non-empty directory")
	}
}

// -----------------------------------------------------------------------------
// Error Injection Tests
// -----------------------------------------------------------------------------

// TestMem_FailWith_ReturnsInjectedErrorVerbatim verifies the core contract
// of injection: the caller gets back the exact error value, not a copy or
// a wrapper. Callers testing propagate-unchanged behavior rely on this.
func TestMem_FailWith_ReturnsInjectedErrorVerbatim(t *testing.T) {
	mem := NewMem()
	mem.AddFile("/locked.txt", []byte("secret"))

	injected := &iofs.PathError{Op: "open", Path: "/locked.txt", Err: iofs.ErrPermission}
	mem.FailWith(OpOpen, "/locked.txt", injected)

	_, err := mem.Open("/locked.txt")

	if got, want := err, error(injected); got != want {
		t.Fatalf("err=%v (%T), want the injected value", got, got)
	}

	if !os.IsPermission(err) {
		t.Fatalf("err=%v, want permission-denied", err)
	}
}

func TestMem_FailWith_NilClearsInjection(t *testing.T) {
	mem := NewMem()
	mem.AddFile("/f.txt", []byte("x"))

	mem.FailWith(OpStat, "/f.txt", iofs.ErrPermission)
	mem.FailWith(OpStat, "/f.txt", nil)

	_, err := mem.Stat("/f.txt")
	if err != nil {
		t.Fatalf("Stat after clearing injection: %v", err)
	}
}
