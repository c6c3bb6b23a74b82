// Package testutil provides testing utilities for nikit tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"
)

// FaultFs wraps an afero.Fs and fails selected operations. Nil hooks and
// errors pass the call through to the wrapped filesystem.
type FaultFs struct {
	afero.Fs

	// OpenFileErr, when set, is consulted before every OpenFile.
	OpenFileErr func(name string, flag int) error
	// WriteErr fails every Write on files opened through OpenFile.
	WriteErr error
	// SyncErr fails every Sync on files opened through OpenFile.
	SyncErr error
	// RenameErr fails every Rename.
	RenameErr error
}

// NewFaultFs wraps base, or a fresh in-memory filesystem when base is nil.
func NewFaultFs(base afero.Fs) *FaultFs {
	if base == nil {
		base = afero.NewMemMapFs()
	}
	return &FaultFs{Fs: base}
}

// OpenFile implements afero.Fs.
func (f *FaultFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if f.OpenFileErr != nil {
		if err := f.OpenFileErr(name, flag); err != nil {
			return nil, &os.PathError{Op: "open", Path: name, Err: err}
		}
	}
	file, err := f.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &faultFile{File: file, fs: f}, nil
}

// Rename implements afero.Fs.
func (f *FaultFs) Rename(oldname, newname string) error {
	if f.RenameErr != nil {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: f.RenameErr}
	}
	return f.Fs.Rename(oldname, newname)
}

type faultFile struct {
	afero.File
	fs *FaultFs
}

func (ff *faultFile) Write(p []byte) (int, error) {
	if ff.fs.WriteErr != nil {
		return 0, ff.fs.WriteErr
	}
	return ff.File.Write(p)
}

func (ff *faultFile) Sync() error {
	if ff.fs.SyncErr != nil {
		return ff.fs.SyncErr
	}
	return ff.File.Sync()
}

// ListDir returns the sorted names in dir, or nil if dir does not exist.
func ListDir(t *testing.T, fsys afero.Fs, dir string) []string {
	t.Helper()

	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("failed to read dir %s: %v", dir, err)
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	sort.Strings(names)
	return names
}

// ReadFile reads path from fsys, failing the test on error.
func ReadFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// WriteFile creates path (and its parents) on fsys with content.
func WriteFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// SkipIfNoCommand skips the test if name is not installed.
func SkipIfNoCommand(t *testing.T, name string) {
	t.Helper()

	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not found in PATH, skipping test", name)
	}
}

// SkipIfRoot skips tests that rely on permission bits, which root ignores.
func SkipIfRoot(t *testing.T) {
	t.Helper()

	if os.Geteuid() == 0 {
		t.Skip("running as root, permission checks are bypassed")
	}
}
