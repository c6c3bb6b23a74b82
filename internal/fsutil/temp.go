package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/nikit/internal/errors"
)

// TempDirName is the directory under the system temp root shared by every
// nikit process on the machine.
const TempDirName = "antfu-ni"

// TempDir returns the default shared temp directory.
func TempDir() string {
	return filepath.Join(os.TempDir(), TempDirName)
}

// counter is process-wide: every SafeWriter draws from it, and every
// acquisition attempt consumes a value, successful or not.
var counter atomic.Uint64

func nextCounter() uint64 {
	return counter.Add(1) - 1
}

// tempName returns the base name ".<pid>.<n>".
func tempName(pid int, n uint64) string {
	return fmt.Sprintf(".%d.%d", pid, n)
}

// TempHandle is an exclusively created temp file owned by a single write.
type TempHandle struct {
	// Path is the temp file's location inside the shared temp directory.
	Path string

	fs       afero.Fs
	file     afero.File
	closed   bool
	released bool
}

// Write writes data through the exclusive handle and syncs it to disk.
func (h *TempHandle) Write(data []byte) error {
	if _, err := h.file.Write(data); err != nil {
		return err
	}
	return h.file.Sync()
}

// Close closes the handle. Calling it more than once is a no-op.
func (h *TempHandle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	return h.file.Close()
}

// Release closes the handle and removes the temp file if it still exists,
// which is the case whenever the rename did not happen. It is idempotent.
func (h *TempHandle) Release() error {
	if h.released {
		return nil
	}
	h.released = true

	closeErr := h.Close()

	exists, err := afero.Exists(h.fs, h.Path)
	if err != nil {
		return errors.Join(closeErr, err)
	}
	if exists {
		if err := h.fs.Remove(h.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Join(closeErr, err)
		}
	}
	return closeErr
}

// claim exclusively creates path. A name collision is reported as a
// retryable AlreadyExistsError.
func claim(fsys afero.Fs, path string) (*TempHandle, error) {
	f, err := fsys.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o666)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, errors.NewAlreadyExistsError("temp file", path).WithCause(err).WithRetryable(true)
		}
		return nil, errors.NewFileError(errors.OpAcquire, "create temp file", err).WithTempPath(path)
	}
	return &TempHandle{Path: path, fs: fsys, file: f}, nil
}
