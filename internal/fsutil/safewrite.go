// Package fsutil writes files so that readers never observe partial content.
//
// Content is staged in an exclusively created temp file inside a shared temp
// directory and renamed onto the destination once it is fully written.
// Temp names are ".<pid>.<counter>"; concurrent writers that race for the
// same name lose the exclusive create and move on to the next counter value.
package fsutil

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/nikit/internal/errors"
	"github.com/Iron-Ham/nikit/internal/logging"
)

// SafeWriter replaces files atomically via a temp file and rename.
// It is safe for concurrent use.
type SafeWriter struct {
	fs      afero.Fs
	tempDir string
	pid     func() int
	logger  *logging.Logger
}

// Option configures a SafeWriter.
type Option func(*SafeWriter)

// WithFs sets the filesystem. Defaults to the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(w *SafeWriter) { w.fs = fsys }
}

// WithTempDir sets the shared temp directory. Defaults to TempDir().
func WithTempDir(dir string) Option {
	return func(w *SafeWriter) { w.tempDir = dir }
}

// WithPID sets the process identity used in temp names. Defaults to os.Getpid.
func WithPID(pid func() int) Option {
	return func(w *SafeWriter) { w.pid = pid }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *logging.Logger) Option {
	return func(w *SafeWriter) { w.logger = logger }
}

// NewSafeWriter creates a SafeWriter.
func NewSafeWriter(opts ...Option) *SafeWriter {
	w := &SafeWriter{
		fs:      afero.NewOsFs(),
		tempDir: TempDir(),
		pid:     os.Getpid,
		logger:  logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// TempDir returns the shared temp directory this writer stages files in.
func (w *SafeWriter) TempDir() string {
	return w.tempDir
}

// Acquire creates a new exclusively owned temp file. Callers must Release it.
func (w *SafeWriter) Acquire() (*TempHandle, error) {
	// Best effort: if this fails, the exclusive create below reports why.
	_ = w.fs.MkdirAll(w.tempDir, 0o755)

	pid := w.pid()
	for {
		path := filepath.Join(w.tempDir, tempName(pid, nextCounter()))
		h, err := claim(w.fs, path)
		if err == nil {
			w.logger.Debug("acquired temp file", "temp", path)
			return h, nil
		}
		if errors.IsRetryable(err) {
			w.logger.Debug("temp name taken", "temp", path)
			continue
		}
		return nil, err
	}
}

// Write replaces dest with data. On success dest holds exactly data; on
// failure dest is left as it was and the returned error is a
// *errors.FileError describing the failed stage. A nil data writes an
// empty file. No temp file outlives the call.
func (w *SafeWriter) Write(dest string, data []byte) (err error) {
	log := w.logger.WithPath(dest)

	h, err := w.Acquire()
	if err != nil {
		var fileErr *errors.FileError
		if errors.As(err, &fileErr) {
			fileErr.WithDest(dest)
		}
		log.Warn("safe write failed", "error", err.Error())
		return err
	}
	defer func() {
		if relErr := h.Release(); relErr != nil {
			log.Warn("failed to release temp file", "temp", h.Path, "error", relErr.Error())
		}
		if err != nil {
			log.Warn("safe write failed", "error", err.Error())
		}
	}()

	if err := h.Write(data); err != nil {
		return errors.NewFileError(errors.OpWrite, "write temp file", err).WithTempPath(h.Path).WithDest(dest)
	}
	if err := h.Close(); err != nil {
		return errors.NewFileError(errors.OpWrite, "close temp file", err).WithTempPath(h.Path).WithDest(dest)
	}

	// Rename reports a missing parent below, so this is best effort too.
	_ = w.fs.MkdirAll(filepath.Dir(dest), 0o755)

	if err := w.fs.Rename(h.Path, dest); err != nil {
		return errors.NewFileError(errors.OpRename, "rename into place", err).WithTempPath(h.Path).WithDest(dest)
	}

	log.Debug("renamed into place", "temp", h.Path, "bytes", len(data))
	return nil
}

// WriteString is Write for string content.
func (w *SafeWriter) WriteString(dest, content string) error {
	return w.Write(dest, []byte(content))
}

// WriteSafe reports whether Write succeeded.
func (w *SafeWriter) WriteSafe(dest string, data []byte) bool {
	return w.Write(dest, data) == nil
}

var defaultWriter = NewSafeWriter()

// WriteFileSafe replaces dest with data on the OS filesystem using the
// default shared temp directory and reports whether it succeeded.
func WriteFileSafe(dest string, data []byte) bool {
	return defaultWriter.WriteSafe(dest, data)
}
