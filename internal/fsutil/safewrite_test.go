package fsutil

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/nikit/internal/errors"
	"github.com/Iron-Ham/nikit/internal/logging"
	"github.com/Iron-Ham/nikit/internal/testutil"
)

const testPID = 4242

func newMemWriter(fsys afero.Fs) *SafeWriter {
	return NewSafeWriter(
		WithFs(fsys),
		WithTempDir("/tmp/antfu-ni"),
		WithPID(func() int { return testPID }),
	)
}

func TestTempDir(t *testing.T) {
	assert.Equal(t, filepath.Join(os.TempDir(), "antfu-ni"), TempDir())
	assert.Equal(t, TempDir(), NewSafeWriter().TempDir())
}

func TestSafeWriter_Write_OS(t *testing.T) {
	root := t.TempDir()
	tempDir := filepath.Join(root, "staging")
	w := NewSafeWriter(WithTempDir(tempDir))

	t.Run("creates a new file", func(t *testing.T) {
		dest := filepath.Join(root, "new.txt")

		require.NoError(t, w.WriteString(dest, "X"))

		got, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "X", string(got))
	})

	t.Run("overwrites an existing file", func(t *testing.T) {
		dest := filepath.Join(root, "existing.txt")
		require.NoError(t, os.WriteFile(dest, []byte("Y"), 0644))

		require.NoError(t, w.WriteString(dest, "v2"))

		got, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "v2", string(got))
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		dest := filepath.Join(root, "a", "b", "c", "deep.json")

		assert.True(t, w.WriteSafe(dest, []byte(`{"ok":true}`)))

		got, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, `{"ok":true}`, string(got))
	})

	t.Run("nil content writes an empty file", func(t *testing.T) {
		dest := filepath.Join(root, "empty.txt")
		require.NoError(t, os.WriteFile(dest, []byte("old"), 0644))

		require.NoError(t, w.Write(dest, nil))

		got, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		entries, err := os.ReadDir(tempDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestSafeWriter_RenameOntoDirectoryFails_OS(t *testing.T) {
	root := t.TempDir()
	tempDir := filepath.Join(root, "staging")
	w := NewSafeWriter(WithTempDir(tempDir))

	// A non-empty directory cannot be replaced by a rename.
	dest := filepath.Join(root, "occupied")
	require.NoError(t, os.MkdirAll(filepath.Join(dest, "child"), 0755))

	err := w.WriteString(dest, "X")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrRename)

	info, statErr := os.Stat(filepath.Join(dest, "child"))
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())

	entries, readErr := os.ReadDir(tempDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "temp file must be removed after a failed rename")
}

func TestSafeWriter_AcquireFailure_OS(t *testing.T) {
	root := t.TempDir()

	// The temp "directory" is a regular file, so nothing can be created in it.
	tempDir := filepath.Join(root, "not-a-dir")
	require.NoError(t, os.WriteFile(tempDir, []byte("x"), 0644))

	dest := filepath.Join(root, "dest.txt")
	require.NoError(t, os.WriteFile(dest, []byte("Y"), 0644))

	w := NewSafeWriter(WithTempDir(tempDir))
	err := w.WriteString(dest, "X")

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTempCreate)
	assert.False(t, w.WriteSafe(dest, []byte("X")))

	var fileErr *errors.FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, dest, fileErr.Dest)

	got, readErr := os.ReadFile(dest)
	require.NoError(t, readErr)
	assert.Equal(t, "Y", string(got), "destination must not be touched")
}

func TestSafeWriter_ReadOnlyTempDir_OS(t *testing.T) {
	testutil.SkipIfRoot(t)

	root := t.TempDir()
	tempDir := filepath.Join(root, "staging")
	require.NoError(t, os.MkdirAll(tempDir, 0555))
	t.Cleanup(func() { _ = os.Chmod(tempDir, 0755) })

	w := NewSafeWriter(WithTempDir(tempDir))
	err := w.WriteString(filepath.Join(root, "dest.txt"), "X")

	assert.ErrorIs(t, err, errors.ErrTempCreate)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.NoFileExists(t, filepath.Join(root, "dest.txt"))
}

func TestSafeWriter_Faults(t *testing.T) {
	injected := fmt.Errorf("injected: %w", syscall.EIO)

	tests := []struct {
		name     string
		setup    func(f *testutil.FaultFs)
		sentinel error
	}{
		{
			name:     "write error",
			setup:    func(f *testutil.FaultFs) { f.WriteErr = injected },
			sentinel: errors.ErrTempWrite,
		},
		{
			name:     "sync error",
			setup:    func(f *testutil.FaultFs) { f.SyncErr = injected },
			sentinel: errors.ErrTempWrite,
		},
		{
			name:     "rename error",
			setup:    func(f *testutil.FaultFs) { f.RenameErr = injected },
			sentinel: errors.ErrRename,
		},
		{
			name: "create error",
			setup: func(f *testutil.FaultFs) {
				f.OpenFileErr = func(name string, flag int) error {
					if flag&os.O_EXCL != 0 {
						return syscall.EACCES
					}
					return nil
				}
			},
			sentinel: errors.ErrTempCreate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := testutil.NewFaultFs(nil)
			dest := "/project/package.json"
			testutil.WriteFile(t, fsys, dest, "Y")
			tt.setup(fsys)

			w := newMemWriter(fsys)
			err := w.WriteString(dest, "X")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.False(t, w.WriteSafe(dest, []byte("X")))

			// Destination keeps its old content, never truncated.
			assert.Equal(t, "Y", testutil.ReadFile(t, fsys, dest))
			// No temp file belonging to the call survives.
			assert.Empty(t, testutil.ListDir(t, fsys, w.TempDir()))
		})
	}
}

func TestSafeWriter_FailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	fsys := testutil.NewFaultFs(nil)
	fsys.RenameErr = syscall.EXDEV

	w := NewSafeWriter(
		WithFs(fsys),
		WithTempDir("/tmp/antfu-ni"),
		WithLogger(logging.NewWriterLogger(&buf, logging.LevelDebug)),
	)
	require.Error(t, w.WriteString("/out/a.txt", "X"))

	out := buf.String()
	assert.Contains(t, out, `"msg":"acquired temp file"`)
	assert.Contains(t, out, `"msg":"safe write failed"`)
	assert.Contains(t, out, `"path":"/out/a.txt"`)
}

func TestSafeWriter_Acquire_SkipsTakenNames(t *testing.T) {
	fsys := afero.NewMemMapFs()
	w := newMemWriter(fsys)

	// Occupy the next three candidate names.
	next := counter.Load()
	for i := uint64(0); i < 3; i++ {
		testutil.WriteFile(t, fsys, filepath.Join(w.TempDir(), tempName(testPID, next+i)), "stale")
	}

	h, err := w.Acquire()
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Release() })

	assert.Equal(t, filepath.Join(w.TempDir(), tempName(testPID, next+3)), h.Path)
	assert.Equal(t, next+4, counter.Load(), "every attempt consumes a counter value")

	// Stale files from other owners are left alone.
	assert.Len(t, testutil.ListDir(t, fsys, w.TempDir()), 4)
}

func TestSafeWriter_Acquire_NameFormat(t *testing.T) {
	w := newMemWriter(afero.NewMemMapFs())

	h, err := w.Acquire()
	require.NoError(t, err)
	defer h.Release()

	base := filepath.Base(h.Path)
	assert.True(t, strings.HasPrefix(base, fmt.Sprintf(".%d.", testPID)), "unexpected temp name %q", base)
	assert.Equal(t, w.TempDir(), filepath.Dir(h.Path))
}

func TestSafeWriter_Acquire_ConcurrentUnique(t *testing.T) {
	for _, tc := range []struct {
		name string
		fsys afero.Fs
		dir  string
	}{
		{"memory", afero.NewMemMapFs(), "/tmp/antfu-ni"},
		{"os", afero.NewOsFs(), filepath.Join(t.TempDir(), "staging")},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Two writers sharing one temp dir and one pid behave like racing callers.
			opts := []Option{WithFs(tc.fsys), WithTempDir(tc.dir), WithPID(func() int { return testPID })}
			writers := []*SafeWriter{NewSafeWriter(opts...), NewSafeWriter(opts...)}

			const n = 64
			var (
				mu      sync.Mutex
				wg      sync.WaitGroup
				handles []*TempHandle
			)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(w *SafeWriter) {
					defer wg.Done()
					h, err := w.Acquire()
					if err != nil {
						t.Errorf("Acquire() error = %v", err)
						return
					}
					mu.Lock()
					handles = append(handles, h)
					mu.Unlock()
				}(writers[i%2])
			}
			wg.Wait()

			seen := make(map[string]bool, len(handles))
			for _, h := range handles {
				assert.False(t, seen[h.Path], "temp path %s claimed twice", h.Path)
				seen[h.Path] = true
			}
			assert.Len(t, seen, n)

			for _, h := range handles {
				require.NoError(t, h.Release())
			}
			assert.Empty(t, testutil.ListDir(t, tc.fsys, tc.dir))
		})
	}
}

func TestSafeWriter_ConcurrentWrites(t *testing.T) {
	root := t.TempDir()
	w := NewSafeWriter(WithTempDir(filepath.Join(root, "staging")))

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dest := filepath.Join(root, fmt.Sprintf("out-%d.txt", i))
			if !w.WriteSafe(dest, []byte(fmt.Sprint(i))) {
				t.Errorf("WriteSafe(%s) = false", dest)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		got, err := os.ReadFile(filepath.Join(root, fmt.Sprintf("out-%d.txt", i)))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprint(i), string(got))
	}

	entries, err := os.ReadDir(filepath.Join(root, "staging"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTempHandle_ReleaseIsIdempotent(t *testing.T) {
	fsys := afero.NewMemMapFs()
	w := newMemWriter(fsys)

	h, err := w.Acquire()
	require.NoError(t, err)

	exists, err := afero.Exists(fsys, h.Path)
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, h.Release())
	require.NoError(t, h.Release())

	exists, err = afero.Exists(fsys, h.Path)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWriteFileSafe(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "pkg", "package.json")

	require.True(t, WriteFileSafe(dest, []byte("{}")))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))
}
