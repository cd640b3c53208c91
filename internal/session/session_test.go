package session

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sir_venger/fileforge/internal/forge"
	"github.com/sir_venger/fileforge/internal/models"
)

type freeSpace uint64

func (f freeSpace) Free(string) (uint64, error) { return uint64(f), nil }

// spyWriter запоминает вызов и ничего не пишет.
type spyWriter struct {
	calls int
	path  string
	size  int64
}

func (w *spyWriter) Write(_ context.Context, path string, size int64) (models.WriteResult, error) {
	w.calls++
	w.path, w.size = path, size
	return models.WriteResult{Path: path, Size: size}, nil
}

func newSession(t *testing.T, dir, input string, w FileWriter) (*Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return New(Deps{
		In:     strings.NewReader(input),
		Out:    &out,
		Dir:    dir,
		Space:  freeSpace(1 << 40),
		Writer: func(int64) (FileWriter, error) { return w, nil },
	}), &out
}

func TestRun_CreatesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, out := newSession(t, dir, "data.bin\n1kb\ny\n", forge.New(forge.Deps{}))

	outcome, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Done, s.State())
	assert.Equal(t, filepath.Join(dir, "data.bin"), outcome.Path)
	assert.EqualValues(t, 1024, outcome.Size)

	info, err := os.Stat(outcome.Path)
	require.NoError(t, err)
	assert.EqualValues(t, 1024, info.Size())

	text := out.String()
	assert.Contains(t, text, "create a file with 1,024 bytes? (y/n)")
	assert.Contains(t, text, "Free space -> ok!")
	assert.Contains(t, text, "Finished!")
	assert.NotContains(t, text, "already exists")
}

func TestRun_Overwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "old.bin")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	spy := &spyWriter{}
	s, out := newSession(t, dir, "old.bin\nY\n2gb\ny\n", spy)
	_, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "already exists. Do you want to overwrite it?")
	assert.Contains(t, out.String(), "2,147,483,648 bytes")
	assert.Equal(t, 1, spy.calls)
	assert.Equal(t, path, spy.path)
	assert.EqualValues(t, 2147483648, spy.size)
}

func TestRun_Aborts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "taken.bin"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder"), 0o755))

	tt := []struct {
		name  string
		input string
		space freeSpace
		want  error
	}{
		{"invalid name", "a/b\n", 1 << 40, models.ErrInvalidName},
		{"long name", strings.Repeat("n", 261) + "\n", 1 << 40, models.ErrInvalidName},
		{"directory", "folder\n", 1 << 40, models.ErrInvalidName},
		{"decline overwrite", "taken.bin\nn\n", 1 << 40, models.ErrUserDeclined},
		{"bad unit", "new.bin\n5xx\n", 1 << 40, models.ErrInvalidUnit},
		{"no digits", "new.bin\nmb\n", 1 << 40, models.ErrInvalidFormat},
		{"decline size", "new.bin\n10mb\nno\n", 1 << 40, models.ErrUserDeclined},
		{"no space", "new.bin\n10mb\ny\n", 1 << 20, models.ErrInsufficientSpace},
		{"input closed", "", 1 << 40, models.ErrUserDeclined},
		{"closed before confirm", "new.bin\n1kb\n", 1 << 40, models.ErrUserDeclined},
	}

	for _, tc := range tt {
		spy := &spyWriter{}
		s := New(Deps{
			In:     strings.NewReader(tc.input),
			Out:    &bytes.Buffer{},
			Dir:    dir,
			Space:  tc.space,
			Writer: func(int64) (FileWriter, error) { return spy, nil },
		})

		_, err := s.Run(context.Background())
		require.ErrorIs(t, err, tc.want, tc.name)
		assert.Equal(t, Aborted, s.State(), tc.name)
		assert.Zero(t, spy.calls, tc.name)
	}

	got, err := os.ReadFile(filepath.Join(dir, "taken.bin"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	spy := &spyWriter{}
	s, _ := newSession(t, t.TempDir(), "a.bin\n1kb\ny\n", spy)
	_, err := s.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Aborted, s.State())
	assert.Zero(t, spy.calls)
}

func TestRun_CancelledAtPrompt(t *testing.T) {
	t.Parallel()

	// ввод никогда не приходит: сессия ждёт на первом приглашении
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	spy := &spyWriter{}
	s := New(Deps{
		In:     pr,
		Out:    &bytes.Buffer{},
		Dir:    t.TempDir(),
		Writer: func(int64) (FileWriter, error) { return spy, nil },
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := s.Run(ctx)
		done <- err
	}()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not stop after cancellation")
	}
	assert.Zero(t, spy.calls)
}

func TestRun_SkipSpaceCheck(t *testing.T) {
	t.Parallel()

	spy := &spyWriter{}
	var out bytes.Buffer
	s := New(Deps{
		In:     strings.NewReader("x.bin\n1tb\ny"),
		Out:    &out,
		Dir:    t.TempDir(),
		Writer: func(int64) (FileWriter, error) { return spy, nil },
	})

	_, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "Checking free space")
	assert.Equal(t, 1, spy.calls)
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "await_size_confirm", AwaitSizeConfirm.String())
	assert.Equal(t, "unknown", State(42).String())
}
