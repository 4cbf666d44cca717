package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/f3rmion/marksort/internal/marker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("$banana\tapple\t$apple\t$cherry"), 0644))

	doc, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "words.txt", doc.Name)
	assert.Equal(t, int64(28), doc.Size)

	res, err := marker.Process(doc.Raw)
	require.NoError(t, err)
	assert.Equal(t, "$apple\t$banana\t$cherry", res.Text)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	doc, err := Load(context.Background(), path)
	require.NoError(t, err)

	res, err := marker.Process(doc.Raw)
	require.NoError(t, err)
	assert.Equal(t, "", res.Text)
}

func TestLoadNoPath(t *testing.T) {
	_, err := Load(context.Background(), "  ")
	assert.True(t, errors.Is(err, ErrNoFile))
	assert.False(t, errors.Is(err, marker.ErrRead))
}

func TestLoadReadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.txt")},
		{name: "directory", path: dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, marker.ErrRead)
			assert.Equal(t, "Error reading file", marker.UserMessage(err))
		})
	}
}

func TestLoadUnreadable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits not enforced")
	}

	path := filepath.Join(t.TempDir(), "locked.txt")
	require.NoError(t, os.WriteFile(path, []byte("$a"), 0000))

	_, err := Load(context.Background(), path)
	assert.ErrorIs(t, err, marker.ErrRead)
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, "/does/not/matter.txt")
	assert.ErrorIs(t, err, marker.ErrRead)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHasExtension(t *testing.T) {
	exts := []string{".txt", "tsv"}

	assert.True(t, HasExtension("words.txt", exts))
	assert.True(t, HasExtension("WORDS.TXT", exts))
	assert.True(t, HasExtension("data.tsv", exts))
	assert.False(t, HasExtension("notes.md", exts))
	assert.False(t, HasExtension("txt", exts))
	assert.True(t, HasExtension("anything.bin", nil))
}
