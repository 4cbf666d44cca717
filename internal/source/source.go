// Package source acquires raw document content from files chosen in the file
// picker or dropped onto the terminal.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/f3rmion/marksort/internal/marker"
)

// ErrNoFile is returned by Load when no path was supplied. Callers treat it
// as a no-op rather than a failure.
var ErrNoFile = errors.New("no file selected")

// Document is the full content of one file.
type Document struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	Raw     []byte
}

// Load reads the whole file at path. It is the single entry point for both
// picker selections and drops. Failures are marker.ReadError.
func Load(ctx context.Context, path string) (*Document, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoFile
	}
	if err := ctx.Err(); err != nil {
		return nil, marker.NewReadError(err)
	}

	path = ExpandHome(path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, marker.NewReadError(fmt.Errorf("stat file: %w", err))
	}
	if info.IsDir() {
		return nil, marker.NewReadError(fmt.Errorf("%s is a directory", path))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, marker.NewReadError(fmt.Errorf("reading file: %w", err))
	}

	return &Document{
		Path:    path,
		Name:    filepath.Base(path),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Raw:     raw,
	}, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// HasExtension reports whether name ends in one of exts, ignoring case. An
// empty list matches everything.
func HasExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if ext == e {
			return true
		}
	}
	return false
}
