package operation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ❌ WriteError reports a document that could not be written
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// 📁 EnsureOutputDir creates dir and its parents
func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WithStack(&WriteError{Path: dir, Err: err})
	}
	return nil
}

// 💾 WriteFileAtomic writes content to a temporary file next to path and
// renames it into place
func WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("size", len(content)).Msg("writing file")

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WithStack(&WriteError{Path: path, Err: errors.Errorf("creating temporary file: %w", err)})
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath) // Clean up temp file
		return errors.WithStack(&WriteError{Path: path, Err: errors.Errorf("writing temporary file: %w", err)})
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.WithStack(&WriteError{Path: path, Err: errors.Errorf("closing temporary file: %w", err)})
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return errors.WithStack(&WriteError{Path: path, Err: errors.Errorf("setting file mode: %w", err)})
	}

	// Rename temporary file to target
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.WithStack(&WriteError{Path: path, Err: errors.Errorf("renaming temporary file: %w", err)})
	}

	return nil
}
