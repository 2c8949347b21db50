//go:build !windows

package storage

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// replace calls write with a temporary file next to filename and renames it
// over filename only if write succeeds. Errors from write are returned as is.
func replace(filename string, write func(w io.Writer) error) error {

	pending, err := renameio.NewPendingFile(filename,
		renameio.WithTempDir(filepath.Dir(filename)),
		renameio.WithPermissions(0666),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return &PersistenceError{Op: OpSave, Filename: filename, Err: fmt.Errorf("create temp file: %w", err)}
	}
	defer pending.Cleanup()

	err = write(pending)
	if err != nil {
		return err
	}

	err = pending.CloseAtomicallyReplace()
	if err != nil {
		return &PersistenceError{Op: OpSave, Filename: filename, Err: fmt.Errorf("replace file: %w", err)}
	}

	return nil
}
