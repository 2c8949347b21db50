package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// replace is the windows version of the temp file and rename dance,
// renameio does not build there.
func replace(filename string, write func(w io.Writer) error) error {

	dir, name := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, name)
	if err != nil {
		return &PersistenceError{Op: OpSave, Filename: filename, Err: fmt.Errorf("create temp file: %w", err)}
	}
	renamed := false
	defer func() {
		if !renamed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	err = write(tmp)
	if err != nil {
		return err
	}

	err = tmp.Sync()
	if err == nil {
		err = tmp.Close()
	}
	if err == nil {
		err = os.Rename(tmp.Name(), filename)
	}
	if err != nil {
		return &PersistenceError{Op: OpSave, Filename: filename, Err: fmt.Errorf("replace file: %w", err)}
	}
	renamed = true

	return nil
}
