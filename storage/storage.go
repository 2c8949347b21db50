// Package storage reads and writes the database file: a single JSON array
// with one object per record.
package storage

import (
	"fmt"
	"io"
	"os"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/teemydb/record"
)

const (
	OpLoad = "load"
	OpSave = "save"
)

// PersistenceError is returned when the database file cannot be read,
// decoded or written.
type PersistenceError struct {
	Op       string
	Filename string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s '%s': %s", e.Op, e.Filename, e.Err.Error())
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Load reads all records from filename. A missing or zero length file is an
// empty database.
func Load(filename string) ([]record.Record, error) {

	f, err := os.Open(filename)
	if os.IsNotExist(err) {
		return []record.Record{}, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: OpLoad, Filename: filename, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &PersistenceError{Op: OpLoad, Filename: filename, Err: err}
	}
	if info.Size() == 0 {
		return []record.Record{}, nil
	}

	records := []record.Record{}
	err = json.UnmarshalRead(f, &records)
	if err != nil {
		return nil, &PersistenceError{Op: OpLoad, Filename: filename, Err: fmt.Errorf("decode json: %w", err)}
	}
	if records == nil { // file contains `null`
		records = []record.Record{}
	}

	return records, nil
}

// Save replaces filename with records. Data is written to a temporary file
// in the same directory and renamed over the target, a crash never leaves a
// half written database behind.
func Save(filename string, records []record.Record) error {

	if records == nil {
		records = []record.Record{}
	}

	return replace(filename, func(w io.Writer) error {
		err := json.MarshalWrite(w, records, jsontext.WithIndent("    "))
		if err != nil {
			return &PersistenceError{Op: OpSave, Filename: filename, Err: fmt.Errorf("encode json: %w", err)}
		}
		return nil
	})
}
