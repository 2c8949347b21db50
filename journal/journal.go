// Package journal keeps an append only log with every mutation applied to
// the database, one JSON command per line.
package journal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/uuid"
)

var ErrorJournalClosed = errors.New("journal is closed")

type Journal struct {
	filename string // Just informative...
	file     *os.File
	mutex    *sync.Mutex
}

func Open(filename string) (*Journal, error) {

	// todo: investigate O_SYNC
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("open journal for append: %w", err)
	}

	return &Journal{
		filename: filename,
		file:     f,
		mutex:    &sync.Mutex{},
	}, nil
}

func (j *Journal) Filename() string {
	return j.filename
}

// Append encodes payload into a new command and writes it as a single line.
func (j *Journal) Append(name string, payload interface{}) (*Command, error) {

	p, err := json.Marshal(payload, json.Deterministic(true))
	if err != nil {
		return nil, fmt.Errorf("json encode payload: %w", err)
	}

	command := &Command{
		Name:      name,
		Uuid:      uuid.New().String(),
		Timestamp: time.Now().UnixNano(),
		Payload:   p,
	}

	line, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("json encode command: %w", err)
	}
	line = append(line, '\n')

	j.mutex.Lock()
	defer j.mutex.Unlock()

	if j.file == nil {
		return nil, ErrorJournalClosed
	}

	_, err = j.file.Write(line)
	if err != nil {
		return nil, fmt.Errorf("write command: %w", err)
	}

	return command, nil
}

func (j *Journal) Close() error {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	if j.file == nil {
		return nil
	}

	err := j.file.Close()
	j.file = nil
	return err
}

// Read decodes every command stored in filename, in order.
func Read(filename string) ([]*Command, error) {

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open journal for read: %w", err)
	}
	defer f.Close()

	commands := []*Command{}

	d := jsontext.NewDecoder(f)
	for {
		command := &Command{}
		err := json.UnmarshalDecode(d, command)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		commands = append(commands, command)
	}

	return commands, nil
}
