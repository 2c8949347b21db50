// Package store keeps the collection of person records in memory and
// mirrors every change to the database file before returning.
//
// Record ids are positions: they are always 1..N in insertion order and are
// rebuilt after a delete. Callers must not keep an id across a Delete.
package store

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/SierraSoftworks/connor"
	"go.uber.org/zap"

	"github.com/fulldump/teemydb/journal"
	"github.com/fulldump/teemydb/record"
	"github.com/fulldump/teemydb/statistics"
	"github.com/fulldump/teemydb/storage"
	"github.com/fulldump/teemydb/utils"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

var (
	ErrorRecordNotFound = errors.New("record not found")
	ErrorEmptyStore     = errors.New("store is empty")
	ErrorStoreClosed    = errors.New("store is closed")
)

type Config struct {
	Filename string
	Journal  bool               // append mutations to Filename + ".journal"
	Logger   *zap.SugaredLogger // optional
}

type Store struct {
	config  *Config
	status  string
	records []record.Record
	journal *journal.Journal
	logger  *zap.SugaredLogger
	mutex   *sync.RWMutex
}

// Open loads the database file, or starts empty if it does not exist yet.
// Ids that are not 1..N are renumbered and written back.
func Open(config *Config) (*Store, error) {

	s := &Store{
		config: config,
		status: StatusOpening,
		logger: config.Logger,
		mutex:  &sync.RWMutex{},
	}
	if s.logger == nil {
		s.logger = zap.NewNop().Sugar()
	}

	t0 := time.Now()
	records, err := storage.Load(config.Filename)
	if err != nil {
		s.status = StatusClosing
		return nil, err
	}

	if renumber(records) {
		s.logger.Warnw("ids were not contiguous, renumbered", "filename", config.Filename)
		err = storage.Save(config.Filename, records)
		if err != nil {
			s.logger.Warnw("renumbered ids not saved, the file is rewritten on the next change", "filename", config.Filename, "error", err)
		}
	}
	s.records = records

	if config.Journal {
		s.journal, err = journal.Open(config.Filename + ".journal")
		if err != nil {
			s.status = StatusClosing
			return nil, err
		}
	}

	s.logger.Debugw("store loaded", "filename", config.Filename, "records", len(records), "elapsed", time.Since(t0))

	s.status = StatusOperating

	return s, nil
}

func (s *Store) GetStatus() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.status
}

func (s *Store) Filename() string {
	return s.config.Filename
}

func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.records)
}

// Add appends a new record with the next id and persists it.
func (s *Store) Add(name, surname string, age int, city string) (record.Record, error) {

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.status != StatusOperating {
		return record.Record{}, ErrorStoreClosed
	}

	r := record.Record{
		Id:      len(s.records) + 1,
		Name:    name,
		Surname: surname,
		Age:     age,
		City:    city,
	}
	err := r.Validate()
	if err != nil {
		return record.Record{}, err
	}

	records := append(slices.Clone(s.records), r)

	err = s.persist(records)
	if err != nil {
		return record.Record{}, err
	}

	s.log(journal.CommandAdd, r)

	return r, nil
}

// ListAll returns every record in insertion order, or ErrorEmptyStore.
func (s *Store) ListAll() ([]record.Record, error) {

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if len(s.records) == 0 {
		return nil, ErrorEmptyStore
	}

	return slices.Clone(s.records), nil
}

// SearchByName returns the records whose name contains substring, case
// insensitive. An empty substring matches every record.
func (s *Store) SearchByName(substring string) []record.Record {
	return s.filter(func(r *record.Record) bool {
		return record.ContainsFold(r.Name, substring)
	})
}

// SearchBySurname is SearchByName applied to the surname.
func (s *Store) SearchBySurname(substring string) []record.Record {
	return s.filter(func(r *record.Record) bool {
		return record.ContainsFold(r.Surname, substring)
	})
}

func (s *Store) SearchById(id int) (record.Record, error) {

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return record.Record{}, ErrorRecordNotFound
	}

	return s.records[i], nil
}

// Find returns the records matching a filter with the MongoDB query syntax,
// for example {"city": "Oslo"} or {"age": {"$gte": 18}}. Besides the
// MongoDB names, connor's own $ge and $le are accepted. An empty filter
// matches everything.
func (s *Store) Find(filter map[string]interface{}) ([]record.Record, error) {

	normalized, err := utils.NormalizeFilter(filter)
	if err != nil {
		return nil, fmt.Errorf("normalize filter: %w", err)
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := []record.Record{}
	for _, r := range s.records {

		if len(normalized) > 0 {
			doc, err := r.Document()
			if err != nil {
				return nil, err
			}
			match, err := connor.Match(normalized, doc)
			if err != nil {
				return nil, fmt.Errorf("match: %w", err)
			}
			if !match {
				continue
			}
		}

		result = append(result, r)
	}

	return result, nil
}

// Update overwrites the non empty fields on the record with the given id.
// Nothing is written when no field changes.
func (s *Store) Update(id int, fields record.Fields) (record.Record, error) {

	err := fields.Validate()
	if err != nil {
		return record.Record{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.status != StatusOperating {
		return record.Record{}, ErrorStoreClosed
	}

	i := s.indexOf(id)
	if i < 0 {
		return record.Record{}, ErrorRecordNotFound
	}

	records := slices.Clone(s.records)
	if !fields.Apply(&records[i]) {
		return records[i], nil
	}

	err = s.persist(records)
	if err != nil {
		return record.Record{}, err
	}

	s.log(journal.CommandUpdate, map[string]interface{}{
		"id":   id,
		"diff": fields,
	})

	return records[i], nil
}

// Delete removes the record with the given id and renumbers the rest. The
// removed record is returned with its former id.
func (s *Store) Delete(id int) (record.Record, error) {

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.status != StatusOperating {
		return record.Record{}, ErrorStoreClosed
	}

	i := s.indexOf(id)
	if i < 0 {
		return record.Record{}, ErrorRecordNotFound
	}

	removed := s.records[i]

	records := slices.Delete(slices.Clone(s.records), i, i+1)
	renumber(records)

	err := s.persist(records)
	if err != nil {
		return record.Record{}, err
	}

	s.log(journal.CommandDelete, map[string]interface{}{
		"id":     id,
		"record": removed,
	})

	return removed, nil
}

func (s *Store) Statistics() (*statistics.Statistics, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return statistics.Compute(s.records)
}

// Close stops accepting mutations. Every successful mutation is already on
// disk, only the journal needs to be released.
func (s *Store) Close() error {

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.status == StatusClosing {
		return nil
	}
	s.status = StatusClosing

	if s.journal != nil {
		return s.journal.Close()
	}

	return nil
}

// persist saves records and, only if that succeeds, makes them the current
// state. Must be called with the write lock held.
func (s *Store) persist(records []record.Record) error {

	err := storage.Save(s.config.Filename, records)
	if err != nil {
		s.logger.Errorw("save failed, changes discarded", "filename", s.config.Filename, "error", err)
		return err
	}

	s.records = records

	return nil
}

// log appends to the journal if enabled. The database file is the source of
// truth so a journal failure is only reported.
func (s *Store) log(name string, payload interface{}) {

	if s.journal == nil {
		return
	}

	command, err := s.journal.Append(name, payload)
	if err != nil {
		s.logger.Warnw("journal append failed", "command", name, "error", err)
		return
	}

	s.logger.Debugw("journal", "command", command.Name, "uuid", command.Uuid)
}

func (s *Store) filter(match func(r *record.Record) bool) []record.Record {

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := []record.Record{}
	for i := range s.records {
		if match(&s.records[i]) {
			result = append(result, s.records[i])
		}
	}

	return result
}

func (s *Store) indexOf(id int) int {
	for i := range s.records {
		if s.records[i].Id == id {
			return i
		}
	}
	return -1
}

// renumber rebuilds ids to match positions and reports if any changed.
func renumber(records []record.Record) bool {
	changed := false
	for i := range records {
		if records[i].Id != i+1 {
			records[i].Id = i + 1
			changed = true
		}
	}
	return changed
}
