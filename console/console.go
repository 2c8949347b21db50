// Package console is the interactive front end: it shows the menu, reads
// and parses the user input and renders what the store returns.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fulldump/teemydb/record"
	"github.com/fulldump/teemydb/statistics"
	"github.com/fulldump/teemydb/storage"
	"github.com/fulldump/teemydb/store"
)

const title = "Teemy DB - DATABASE MANAGEMENT SYSTEM"

const invalidTextMessage = "Text must be valid UTF-8!"

type Store interface {
	Len() int
	Add(name, surname string, age int, city string) (record.Record, error)
	ListAll() ([]record.Record, error)
	SearchByName(substring string) []record.Record
	SearchBySurname(substring string) []record.Record
	SearchById(id int) (record.Record, error)
	Update(id int, fields record.Fields) (record.Record, error)
	Delete(id int) (record.Record, error)
	Statistics() (*statistics.Statistics, error)
}

type Console struct {
	store  Store
	in     *bufio.Scanner
	out    io.Writer
	styles styles
}

func New(s Store, in io.Reader, out io.Writer, color bool) *Console {
	return &Console{
		store:  s,
		in:     bufio.NewScanner(in),
		out:    out,
		styles: newStyles(out, color),
	}
}

type menuItem struct {
	Label  string
	Action func(c *Console) (exit bool)
}

var menu = []menuItem{
	{"Add record", (*Console).add},
	{"Show all records", (*Console).listAll},
	{"Search by name", (*Console).searchByName},
	{"Search by surname", (*Console).searchBySurname},
	{"Search by ID", (*Console).searchById},
	{"Update record", (*Console).update},
	{"Delete record", (*Console).remove},
	{"Show statistics", (*Console).showStatistics},
	{"Exit", (*Console).exit},
}

// Run loops over the menu until the user exits or the input ends.
func (c *Console) Run() error {

	c.header(title)
	c.info(fmt.Sprintf("Records loaded: %d", c.store.Len()))

	for {
		c.showMenu()

		fmt.Fprintln(c.out)
		choice, ok := c.ask(fmt.Sprintf("Choose an option (1-%d): ", len(menu)))
		if !ok {
			break
		}

		n, err := strconv.Atoi(strings.TrimSpace(choice))
		if err != nil || n < 1 || n > len(menu) {
			c.failure(fmt.Sprintf("Invalid option. Please choose from 1 to %d.", len(menu)))
			continue
		}

		if menu[n-1].Action(c) {
			return nil
		}
	}

	return c.in.Err()
}

func (c *Console) showMenu() {
	c.header(title)
	for i, item := range menu {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, item.Label)
	}
}

func (c *Console) add() bool {
	c.header("ADD NEW RECORD")

	name, ok := c.ask("Name: ")
	if !ok {
		return true
	}
	surname, ok := c.ask("Surname: ")
	if !ok {
		return true
	}
	age, ok, valid := c.askInt("Age: ")
	if !ok {
		return true
	}
	if !valid {
		c.failure("Age must be a number!")
		return false
	}
	city, ok := c.ask("City: ")
	if !ok {
		return true
	}
	if !validText(name, surname, city) {
		c.failure(invalidTextMessage)
		return false
	}

	r, err := c.store.Add(name, surname, age, city)
	if err != nil {
		c.reportError(err)
		return false
	}

	c.success(fmt.Sprintf("Record %s %s added with ID %d.", r.Name, r.Surname, r.Id))
	return false
}

func (c *Console) listAll() bool {
	records, err := c.store.ListAll()
	if err == store.ErrorEmptyStore {
		c.failure("No records in the database.")
		return false
	}
	if err != nil {
		c.reportError(err)
		return false
	}

	c.PrintRecords("ALL RECORDS", records)
	c.PrintStatistics()
	return false
}

func (c *Console) searchByName() bool {
	c.header("SEARCH BY NAME")
	name, ok := c.ask("Name to search: ")
	if !ok {
		return true
	}

	found := c.store.SearchByName(name)
	if len(found) == 0 {
		c.failure(fmt.Sprintf("No records with name %q found.", name))
		return false
	}

	c.PrintRecords(fmt.Sprintf("SEARCH RESULTS BY NAME: '%s'", name), found)
	return false
}

func (c *Console) searchBySurname() bool {
	c.header("SEARCH BY SURNAME")
	surname, ok := c.ask("Surname to search: ")
	if !ok {
		return true
	}

	found := c.store.SearchBySurname(surname)
	if len(found) == 0 {
		c.failure(fmt.Sprintf("No records with surname %q found.", surname))
		return false
	}

	c.PrintRecords(fmt.Sprintf("SEARCH RESULTS BY SURNAME: '%s'", surname), found)
	return false
}

func (c *Console) searchById() bool {
	c.header("SEARCH BY ID")
	id, ok, valid := c.askInt("ID to search: ")
	if !ok {
		return true
	}
	if !valid {
		c.failure("ID must be a number!")
		return false
	}

	r, err := c.store.SearchById(id)
	if err == store.ErrorRecordNotFound {
		c.failure(fmt.Sprintf("Record with ID %d not found.", id))
		return false
	}
	if err != nil {
		c.reportError(err)
		return false
	}

	c.PrintRecords(fmt.Sprintf("SEARCH RESULTS BY ID: %d", id), []record.Record{r})
	return false
}

func (c *Console) update() bool {
	c.header("UPDATE RECORD")
	id, ok, valid := c.askInt("ID of the record to update: ")
	if !ok {
		return true
	}
	if !valid {
		c.failure("ID must be a number!")
		return false
	}

	fields := record.Fields{}
	for _, field := range []struct {
		prompt string
		dst    **string
	}{
		{"New name (leave empty to keep it): ", &fields.Name},
		{"New surname (leave empty to keep it): ", &fields.Surname},
	} {
		value, ok := c.ask(field.prompt)
		if !ok {
			return true
		}
		if value != "" {
			*field.dst = record.Ptr(value)
		}
	}

	ageInput, ok := c.ask("New age (leave empty to keep it): ")
	if !ok {
		return true
	}
	if ageInput != "" {
		age, err := strconv.Atoi(strings.TrimSpace(ageInput))
		if err != nil {
			c.failure("Age must be a number!")
			return false
		}
		fields.Age = record.Ptr(age)
	}

	city, ok := c.ask("New city (leave empty to keep it): ")
	if !ok {
		return true
	}
	if city != "" {
		fields.City = record.Ptr(city)
	}

	for _, value := range []*string{fields.Name, fields.Surname, fields.City} {
		if value != nil && !validText(*value) {
			c.failure(invalidTextMessage)
			return false
		}
	}

	_, err := c.store.Update(id, fields)
	if err == store.ErrorRecordNotFound {
		c.failure(fmt.Sprintf("Record with ID %d not found.", id))
		return false
	}
	if err != nil {
		c.reportError(err)
		return false
	}

	c.success(fmt.Sprintf("Record with ID %d updated.", id))
	return false
}

func (c *Console) remove() bool {
	c.header("DELETE RECORD")
	id, ok, valid := c.askInt("ID of the record to delete: ")
	if !ok {
		return true
	}
	if !valid {
		c.failure("ID must be a number!")
		return false
	}

	_, err := c.store.Delete(id)
	if err == store.ErrorRecordNotFound {
		c.failure(fmt.Sprintf("Record with ID %d not found.", id))
		return false
	}
	if err != nil {
		c.reportError(err)
		return false
	}

	c.success(fmt.Sprintf("Record with ID %d deleted.", id))
	return false
}

func (c *Console) showStatistics() bool {
	c.PrintStatistics()
	return false
}

func (c *Console) exit() bool {
	c.header("EXIT")
	c.success("Data saved. Goodbye!")
	return true
}

// reportError renders errors that are not an expected outcome of the
// operation. The menu keeps running after them.
func (c *Console) reportError(err error) {

	persistenceError := &storage.PersistenceError{}
	switch {
	case errors.Is(err, record.ErrorInvalidRecord):
		c.failure(err.Error())
	case errors.As(err, &persistenceError):
		c.failure("Changes were not saved: " + persistenceError.Error())
	default:
		c.failure(err.Error())
	}
}

// ask prints prompt and returns the next input line. ok is false when the
// input is exhausted.
func (c *Console) ask(prompt string) (line string, ok bool) {
	fmt.Fprint(c.out, c.styles.prompt.Render(prompt))
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		return "", false
	}
	return c.in.Text(), true
}

func validText(values ...string) bool {
	for _, value := range values {
		if !utf8.ValidString(value) {
			return false
		}
	}
	return true
}

func (c *Console) askInt(prompt string) (n int, ok bool, valid bool) {
	line, ok := c.ask(prompt)
	if !ok {
		return 0, false, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	return n, true, err == nil
}
