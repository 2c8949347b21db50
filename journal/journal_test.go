package journal

import (
	"fmt"
	"os"
	"testing"
	"time"

	. "github.com/fulldump/biff"
	"github.com/google/uuid"
)

func Environment(f func(filename string)) {
	filename := fmt.Sprintf("temp-%v.journal", time.Now().UnixNano())
	defer os.Remove(filename)

	f(filename)
}

func TestAppend(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		j, _ := Open(filename)
		defer j.Close()

		// Run
		command, err := j.Append(CommandAdd, map[string]interface{}{
			"hello": "world",
		})

		// Check
		AssertNil(err)
		AssertEqual(command.Name, CommandAdd)
		AssertEqual(string(command.Payload), `{"hello":"world"}`)
		_, errUuid := uuid.Parse(command.Uuid)
		AssertNil(errUuid)
		AssertTrue(command.Timestamp > 0)
	})
}

func TestRead(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		j, _ := Open(filename)
		j.Append(CommandAdd, map[string]interface{}{"id": 1})
		j.Append(CommandUpdate, map[string]interface{}{"id": 1, "diff": map[string]interface{}{"age": 42}})
		j.Append(CommandDelete, map[string]interface{}{"id": 1})
		j.Close()

		// Run
		commands, err := Read(filename)

		// Check
		AssertNil(err)
		AssertEqual(len(commands), 3)
		AssertEqual(commands[0].Name, CommandAdd)
		AssertEqual(commands[1].Name, CommandUpdate)
		AssertEqual(commands[2].Name, CommandDelete)
		AssertEqual(string(commands[1].Payload), `{"diff":{"age":42},"id":1}`)
		AssertNotEqual(commands[0].Uuid, commands[1].Uuid)
	})
}

func TestAppend_Reopen(t *testing.T) {
	Environment(func(filename string) {

		j, _ := Open(filename)
		j.Append(CommandAdd, 1)
		j.Close()

		j, _ = Open(filename)
		j.Append(CommandAdd, 2)
		j.Close()

		commands, _ := Read(filename)
		AssertEqual(len(commands), 2)
		AssertEqual(string(commands[1].Payload), `2`)
	})
}

func TestAppend_Closed(t *testing.T) {
	Environment(func(filename string) {

		j, _ := Open(filename)
		AssertNil(j.Close())
		AssertNil(j.Close())

		_, err := j.Append(CommandAdd, 1)
		AssertEqual(err, ErrorJournalClosed)
	})
}

func TestRead_Corrupted(t *testing.T) {
	Environment(func(filename string) {
		os.WriteFile(filename, []byte(`{"name":"add","uuid":"x","timestamp":1,"payload":{}}`+"\n"+`{"name":`), 0666)

		commands, err := Read(filename)

		AssertNil(commands)
		AssertNotNil(err)
	})
}
