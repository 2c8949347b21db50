package journal

import "github.com/go-json-experiment/json/jsontext"

const (
	CommandAdd    = "add"
	CommandUpdate = "update"
	CommandDelete = "delete"
)

type Command struct {
	Name      string         `json:"name"`
	Uuid      string         `json:"uuid"`
	Timestamp int64          `json:"timestamp"`
	Payload   jsontext.Value `json:"payload"`
}
