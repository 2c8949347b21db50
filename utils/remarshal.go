package utils

import (
	"github.com/go-json-experiment/json"
)

// Remarshal copies input into output through its JSON representation, for
// example to turn Go ints inside a map into the float64 a decoded document
// would hold.
func Remarshal(input interface{}, output interface{}) (err error) {
	b, err := json.Marshal(input)
	if nil != err {
		return
	}
	return json.Unmarshal(b, output)
}
