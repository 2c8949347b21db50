package record

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-playground/validator/v10"
)

var ErrorInvalidRecord = errors.New("invalid record")

var validate = validator.New()

// Record is one person entry. Id is the position of the record inside the
// store (1..N), it changes when a preceding record is deleted.
type Record struct {
	Id      int    `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Age     int    `json:"age" validate:"gte=0"`
	City    string `json:"city"`
}

func (r *Record) Validate() error {
	return validationError(validate.Struct(r))
}

// Document returns the record as a generic JSON object, the shape filters
// are matched against.
func (r *Record) Document() (map[string]interface{}, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}

	doc := map[string]interface{}{}
	err = json.Unmarshal(b, &doc)
	if err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}

	return doc, nil
}

// Fields is a partial update. Nil pointers and empty strings leave the
// corresponding field untouched.
type Fields struct {
	Name    *string `json:"name,omitempty"`
	Surname *string `json:"surname,omitempty"`
	Age     *int    `json:"age,omitempty" validate:"omitempty,gte=0"`
	City    *string `json:"city,omitempty"`
}

func (f *Fields) Validate() error {
	return validationError(validate.Struct(f))
}

// Apply overwrites every present field on r and reports whether something
// changed.
func (f *Fields) Apply(r *Record) bool {
	changed := false

	set := func(dst *string, src *string) {
		if src == nil || *src == "" || *dst == *src {
			return
		}
		*dst = *src
		changed = true
	}

	set(&r.Name, f.Name)
	set(&r.Surname, f.Surname)
	set(&r.City, f.City)

	if f.Age != nil && r.Age != *f.Age {
		r.Age = *f.Age
		changed = true
	}

	return changed
}

// Empty is true when Apply would be a no-op on any record.
func (f *Fields) Empty() bool {
	blank := func(s *string) bool {
		return s == nil || *s == ""
	}
	return blank(f.Name) && blank(f.Surname) && blank(f.City) && f.Age == nil
}

// Ptr is a shorthand to fill Fields.
func Ptr[T any](v T) *T {
	return &v
}

// ContainsFold reports whether substr is within s, case insensitive.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func validationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %s", ErrorInvalidRecord, err.Error())
	}

	messages := []string{}
	for _, fieldError := range validationErrors {
		messages = append(messages, fmt.Sprintf("field '%s' must be %s %s", strings.ToLower(fieldError.Field()), fieldError.Tag(), fieldError.Param()))
	}

	return fmt.Errorf("%w: %s", ErrorInvalidRecord, strings.Join(messages, ", "))
}
