package record

import (
	"errors"
	"testing"

	. "github.com/fulldump/biff"
)

func TestFields_Apply(t *testing.T) {
	Alternative("Record Ann", func(a *A) {
		r := Record{Id: 1, Name: "Ann", Surname: "Lee", Age: 30, City: "Oslo"}
		original := r

		a.Alternative("No fields", func(a *A) {
			f := Fields{}
			AssertTrue(f.Empty())
			AssertFalse(f.Apply(&r))
			AssertEqual(r, original)
		})

		a.Alternative("Empty strings are ignored", func(a *A) {
			f := Fields{Name: Ptr(""), Surname: Ptr(""), City: Ptr("")}
			AssertTrue(f.Empty())
			AssertFalse(f.Apply(&r))
			AssertEqual(r, original)
		})

		a.Alternative("Only age", func(a *A) {
			f := Fields{Age: Ptr(42)}
			AssertTrue(f.Apply(&r))
			AssertEqual(r, Record{Id: 1, Name: "Ann", Surname: "Lee", Age: 42, City: "Oslo"})
		})

		a.Alternative("Age zero is a value", func(a *A) {
			f := Fields{Age: Ptr(0)}
			AssertFalse(f.Empty())
			AssertTrue(f.Apply(&r))
			AssertEqual(r.Age, 0)
		})

		a.Alternative("Same values", func(a *A) {
			f := Fields{Name: Ptr("Ann"), Age: Ptr(30)}
			AssertFalse(f.Apply(&r))
		})

		a.Alternative("All fields", func(a *A) {
			f := Fields{Name: Ptr("Bo"), Surname: Ptr("Kim"), Age: Ptr(17), City: Ptr("Bergen")}
			AssertTrue(f.Apply(&r))
			AssertEqual(r, Record{Id: 1, Name: "Bo", Surname: "Kim", Age: 17, City: "Bergen"})
		})
	})
}

func TestRecord_Validate(t *testing.T) {
	r := &Record{Name: "Ann", Age: 0}
	AssertNil(r.Validate())

	r.Age = -1
	err := r.Validate()
	AssertNotNil(err)
	AssertTrue(errors.Is(err, ErrorInvalidRecord))
	AssertEqual(err.Error(), "invalid record: field 'age' must be gte 0")
}

func TestFields_Validate(t *testing.T) {
	AssertNil((&Fields{}).Validate())
	AssertNil((&Fields{Age: Ptr(5)}).Validate())

	err := (&Fields{Age: Ptr(-3)}).Validate()
	AssertTrue(errors.Is(err, ErrorInvalidRecord))
}

func TestRecord_Document(t *testing.T) {
	r := &Record{Id: 2, Name: "Bo", Surname: "Kim", Age: 17, City: "Oslo"}

	doc, err := r.Document()
	AssertNil(err)
	AssertEqualJson(doc, map[string]interface{}{
		"id":      2,
		"name":    "Bo",
		"surname": "Kim",
		"age":     17,
		"city":    "Oslo",
	})
}

func TestContainsFold(t *testing.T) {
	AssertTrue(ContainsFold("Annabel", "NNA"))
	AssertTrue(ContainsFold("Annabel", ""))
	AssertFalse(ContainsFold("Annabel", "bob"))
}
