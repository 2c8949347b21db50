package utils

import (
	"testing"

	. "github.com/fulldump/biff"
)

func TestNormalizeFilter(t *testing.T) {
	filter := map[string]interface{}{
		"age":  map[string]interface{}{"$gte": 18, "$lte": 65},
		"city": "Oslo",
	}

	normalized, err := NormalizeFilter(filter)

	AssertNil(err)
	AssertEqual(normalized, map[string]interface{}{
		"age":  map[string]interface{}{"$ge": float64(18), "$le": float64(65)},
		"city": "Oslo",
	})
}

func TestNormalizeFilter_Nested(t *testing.T) {
	filter := map[string]interface{}{
		"$or": []interface{}{
			map[string]interface{}{"age": map[string]interface{}{"$lte": 17}},
			map[string]interface{}{"age": map[string]interface{}{"$gt": 60}},
		},
	}

	normalized, err := NormalizeFilter(filter)

	AssertNil(err)
	AssertEqual(normalized, map[string]interface{}{
		"$or": []interface{}{
			map[string]interface{}{"age": map[string]interface{}{"$le": float64(17)}},
			map[string]interface{}{"age": map[string]interface{}{"$gt": float64(60)}},
		},
	})
}

func TestNormalizeFilter_Empty(t *testing.T) {
	normalized, err := NormalizeFilter(nil)

	AssertNil(err)
	AssertEqual(len(normalized), 0)
}

func TestNormalizeFilter_Error(t *testing.T) {
	_, err := NormalizeFilter(map[string]interface{}{"f": func() {}})

	AssertNotNil(err)
}
