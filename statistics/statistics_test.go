package statistics

import (
	"fmt"
	"testing"

	. "github.com/fulldump/biff"

	"github.com/fulldump/teemydb/record"
)

func TestCompute_Empty(t *testing.T) {
	s, err := Compute(nil)

	AssertNil(s)
	AssertEqual(err, ErrorNoData)
}

func TestCompute(t *testing.T) {

	s, err := Compute([]record.Record{
		{Id: 1, Age: 10, City: "A"},
		{Id: 2, Age: 25, City: "A"},
		{Id: 3, Age: 70, City: "B"},
	})

	AssertNil(err)
	AssertEqual(s.Total, 3)
	AssertEqual(fmt.Sprintf("%.1f", s.AverageAge), "35.0")

	AssertEqual(len(s.Cities), 2)
	AssertEqual(s.Cities[0].City, "A")
	AssertEqual(s.Cities[0].Count, 2)
	AssertEqual(fmt.Sprintf("%.1f", s.Cities[0].Percentage), "66.7")
	AssertEqual(s.Cities[1].City, "B")
	AssertEqual(s.Cities[1].Count, 1)
	AssertEqual(fmt.Sprintf("%.1f", s.Cities[1].Percentage), "33.3")

	counts := map[string]int{}
	for _, group := range s.AgeGroups {
		counts[group.Label] = group.Count
	}
	AssertEqual(counts, map[string]int{
		"0-17":  1,
		"18-35": 1,
		"36-60": 0,
		"60+":   1,
	})

	AssertEqual(s.MostCommonCity.City, "A")
	AssertEqual(s.MostCommonCity.Count, 2)
}

func TestCompute_AgeGroupBoundaries(t *testing.T) {

	ages := []int{0, 17, 18, 35, 36, 60, 61, 120}
	records := []record.Record{}
	for i, age := range ages {
		records = append(records, record.Record{Id: i + 1, Age: age, City: "X"})
	}

	s, _ := Compute(records)

	AssertEqual(len(s.AgeGroups), 4)
	for _, group := range s.AgeGroups {
		AssertEqual(group.Count, 2)
		AssertEqual(group.Percentage, 25.0)
	}
	AssertEqual(s.AgeGroups[0].Label, "0-17")
	AssertEqual(s.AgeGroups[1].Label, "18-35")
	AssertEqual(s.AgeGroups[2].Label, "36-60")
	AssertEqual(s.AgeGroups[3].Label, "60+")
}

func TestCompute_TieBreakFirstInserted(t *testing.T) {

	s, _ := Compute([]record.Record{
		{Id: 1, Age: 30, City: "Oslo"},
		{Id: 2, Age: 30, City: "Bergen"},
		{Id: 3, Age: 30, City: "Bergen"},
		{Id: 4, Age: 30, City: "Oslo"},
		{Id: 5, Age: 30, City: "Tromsø"},
	})

	AssertEqual(s.MostCommonCity.City, "Oslo")
	cities := []string{}
	for _, city := range s.Cities {
		cities = append(cities, city.City)
	}
	AssertEqual(cities, []string{"Oslo", "Bergen", "Tromsø"})
}

func TestCompute_DoesNotShareAgeGroups(t *testing.T) {

	Compute([]record.Record{{Id: 1, Age: 5, City: "A"}})
	s, _ := Compute([]record.Record{{Id: 1, Age: 50, City: "A"}})

	AssertEqual(s.AgeGroups[0].Count, 0)
	AssertEqual(s.AgeGroups[2].Count, 1)
	AssertEqual(defaultAgeGroups[0].Count, 0)
}
