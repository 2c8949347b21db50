// Package statistics aggregates a list of records: totals, average age,
// distribution by city and by age group.
package statistics

import (
	"errors"
	"math"

	"github.com/google/btree"

	"github.com/fulldump/teemydb/record"
)

var ErrorNoData = errors.New("no data for statistics")

type CityCount struct {
	City       string  `json:"city"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`

	first int // position of the first record living in City
}

// AgeGroup counts records whose age is <= Max and greater than the Max of
// the previous group.
type AgeGroup struct {
	Label      string  `json:"label"`
	Max        int     `json:"max"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

var defaultAgeGroups = []AgeGroup{
	{Label: "0-17", Max: 17},
	{Label: "18-35", Max: 35},
	{Label: "36-60", Max: 60},
	{Label: "60+", Max: math.MaxInt},
}

type Statistics struct {
	Total          int         `json:"total"`
	AverageAge     float64     `json:"average_age"`
	Cities         []CityCount `json:"cities"`
	AgeGroups      []AgeGroup  `json:"age_groups"`
	MostCommonCity CityCount   `json:"most_common_city"`
}

// Compute returns the statistics of records or ErrorNoData if there are
// none.
//
// Cities are ranked by count, descending. Cities with the same count keep
// the order in which they first appear in records, so MostCommonCity is the
// earliest inserted city among the most common ones.
func Compute(records []record.Record) (*Statistics, error) {

	total := len(records)
	if total == 0 {
		return nil, ErrorNoData
	}

	ageGroups := make([]AgeGroup, len(defaultAgeGroups))
	copy(ageGroups, defaultAgeGroups)

	ageSum := 0
	cities := map[string]*CityCount{}
	for i, r := range records {
		ageSum += r.Age

		city, exists := cities[r.City]
		if !exists {
			city = &CityCount{City: r.City, first: i}
			cities[r.City] = city
		}
		city.Count++

		for g := range ageGroups {
			if r.Age <= ageGroups[g].Max {
				ageGroups[g].Count++
				break
			}
		}
	}

	ranking := btree.NewG(2, func(a, b *CityCount) bool {
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.first < b.first
	})
	for _, city := range cities {
		city.Percentage = percentage(city.Count, total)
		ranking.ReplaceOrInsert(city)
	}

	s := &Statistics{
		Total:      total,
		AverageAge: float64(ageSum) / float64(total),
		Cities:     make([]CityCount, 0, ranking.Len()),
		AgeGroups:  ageGroups,
	}

	ranking.Ascend(func(city *CityCount) bool {
		s.Cities = append(s.Cities, *city)
		return true
	})
	s.MostCommonCity = s.Cities[0]

	for g := range s.AgeGroups {
		s.AgeGroups[g].Percentage = percentage(s.AgeGroups[g].Count, total)
	}

	return s, nil
}

func percentage(count, total int) float64 {
	return float64(count) / float64(total) * 100
}
