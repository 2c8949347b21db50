package console

import (
	"fmt"
	"strings"

	"github.com/fulldump/teemydb/record"
	"github.com/fulldump/teemydb/statistics"
)

const width = 60

var ageGroupNames = map[string]string{
	"0-17":  "Children (0-17)",
	"18-35": "Youth (18-35)",
	"36-60": "Adults (36-60)",
	"60+":   "Seniors (60+)",
}

func (c *Console) header(text string) {
	line := strings.Repeat("=", width)
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.header.Render(line))
	fmt.Fprintln(c.out, c.styles.header.Render(center(text, width)))
	fmt.Fprintln(c.out, c.styles.header.Render(line))
}

func (c *Console) success(message string) {
	fmt.Fprintln(c.out, c.styles.success.Render("✓ "+message))
}

func (c *Console) failure(message string) {
	fmt.Fprintln(c.out, c.styles.failure.Render("✗ "+message))
}

func (c *Console) info(message string) {
	fmt.Fprintln(c.out, c.styles.info.Render("→ "+message))
}

func (c *Console) PrintRecords(title string, records []record.Record) {
	c.header(title)
	for _, r := range records {
		fmt.Fprintln(c.out, c.styles.id.Render(fmt.Sprintf("ID: %d", r.Id)))
		fmt.Fprintf(c.out, "  Name: %s\n", r.Name)
		fmt.Fprintf(c.out, "  Surname: %s\n", r.Surname)
		fmt.Fprintf(c.out, "  Age: %d\n", r.Age)
		fmt.Fprintf(c.out, "  City: %s\n", r.City)
		fmt.Fprintln(c.out, strings.Repeat("-", 40))
	}
}

func (c *Console) PrintStatistics() {

	s, err := c.store.Statistics()
	if err == statistics.ErrorNoData {
		c.failure("No data for statistics")
		return
	}
	if err != nil {
		c.reportError(err)
		return
	}

	c.header("DATABASE STATISTICS")

	fmt.Fprintln(c.out, c.styles.section.Render("GENERAL:"))
	fmt.Fprintf(c.out, "  Total records: %d\n", s.Total)
	fmt.Fprintf(c.out, "  Average age: %.1f years\n", s.AverageAge)

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.section.Render("CITIES:"))
	for _, city := range s.Cities {
		fmt.Fprintf(c.out, "  %s: %d (%.1f%%)\n", city.City, city.Count, city.Percentage)
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.section.Render("AGE GROUPS:"))
	for _, group := range s.AgeGroups {
		if group.Count == 0 {
			continue
		}
		name, ok := ageGroupNames[group.Label]
		if !ok {
			name = group.Label
		}
		fmt.Fprintf(c.out, "  %s: %d (%.1f%%)\n", name, group.Count, group.Percentage)
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.section.Render("MOST POPULAR CITY:"))
	fmt.Fprintf(c.out, "  %s: %d records\n", s.MostCommonCity.City, s.MostCommonCity.Count)
}

func center(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-n-left)
}

// PrintMatches is PrintRecords with a message for an empty result.
func (c *Console) PrintMatches(title string, records []record.Record) {
	if len(records) == 0 {
		c.failure("No records match.")
		return
	}
	c.PrintRecords(title, records)
}
