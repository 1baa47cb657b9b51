// Package course models scraped training-course listings and extracts them
// from rendered portal pages.
package course

import (
	"regexp"
	"time"
)

// Course is one training-course offering scraped from the events list.
// All fields are free text lifted from whatever the page rendered.
type Course struct {
	Title       string
	Description string
	Status      string
	Location    string
	Date        string
	Bookable    string
}

// Empty reports whether the record carries no usable identity.
func (c Course) Empty() bool {
	return c.Title == "" && c.Description == ""
}

// Key identifies a course for deduplication.
func (c Course) Key() string {
	return c.Title + "-" + c.Date + "-" + c.Location
}

var dateRe = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)

// DateRange parses the scraped date text into start and end days. The end
// equals the start for single-day listings; both are zero when no date-like
// substring is present or valid.
func (c Course) DateRange() (start, end time.Time) {
	matches := dateRe.FindAllStringSubmatch(c.Date, -1)
	var dates []time.Time
	for _, m := range matches {
		if d, ok := makeDate(m[1], m[2], m[3]); ok {
			dates = append(dates, d)
		}
	}
	if len(dates) == 0 {
		return time.Time{}, time.Time{}
	}
	return dates[0], dates[len(dates)-1]
}

// Dedup removes duplicate listings, preserving first-seen order.
func Dedup(in []Course) []Course {
	seen := make(map[string]bool, len(in))
	out := make([]Course, 0, len(in))
	for _, c := range in {
		if seen[c.Key()] {
			continue
		}
		seen[c.Key()] = true
		out = append(out, c)
	}
	return out
}

func makeDate(day, month, year string) (time.Time, bool) {
	d, m, y := atoi(day), atoi(month), atoi(year)
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || t.Month() != time.Month(m) || t.Year() != y {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
