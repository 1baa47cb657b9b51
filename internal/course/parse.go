package course

import (
	"strings"
)

// minBlockLen filters out fragments and bare course codes before the
// positional parse is attempted.
const minBlockLen = 50

// ParseBlock splits a scraped text blob into the positional course fields.
// The portal renders each listing in a fixed line order: title, description,
// "Status: X", "location - date range", and (two lines later) a bookable
// marker. Any deviation yields empty fields, never an error — the caller
// decides whether a titleless record is worth keeping.
func ParseBlock(raw string) Course {
	if len(raw) < minBlockLen {
		return Course{}
	}

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	var c Course
	if len(lines) > 0 {
		c.Title = lines[0]
	}
	if len(lines) > 1 {
		c.Description = lines[1]
	}
	if len(lines) > 2 {
		if _, after, ok := strings.Cut(lines[2], ":"); ok {
			c.Status = strings.TrimSpace(after)
		}
	}
	if len(lines) > 3 {
		before, after, ok := strings.Cut(lines[3], "-")
		c.Location = strings.TrimSpace(before)
		if ok {
			c.Date = strings.TrimSpace(after)
		}
	}
	if len(lines) > 5 {
		c.Bookable = lines[5]
	}

	if c.Empty() {
		return Course{}
	}
	return c
}
