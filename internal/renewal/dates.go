package renewal

import (
	"regexp"
	"strings"
	"time"
)

// Safeguarding course texts are free-form; the completion date is pulled out
// by regex. The "from D/M/Y to" range form is preferred, otherwise the last
// date-like substring anywhere in the text wins.
var (
	fromToPattern  = regexp.MustCompile(`(?i)from\s+(\d{1,2})/(\d{1,2})/(\d{4})\s+to`)
	anyDatePattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	vettingPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

var safeguardingKeywords = []string{"safeguarding", "safe guarding"}

// IsSafeguardingCourse reports whether a training-course text is a
// safeguarding-qualifying course. "Being A Scouter" is the initial
// safeguarding course and counts too.
func IsSafeguardingCourse(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range safeguardingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return strings.Contains(text, "Being A Scouter")
}

// SafeguardingDate extracts the completion date from a safeguarding course
// text. Returns the zero time if the text is not a safeguarding course or no
// date can be found.
func SafeguardingDate(text string) time.Time {
	if !IsSafeguardingCourse(text) {
		return time.Time{}
	}

	if m := fromToPattern.FindStringSubmatch(text); m != nil {
		if d, ok := makeDate(m[1], m[2], m[3]); ok {
			return d
		}
	}

	// No range form: take the last date mentioned anywhere in the text.
	matches := anyDatePattern.FindAllStringSubmatch(text, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if d, ok := makeDate(matches[i][1], matches[i][2], matches[i][3]); ok {
			return d
		}
	}

	return time.Time{}
}

// ParseVettingDate parses a strict dd/mm/yyyy vetting completion date.
// Returns the zero time for anything that does not match exactly.
func ParseVettingDate(s string) time.Time {
	s = strings.TrimSpace(s)
	m := vettingPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}
	}
	d, _ := makeDate(m[1], m[2], m[3])
	return d
}

// makeDate builds a date from day/month/year strings already vetted as
// digits by the regexes. Out-of-range values (month 13, day 31 in February)
// are rejected rather than normalized.
func makeDate(day, month, year string) (time.Time, bool) {
	d := atoi(day)
	m := atoi(month)
	y := atoi(year)
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
