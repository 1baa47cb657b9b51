package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"scoutsie/internal/course"
)

// WriteICS writes courses as an iCalendar file for group calendar import.
// Courses without a parseable date are skipped; listings are all-day events.
func WriteICS(path string, courses []course.Course, logger *slog.Logger) error {
	log := logger.With("component", "ics_export")

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//scoutsie//training courses//EN")

	now := time.Now()
	var added, skipped int
	for i, c := range courses {
		start, end := c.DateRange()
		if start.IsZero() {
			log.Debug("course skipped, no parseable date", "title", c.Title)
			skipped++
			continue
		}

		ev := cal.AddEvent(fmt.Sprintf("%d-%s@scoutsie", i, slug(c.Title)))
		ev.SetCreatedTime(now)
		ev.SetDtStampTime(now)
		ev.SetAllDayStartAt(start)
		// DTEND is exclusive for all-day events.
		ev.SetAllDayEndAt(end.AddDate(0, 0, 1))
		ev.SetSummary(c.Title)
		if c.Location != "" {
			ev.SetLocation(c.Location)
		}
		desc := c.Description
		if c.Status != "" {
			desc += "\nStatus: " + c.Status
		}
		if c.Bookable != "" {
			desc += "\n" + c.Bookable
		}
		ev.SetDescription(desc)
		added++
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &StorageError{Format: "ics", Path: path, Err: err}
	}
	if err := os.WriteFile(path, []byte(cal.Serialize()), 0o644); err != nil {
		return &StorageError{Format: "ics", Path: path, Err: err}
	}

	log.Info("iCalendar written", "path", path, "events", added, "skipped", skipped)
	return nil
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
