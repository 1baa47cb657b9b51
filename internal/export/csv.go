// Package export writes scraped course listings to flat files.
package export

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"scoutsie/internal/course"
)

// StorageError wraps failures while writing an export file.
type StorageError struct {
	Format string
	Path   string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("export error (%s, %s): %v", e.Format, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

var csvHeader = []string{"Title", "Description", "Status", "Location", "Date", "Bookable"}

// WriteCSV writes courses as the six-column delimited export.
func WriteCSV(path string, courses []course.Course, logger *slog.Logger) error {
	log := logger.With("component", "csv_export")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &StorageError{Format: "csv", Path: path, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &StorageError{Format: "csv", Path: path, Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return &StorageError{Format: "csv", Path: path, Err: err}
	}

	for _, c := range courses {
		row := []string{
			cleanASCII(c.Title),
			cleanASCII(c.Description),
			cleanASCII(c.Status),
			cleanASCII(c.Location),
			cleanASCII(c.Date),
			cleanASCII(c.Bookable),
		}
		if err := w.Write(row); err != nil {
			return &StorageError{Format: "csv", Path: path, Err: err}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return &StorageError{Format: "csv", Path: path, Err: err}
	}

	log.Info("CSV written", "path", path, "courses", len(courses))
	return nil
}

// cleanASCII strips non-ASCII runes from scraped text. The export format
// predates the scraper and downstream consumers choke on anything else.
func cleanASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
