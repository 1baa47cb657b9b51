package export

import (
	"encoding/csv"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"scoutsie/internal/course"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func sampleCourses() []course.Course {
	return []course.Course{
		{
			Title:       "Safeguarding Training Workshop",
			Description: "A refresher for adult volunteers",
			Status:      "Open",
			Location:    "Scout Den, Cork",
			Date:        "From 12/03/2026 to 13/03/2026",
			Bookable:    "Bookable",
		},
		{
			Title:       "Café Training – Catering Basics",
			Description: "Caters for all ❤",
			Status:      "Full",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "courses.csv")
	if err := WriteCSV(path, sampleCourses(), testLogger); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	wantHeader := []string{"Title", "Description", "Status", "Location", "Date", "Bookable"}
	for i, h := range wantHeader {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}
	if rows[1][0] != "Safeguarding Training Workshop" {
		t.Errorf("title = %q", rows[1][0])
	}
	if rows[1][3] != "Scout Den, Cork" {
		t.Errorf("location = %q", rows[1][3])
	}

	// Non-ASCII runes are dropped, not replaced.
	if rows[2][0] != "Caf Training  Catering Basics" {
		t.Errorf("cleaned title = %q", rows[2][0])
	}
	if rows[2][1] != "Caters for all" {
		t.Errorf("cleaned description = %q", rows[2][1])
	}
}

func TestWriteCSVError(t *testing.T) {
	// Parent is a file, so MkdirAll fails.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := WriteCSV(filepath.Join(blocker, "sub", "courses.csv"), sampleCourses(), testLogger)
	if err == nil {
		t.Fatal("expected error")
	}

	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %T", err)
	}
	if se.Format != "csv" {
		t.Errorf("format = %q", se.Format)
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		t.Errorf("expected wrapped path error, got %v", se.Err)
	}
}
