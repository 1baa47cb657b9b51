package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scoutsie/internal/course"
)

func TestWriteICS(t *testing.T) {
	courses := []course.Course{
		{
			Title:       "Safeguarding Training Workshop",
			Description: "A refresher for adult volunteers",
			Status:      "Open",
			Location:    "Scout Den, Cork",
			Date:        "From 12/03/2026 to 13/03/2026",
			Bookable:    "Bookable",
		},
		{
			Title: "Course With No Date Yet",
			Date:  "to be confirmed",
		},
	}

	path := filepath.Join(t.TempDir(), "courses.ics")
	if err := WriteICS(path, courses, testLogger); err != nil {
		t.Fatalf("WriteICS: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:PUBLISH",
		"SUMMARY:Safeguarding Training Workshop",
		"LOCATION:Scout Den",
		"DTSTART;VALUE=DATE:20260312",
		// All-day DTEND is exclusive, so the day after the last day.
		"DTEND;VALUE=DATE:20260314",
		"END:VCALENDAR",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar missing %q", want)
		}
	}

	// The dateless course contributes no event.
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 1 {
		t.Errorf("expected 1 event, got %d", got)
	}
	if strings.Contains(out, "Course With No Date Yet") {
		t.Error("dateless course should be skipped")
	}
}

func TestSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Safeguarding Training Workshop", "safeguarding-training-workshop"},
		{"  First Aid (REC 3)  ", "first-aid-rec-3"},
		{"***", ""},
	}
	for _, tc := range cases {
		if got := slug(tc.in); got != tc.want {
			t.Errorf("slug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
