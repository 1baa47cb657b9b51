package portal

import (
	"testing"

	"scoutsie/internal/config"
)

func filterScraper() *Scraper {
	return &Scraper{
		cfg: &config.PortalConfig{
			FilterLabels:        []string{"Training"},
			FilterExcludeLabels: []string{"My Training"},
		},
		logger: testLogger,
	}
}

func TestMatchesFilter(t *testing.T) {
	s := filterScraper()

	cases := []struct {
		text string
		want bool
	}{
		{"Training", true},
		{"training events", true},
		{"TRAINING", true},
		{"My Training", false}, // excluded even though it contains the label
		{"my training dashboard", false},
		{"Camps", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := s.matchesFilter(tc.text); got != tc.want {
			t.Errorf("matchesFilter(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"2026", true},
		{"0", true},
		{"", false},
		{"20a6", false},
		{"-1", false},
	}
	for _, tc := range cases {
		if got := isNumeric(tc.in); got != tc.want {
			t.Errorf("isNumeric(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLooksLikeYear(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"2026", true},
		{"2020", true},
		{"2030", true},
		{"2031", false},
		{"1999", false},
		{"26", false},
		{"abcd", false},
	}
	for _, tc := range cases {
		if got := looksLikeYear(tc.in); got != tc.want {
			t.Errorf("looksLikeYear(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestXPathFormsCoverTag(t *testing.T) {
	forms := xpathForms("a", "Events")
	if len(forms) != 6 {
		t.Fatalf("expected 6 lookup forms, got %d", len(forms))
	}
	for _, xp := range forms {
		if xp[:3] != "//a" {
			t.Errorf("form %q does not target the tag", xp)
		}
	}
}
