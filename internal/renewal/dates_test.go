package renewal

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsSafeguardingCourse(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"Safeguarding Awareness from 01/02/2023 to 02/02/2023", true},
		{"SAFE GUARDING refresher", true},
		{"This is Scouting - Being A Scouter", true},
		{"First Aid Response from 01/02/2023 to 02/02/2023", false},
		{"being a scouter", false}, // exact casing required for the course title
		{"", false},
	}

	for _, tc := range cases {
		if got := IsSafeguardingCourse(tc.text); got != tc.want {
			t.Errorf("IsSafeguardingCourse(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestSafeguardingDatePrefersFromTo(t *testing.T) {
	text := "Safeguarding Awareness held 01/01/2020, from 15/03/2023 to 16/03/2023"
	got := SafeguardingDate(text)
	want := date(2023, time.March, 15)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSafeguardingDateFallsBackToLastDate(t *testing.T) {
	text := "Safeguarding refresher completed 01/01/2020, certificate issued 05/06/2022"
	got := SafeguardingDate(text)
	want := date(2022, time.June, 5)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSafeguardingDateNonSafeguarding(t *testing.T) {
	if got := SafeguardingDate("Woodbadge from 01/02/2023 to 02/02/2023"); !got.IsZero() {
		t.Errorf("expected zero time for non-safeguarding course, got %v", got)
	}
}

func TestSafeguardingDateNoDate(t *testing.T) {
	if got := SafeguardingDate("Safeguarding Awareness, date to be confirmed"); !got.IsZero() {
		t.Errorf("expected zero time when no date present, got %v", got)
	}
}

func TestParseVettingDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"15/03/2023", date(2023, time.March, 15)},
		{"1/2/2023", date(2023, time.February, 1)},
		{"  15/03/2023  ", date(2023, time.March, 15)},
		{"2023-03-15", time.Time{}},
		{"15/03/23", time.Time{}},
		{"32/01/2023", time.Time{}}, // day out of range
		{"15/13/2023", time.Time{}}, // month out of range
		{"29/02/2023", time.Time{}}, // not a leap year
		{"", time.Time{}},
		{"notadate", time.Time{}},
	}

	for _, tc := range cases {
		got := ParseVettingDate(tc.in)
		if !got.Equal(tc.want) {
			t.Errorf("ParseVettingDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseVettingDateLeapDay(t *testing.T) {
	got := ParseVettingDate("29/02/2024")
	if !got.Equal(date(2024, time.February, 29)) {
		t.Errorf("expected leap day to parse, got %v", got)
	}
}
