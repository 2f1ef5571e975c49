package timewindow

import (
	"errors"
	"testing"
	"time"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

func mustParse(t *testing.T, v string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, v)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", v, err)
	}
	return ts
}

func TestCurrentWeekday(t *testing.T) {
	w := New()

	tests := []struct {
		name    string
		tz      string
		instant string
		want    int
	}{
		{
			name:    "UTC Thursday is Friday in Tokyo",
			tz:      "Asia/Tokyo",
			instant: "2025-12-18T23:00:00Z",
			want:    5,
		},
		{
			name:    "same day in UTC",
			tz:      "UTC",
			instant: "2025-12-18T23:00:00Z",
			want:    4,
		},
		{
			name:    "UTC Monday is still Sunday in Los Angeles",
			tz:      "America/Los_Angeles",
			instant: "2024-01-15T03:00:00Z",
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := w.CurrentWeekday(tt.tz, mustParse(t, tt.instant))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CurrentWeekday() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentHHMM(t *testing.T) {
	w := New()

	tests := []struct {
		name    string
		tz      string
		instant string
		want    string
	}{
		{name: "tokyo evening", tz: "Asia/Tokyo", instant: "2024-01-15T12:00:00Z", want: "21:00"},
		{name: "zero padded", tz: "Asia/Tokyo", instant: "2024-01-15T00:05:30Z", want: "09:05"},
		{name: "half hour offset", tz: "Asia/Kolkata", instant: "2024-01-15T00:00:00Z", want: "05:30"},
		{name: "new york summer time", tz: "America/New_York", instant: "2024-07-01T13:00:00Z", want: "09:00"},
		{name: "new york winter time", tz: "America/New_York", instant: "2024-01-01T13:00:00Z", want: "08:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := w.CurrentHHMM(tt.tz, mustParse(t, tt.instant))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CurrentHHMM() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDayBoundaries(t *testing.T) {
	w := New()

	tests := []struct {
		name      string
		tz        string
		instant   string
		wantStart string
		wantEnd   string
	}{
		{
			name:      "tokyo day crossing UTC midnight",
			tz:        "Asia/Tokyo",
			instant:   "2025-12-18T23:00:00Z",
			wantStart: "2025-12-18T15:00:00Z",
			wantEnd:   "2025-12-19T15:00:00Z",
		},
		{
			name:      "spring forward day is 23 hours",
			tz:        "America/New_York",
			instant:   "2024-03-10T12:00:00Z",
			wantStart: "2024-03-10T05:00:00Z",
			wantEnd:   "2024-03-11T04:00:00Z",
		},
		{
			name:      "fall back day is 25 hours",
			tz:        "America/New_York",
			instant:   "2024-11-03T12:00:00Z",
			wantStart: "2024-11-03T04:00:00Z",
			wantEnd:   "2024-11-04T05:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := w.DayBoundaries(tt.tz, mustParse(t, tt.instant))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !start.Equal(mustParse(t, tt.wantStart)) {
				t.Errorf("start = %s, want %s", start.Format(time.RFC3339), tt.wantStart)
			}
			if !end.Equal(mustParse(t, tt.wantEnd)) {
				t.Errorf("end = %s, want %s", end.Format(time.RFC3339), tt.wantEnd)
			}
			if start.Location() != time.UTC || end.Location() != time.UTC {
				t.Error("boundaries should be expressed in UTC")
			}
		})
	}
}

func TestCivilDate(t *testing.T) {
	w := New()

	got, err := w.CivilDate("Asia/Tokyo", mustParse(t, "2025-12-18T23:00:00Z"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2025-12-19" {
		t.Errorf("CivilDate() = %q, want 2025-12-19", got)
	}
}

func TestInstantAt(t *testing.T) {
	w := New()

	got, err := w.InstantAt("Asia/Tokyo", mustParse(t, "2024-01-15T12:00:00Z"), 21, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := mustParse(t, "2024-01-15T12:00:00Z"); !got.Equal(want) {
		t.Errorf("InstantAt() = %s, want %s", got, want)
	}
}

func TestInvalidTimezone(t *testing.T) {
	w := New()
	now := time.Now()

	for _, tz := range []string{"", "Not/AZone", "JST+9"} {
		t.Run(tz, func(t *testing.T) {
			if _, err := w.CurrentWeekday(tz, now); !errors.Is(err, domain.ErrInvalidTimezone) {
				t.Errorf("CurrentWeekday(%q) error = %v, want ErrInvalidTimezone", tz, err)
			}
			if _, err := w.CurrentHHMM(tz, now); !errors.Is(err, domain.ErrInvalidTimezone) {
				t.Errorf("CurrentHHMM(%q) error = %v, want ErrInvalidTimezone", tz, err)
			}
			if _, _, err := w.DayBoundaries(tz, now); !errors.Is(err, domain.ErrInvalidTimezone) {
				t.Errorf("DayBoundaries(%q) error = %v, want ErrInvalidTimezone", tz, err)
			}
		})
	}
}
