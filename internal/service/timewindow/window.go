// Package timewindow converts between UTC instants and civil time in a user's timezone.
package timewindow

import (
	"fmt"
	"sync"
	"time"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

const hhmmLayout = "15:04"

// Window resolves IANA timezone identifiers and caches the loaded locations.
// Every method uses the zone offset in effect at the given instant.
type Window struct {
	locations sync.Map
}

func New() *Window {
	return &Window{}
}

func (w *Window) Location(tz string) (*time.Location, error) {
	if cached, ok := w.locations.Load(tz); ok {
		return cached.(*time.Location), nil
	}

	// time.LoadLocation maps "" to UTC; a user value must name a zone.
	if tz == "" {
		return nil, fmt.Errorf("%w: empty identifier", domain.ErrInvalidTimezone)
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTimezone, tz)
	}

	w.locations.Store(tz, loc)
	return loc, nil
}

// CurrentWeekday returns 0 (Sunday) through 6 for the civil date of instant in tz.
func (w *Window) CurrentWeekday(tz string, instant time.Time) (int, error) {
	loc, err := w.Location(tz)
	if err != nil {
		return 0, err
	}
	return int(instant.In(loc).Weekday()), nil
}

// CurrentHHMM returns the zero-padded wall-clock time of instant in tz.
func (w *Window) CurrentHHMM(tz string, instant time.Time) (string, error) {
	loc, err := w.Location(tz)
	if err != nil {
		return "", err
	}
	return instant.In(loc).Format(hhmmLayout), nil
}

// DayBoundaries returns the half-open UTC interval [start, end) covering the civil day of
// instant in tz. The interval is 23 or 25 hours long on daylight-saving transition days.
func (w *Window) DayBoundaries(tz string, instant time.Time) (time.Time, time.Time, error) {
	loc, err := w.Location(tz)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	local := instant.In(loc)
	y, m, d := local.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := time.Date(y, m, d+1, 0, 0, 0, 0, loc)

	return start.UTC(), end.UTC(), nil
}

// CivilDate formats the calendar date of instant in tz.
func (w *Window) CivilDate(tz string, instant time.Time) (string, error) {
	loc, err := w.Location(tz)
	if err != nil {
		return "", err
	}
	return instant.In(loc).Format(domain.CivilDateLayout), nil
}

// InstantAt returns the instant at which the clock in tz shows hour:minute on the civil date
// of reference. A wall time skipped by a daylight-saving jump resolves forward.
func (w *Window) InstantAt(tz string, reference time.Time, hour, minute int) (time.Time, error) {
	loc, err := w.Location(tz)
	if err != nil {
		return time.Time{}, err
	}

	y, m, d := reference.In(loc).Date()
	return time.Date(y, m, d, hour, minute, 0, 0, loc).UTC(), nil
}
