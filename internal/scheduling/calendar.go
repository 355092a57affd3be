package scheduling

import (
	"fmt"
	"iter"
	"time"

	"appointment-scheduler/internal/domain/entity"
)

// Candidate is one concrete (date, time) a doctor could offer.
type Candidate struct {
	Date time.Time // midnight, in the location of the search start
	Time string    // canonical HH:MM:SS
}

// Availability is a doctor's parsed recurring pattern.
type Availability struct {
	Days    DaySet
	Slots   []string
	Skipped []string
}

// NewAvailability parses a doctor's day pattern and slot template.
// Errors are ParseErrors: the caller skips the doctor.
func NewAvailability(doctor entity.Doctor) (*Availability, error) {
	days, err := ParseDayPattern(doctor.AvailableDays)
	if err != nil {
		return nil, fmt.Errorf("doctor %d: %w", doctor.ID, err)
	}

	slots, skipped, err := ParseSlotTemplate(doctor.AvailableSlots)
	if err != nil {
		return nil, fmt.Errorf("doctor %d: %w", doctor.ID, err)
	}

	return &Availability{Days: days, Slots: slots, Skipped: skipped}, nil
}

// Window yields the doctor's candidates over horizonDays starting at start,
// ordered by date, then by template order. The sequence is lazy and can be
// ranged over any number of times.
func (a *Availability) Window(start time.Time, horizonDays int) iter.Seq[Candidate] {
	first := DateOf(start)
	return func(yield func(Candidate) bool) {
		for offset := 0; offset < horizonDays; offset++ {
			date := first.AddDate(0, 0, offset)
			if !a.Days.Contains(date.Weekday()) {
				continue
			}
			for _, slot := range a.Slots {
				if !yield(Candidate{Date: date, Time: slot}) {
					return
				}
			}
		}
	}
}

// SlotsOn returns the template slots offered on date, or false when the
// doctor does not work that weekday.
func (a *Availability) SlotsOn(date time.Time) ([]string, bool) {
	if !a.Days.Contains(date.Weekday()) {
		return nil, false
	}
	out := make([]string, len(a.Slots))
	copy(out, a.Slots)
	return out, true
}

// Offers reports whether the canonical time is in the template on date.
func (a *Availability) Offers(date time.Time, canonicalTime string) bool {
	if !a.Days.Contains(date.Weekday()) {
		return false
	}
	for _, slot := range a.Slots {
		if slot == canonicalTime {
			return true
		}
	}
	return false
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
