package scheduling

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDayPattern is returned when a weekday range has an unknown endpoint.
var ErrInvalidDayPattern = errors.New("invalid day pattern")

// canonicalWeek is the Mon..Sun order ranges are resolved against.
var canonicalWeek = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

var weekdayTokens = map[string]int{
	"mon": 0, "monday": 0,
	"tue": 1, "tues": 1, "tuesday": 1,
	"wed": 2, "wednesday": 2,
	"thu": 3, "thur": 3, "thurs": 3, "thursday": 3,
	"fri": 4, "friday": 4,
	"sat": 5, "saturday": 5,
	"sun": 6, "sunday": 6,
}

// DaySet is the set of weekdays a doctor works.
type DaySet struct {
	members [7]bool
}

// Contains reports whether the weekday is part of the set.
func (d DaySet) Contains(day time.Weekday) bool {
	return d.members[day]
}

func (d *DaySet) add(day time.Weekday) {
	d.members[day] = true
}

// ParseDayPattern parses "Mon-Fri", "fri-mon", "mon, wed, friday" and mixes
// such as "mon-wed, sat". Unknown elements of a comma list, ranges included,
// are dropped. A lone range with an unknown endpoint is an error.
func ParseDayPattern(raw string) (DaySet, error) {
	var set DaySet
	pattern := strings.ToLower(strings.TrimSpace(raw))
	if pattern == "" {
		return set, nil
	}
	isList := strings.Contains(pattern, ",")

	for _, element := range strings.Split(pattern, ",") {
		element = strings.TrimSpace(element)
		if element == "" {
			continue
		}

		if strings.Contains(element, "-") {
			if err := set.addRange(element); err != nil && !isList {
				return DaySet{}, err
			}
			continue
		}

		if idx, ok := weekdayTokens[element]; ok {
			set.add(canonicalWeek[idx])
		}
	}

	return set, nil
}

func (d *DaySet) addRange(element string) error {
	bounds := strings.SplitN(element, "-", 2)
	start, okStart := weekdayTokens[strings.TrimSpace(bounds[0])]
	end, okEnd := weekdayTokens[strings.TrimSpace(bounds[1])]
	if !okStart || !okEnd {
		return fmt.Errorf("%w: %q", ErrInvalidDayPattern, element)
	}

	if end < start {
		end += 7
	}
	for i := start; i <= end; i++ {
		d.add(canonicalWeek[i%7])
	}
	return nil
}
