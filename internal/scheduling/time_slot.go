// Package scheduling turns a doctor's recurring availability into concrete
// bookable slots. Everything here is pure: no I/O, no clock.
package scheduling

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidTimeFormat is returned when a time-of-day cannot be normalized.
var ErrInvalidTimeFormat = errors.New("invalid time format")

var (
	clock24Pattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	clock12Pattern = regexp.MustCompile(`^(?i)(\d{1,2})(?::(\d{2}))?(?::(\d{2}))?\s*([ap])\.?m\.?$`)
)

// Normalize converts a textual time of day to the canonical HH:MM:SS form.
//
// Accepted shapes, tried in order: "HH:MM:SS", "HH:MM" (24-hour) and
// 12-hour clock with an AM/PM suffix ("9:00 AM", "09:30pm", "9 PM").
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	if m := clock24Pattern.FindStringSubmatch(s); m != nil {
		return canonical(m[1], m[2], m[3], raw)
	}

	if m := clock12Pattern.FindStringSubmatch(s); m != nil {
		hour, err := strconv.Atoi(m[1])
		if err != nil || hour < 1 || hour > 12 {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
		}
		// 12 AM is midnight, 12 PM is noon
		hour %= 12
		if strings.EqualFold(m[4], "p") {
			hour += 12
		}
		return canonical(strconv.Itoa(hour), m[2], m[3], raw)
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
}

func canonical(h, m, s, raw string) (string, error) {
	hour, _ := strconv.Atoi(h)
	minute, _ := strconv.Atoi(defaultZero(m))
	second, _ := strconv.Atoi(defaultZero(s))

	if hour > 23 || minute > 59 || second > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second), nil
}

func defaultZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// SecondsOfDay returns the chronological sort key of a canonical time.
func SecondsOfDay(canonicalTime string) (int, error) {
	m := clock24Pattern.FindStringSubmatch(canonicalTime)
	if m == nil || m[3] == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, canonicalTime)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	second, _ := strconv.Atoi(m[3])
	return hour*3600 + minute*60 + second, nil
}

// DisplayTime renders a canonical time for people, e.g. "9:00 AM".
func DisplayTime(canonicalTime string) string {
	secs, err := SecondsOfDay(canonicalTime)
	if err != nil {
		return canonicalTime
	}
	hour := secs / 3600
	minute := (secs % 3600) / 60

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour12, minute, suffix)
}
