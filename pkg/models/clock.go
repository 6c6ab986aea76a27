package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock converts a wall-clock "HH:MM" string into minutes since
// midnight. "24:00" is accepted as the exclusive end of day.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid clock value %q: want HH:MM", s)
	}

	hh, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}

	if hh < 0 || hh > 24 || mm < 0 || mm > 59 || (hh == 24 && mm != 0) {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return hh*60 + mm, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseClockInterval converts an "HH:MM" pair into a TimeInterval.
func ParseClockInterval(start, end string) (TimeInterval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return TimeInterval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeInterval{}, err
	}
	return TimeInterval{Start: s, End: e}, nil
}
