package availability

import (
	"fmt"
	"strings"
)

const minutesPerDay = 24 * 60

// ParseToMinutes converts a 24-hour "HH:MM" string to a minute of the day.
// Missing or non-numeric segments count as 0, so malformed input never fails.
func ParseToMinutes(time24 string) int {
	hour, minute := splitClock(time24)
	return hour*60 + minute
}

// To12Hour converts a 24-hour "HH:MM" string to a 12-hour display string, e.g. "13:30" -> "1:30 PM".
func To12Hour(time24 string) string {
	hour, minute := splitClock(time24)

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}

	displayHour := hour
	switch {
	case hour == 0:
		displayHour = 12
	case hour > 12:
		displayHour = hour - 12
	}

	return fmt.Sprintf("%d:%02d %s", displayHour, minute, period)
}

// FormatMinutes converts a minute of the day back to a zero-padded "HH:MM" key.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func splitClock(time24 string) (hour, minute int) {
	parts := strings.SplitN(time24, ":", 3)
	hour = leadingInt(parts[0])
	if len(parts) > 1 {
		minute = leadingInt(parts[1])
	}
	return hour, minute
}

// leadingInt reads an optionally signed run of leading digits, ignoring
// surrounding whitespace. Anything else yields 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	sign := 1
	switch s[0] {
	case '-':
		sign = -1
		s = s[1:]
	case '+':
		s = s[1:]
	}

	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		if n > minutesPerDay*60 {
			break
		}
	}
	return sign * n
}
