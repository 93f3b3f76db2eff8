package utils

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/goaltrack/internal/constants"
)

var weekdayShort = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DateKey formats a date as the YYYY-MM-DD key used for day records.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDateKey parses a YYYY-MM-DD key as local midnight.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(constants.DateFormat, key, time.Local)
}

// Midnight truncates t to the start of its local calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays moves a date by whole calendar days, stable across DST changes.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// StartOfWeek returns the first day of the week containing t, where
// weekStartsOn is 0 for Sunday through 6 for Saturday.
func StartOfWeek(t time.Time, weekStartsOn int) time.Time {
	t = Midnight(t)
	diff := (int(t.Weekday()) - weekStartsOn + 7) % 7
	return AddDays(t, -diff)
}

// DateRange returns n consecutive days ending at end (inclusive), oldest first.
func DateRange(end time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	days := make([]time.Time, n)
	for i := 0; i < n; i++ {
		days[i] = AddDays(end, i-n+1)
	}
	return days
}

// ParseWeekdays parses a comma-separated list of weekday names or numbers
// ("mon,wed,5") into sorted weekday numbers.
func ParseWeekdays(input string) ([]int, error) {
	seen := make(map[int]bool)
	var days []int
	for _, part := range strings.Split(input, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		d, err := parseWeekday(part)
		if err != nil {
			return nil, err
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no weekdays given")
	}
	slices.Sort(days)
	return days, nil
}

// ParseWeekday parses a single weekday name or number.
func ParseWeekday(input string) (int, error) {
	return parseWeekday(strings.ToLower(strings.TrimSpace(input)))
}

func parseWeekday(s string) (int, error) {
	if len(s) == 1 && s[0] >= '0' && s[0] <= '6' {
		return int(s[0] - '0'), nil
	}
	for i, name := range weekdayShort {
		short := strings.ToLower(name)
		full := strings.ToLower(time.Weekday(i).String())
		if s == short || s == full {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

// FormatWeekdays renders weekday numbers as "Mon, Wed".
func FormatWeekdays(days []int) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		if validWeekday(d) {
			names = append(names, weekdayShort[d])
		}
	}
	return strings.Join(names, ", ")
}

// WeekdayShort returns the three-letter name of a weekday.
func WeekdayShort(d time.Weekday) string {
	return weekdayShort[d]
}
