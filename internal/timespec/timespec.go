// Package timespec turns the free-text time and duration labels users type
// ("6:30 PM", "morning", "45 min") into 15-minute slots on the daily grid.
// Nothing here returns an error: labels that cannot be read are reported as
// unanchored or given the one-slot default.
package timespec

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/julianstephens/goaltrack/internal/constants"
)

var (
	clockPattern   = regexp.MustCompile(`\b(\d{1,2})(?::?(\d{2}))?\s*(am|pm)?\b`)
	minutesPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*min`)
	hoursPattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:hours?|hrs?)\b`)
	// rangeEnd matches the rest of a range such as "7-8 PM" after its start.
	rangeEnd = regexp.MustCompile(`^\s*(?:-|–|to)\s*(\d{1,2})(?::?\d{2})?\s*(am|pm)\b`)
)

// keywordSlots are checked in order before the clock pattern.
var keywordSlots = []struct {
	keyword string
	hour    int
}{
	{"am commute", 8},
	{"pm commute", 18},
	{"morning", 7},
	{"afternoon", 14},
	{"evening", 19},
}

// ParseStartSlot returns the slot a time label starts at. The second result
// is false when the label is unanchored: all-day items, unreadable text or
// times before the grid starts.
func ParseStartSlot(label string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(label))
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, "all day") || strings.Contains(s, "throughout") {
		return 0, false
	}
	for _, k := range keywordSlots {
		if strings.Contains(s, k.keyword) {
			return SlotAt(k.hour, 0)
		}
	}

	idx := clockPattern.FindStringSubmatchIndex(s)
	if idx == nil {
		return 0, false
	}
	m := make([]string, 4)
	for i := range m {
		if idx[2*i] >= 0 {
			m[i] = s[idx[2*i]:idx[2*i+1]]
		}
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	if m[3] == "" {
		m[3] = rangeMarker(hour, s[idx[1]:])
	}
	minute := 0
	if m[2] != "" {
		if minute, err = strconv.Atoi(m[2]); err != nil {
			return 0, false
		}
	}
	if minute > 59 {
		return 0, false
	}

	switch m[3] {
	case "pm":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
	default:
		if hour > 23 {
			return 0, false
		}
	}
	return SlotAt(hour, minute)
}

// rangeMarker returns the AM/PM marker written after a range's end so an
// unmarked start reads on the same side of noon. A PM range whose start is
// past its end ("11-1 PM") or that ends at noon starts in the morning.
func rangeMarker(start int, tail string) string {
	r := rangeEnd.FindStringSubmatch(tail)
	if r == nil {
		return ""
	}
	end, err := strconv.Atoi(r[1])
	if err != nil {
		return ""
	}
	if r[2] == "pm" && start != 12 && (start > end || end == 12) {
		return "am"
	}
	return r[2]
}

// SlotAt converts a 24-hour wall-clock time to a slot index. Times before
// the grid starts are not representable.
func SlotAt(hour, minute int) (int, bool) {
	slot := (hour-constants.DayStartHour)*constants.SlotsPerHour + minute/constants.SlotMinutes
	if slot < 0 {
		return 0, false
	}
	return slot, true
}

// ParseClock reads an "HH:MM" setting value into a slot.
func ParseClock(value string) (int, bool) {
	var hour, minute int
	if _, err := fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return 0, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}
	return SlotAt(hour, minute)
}

// ParseDurationSlots returns how many slots a duration label spans, never
// less than one. "1 hour 30 min" style labels are summed before rounding up.
func ParseDurationSlots(label string) int {
	s := strings.ToLower(strings.TrimSpace(label))
	if s == "" {
		return 1
	}

	hm := hoursPattern.FindStringSubmatch(s)
	mm := minutesPattern.FindStringSubmatch(s)

	var slots int
	switch {
	case hm != nil && mm != nil:
		hours, _ := strconv.ParseFloat(hm[1], 64)
		mins, _ := strconv.ParseFloat(mm[1], 64)
		slots = int(math.Ceil((hours*60 + mins) / constants.SlotMinutes))
	case mm != nil:
		mins, _ := strconv.ParseFloat(mm[1], 64)
		slots = int(math.Ceil(mins / constants.SlotMinutes))
	case hm != nil:
		hours, _ := strconv.ParseFloat(hm[1], 64)
		slots = int(math.Round(hours * constants.SlotsPerHour))
	default:
		return 1
	}
	return max(slots, 1)
}

// SlotTime returns the wall-clock hour and minute a slot starts at.
func SlotTime(slot int) (int, int) {
	total := constants.DayStartHour*60 + slot*constants.SlotMinutes
	return (total / 60) % 24, total % 60
}

// FormatSlot renders a slot as a 12-hour clock label, e.g. "6:30 PM".
func FormatSlot(slot int) string {
	hour, minute := SlotTime(slot)
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, minute, suffix)
}
