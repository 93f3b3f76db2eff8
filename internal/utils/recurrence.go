package utils

import (
	"slices"
	"time"

	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/models"
)

// IsDueOn reports whether an item's recurrence selects the given date. This
// is the single due-check shared by the day view, the calendar and the
// progress rates. Inconsistent rules (weekly without a weekday, custom
// without days) match nothing.
func IsDueOn(item models.Schedulable, date time.Time) bool {
	rec := item.EffectiveRecurrence()
	switch rec.Type {
	case constants.RecurrenceDaily:
		return true
	case constants.RecurrenceWeekly:
		if rec.Weekday == nil {
			return false
		}
		return int(date.Weekday()) == *rec.Weekday
	case constants.RecurrenceCustom:
		return slices.Contains(rec.Days, int(date.Weekday()))
	case constants.RecurrenceNone:
		due := item.DueDate()
		return due == "" || due == DateKey(date)
	default:
		return false
	}
}

// OccupiedWeekdays returns the weekdays a recurring item lands on in the
// repeating weekly grid, sorted. One-time items occupy none.
func OccupiedWeekdays(item models.Schedulable) []time.Weekday {
	rec := item.EffectiveRecurrence()
	switch rec.Type {
	case constants.RecurrenceDaily:
		return []time.Weekday{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		}
	case constants.RecurrenceWeekly:
		if rec.Weekday == nil || !validWeekday(*rec.Weekday) {
			return nil
		}
		return []time.Weekday{time.Weekday(*rec.Weekday)}
	case constants.RecurrenceCustom:
		var days []time.Weekday
		for _, d := range rec.Days {
			if validWeekday(d) && !slices.Contains(days, time.Weekday(d)) {
				days = append(days, time.Weekday(d))
			}
		}
		slices.Sort(days)
		return days
	default:
		return nil
	}
}

// IsPendingOn decides whether an item belongs on the list for day, given
// what "today" is. Recurring items defer to IsDueOn. One-time items follow
// the policy:
//
//	exact      undated, or dated exactly day
//	upcoming   exact, plus anything dated today or later
//	carry_over upcoming, plus overdue items on every day from their date through today
func IsPendingOn(item models.Schedulable, day, today time.Time, policy constants.PendingPolicy) bool {
	if item.EffectiveRecurrence().Type != constants.RecurrenceNone {
		return IsDueOn(item, day)
	}

	due := item.DueDate()
	dayKey := DateKey(day)
	if due == "" || due == dayKey {
		return true
	}

	todayKey := DateKey(today)
	switch policy {
	case constants.PendingExact:
		return false
	case constants.PendingUpcoming:
		return due >= todayKey
	default:
		if due >= todayKey {
			return true
		}
		return due < dayKey && dayKey <= todayKey
	}
}

// IsOverdue reports whether a one-time item's date is already behind today.
func IsOverdue(item models.Schedulable, today time.Time) bool {
	if item.EffectiveRecurrence().Type != constants.RecurrenceNone {
		return false
	}
	due := item.DueDate()
	return due != "" && due < DateKey(today)
}

// FormatRecurrence renders a recurrence rule for display.
func FormatRecurrence(rec models.Recurrence) string {
	switch rec.Type {
	case constants.RecurrenceDaily:
		return "daily"
	case constants.RecurrenceWeekly:
		if rec.Weekday == nil || !validWeekday(*rec.Weekday) {
			return "weekly (no day)"
		}
		return "weekly on " + weekdayShort[*rec.Weekday]
	case constants.RecurrenceCustom:
		if len(rec.Days) == 0 {
			return "custom (no days)"
		}
		return FormatWeekdays(rec.Days)
	default:
		return "once"
	}
}

func validWeekday(d int) bool {
	return d >= 0 && d <= 6
}
