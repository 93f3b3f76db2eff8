package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/utils"
)

// RecurrenceFlags are shared by the habit and activity commands.
type RecurrenceFlags struct {
	Recur   string `help:"Recurrence: none, daily, weekly or custom."`
	Weekday string `help:"Weekday for weekly recurrence (name or 0-6)."`
	Days    string `help:"Weekdays for custom recurrence, e.g. mon,wed,fri."`
}

// Set reports whether any recurrence flag was given.
func (f RecurrenceFlags) Set() bool {
	return f.Recur != "" || f.Weekday != "" || f.Days != ""
}

// Build turns the flags into a rule. --weekday alone implies weekly and
// --days alone implies custom.
func (f RecurrenceFlags) Build() (models.Recurrence, error) {
	typ := constants.RecurrenceType(strings.ToLower(strings.TrimSpace(f.Recur)))
	if typ == "" {
		switch {
		case f.Days != "":
			typ = constants.RecurrenceCustom
		case f.Weekday != "":
			typ = constants.RecurrenceWeekly
		}
	}

	switch typ {
	case constants.RecurrenceNone, constants.RecurrenceDaily:
		return models.Recurrence{Type: typ}, nil
	case constants.RecurrenceWeekly:
		if f.Weekday == "" {
			return models.Recurrence{}, fmt.Errorf("weekly recurrence needs --weekday")
		}
		d, err := utils.ParseWeekday(f.Weekday)
		if err != nil {
			return models.Recurrence{}, err
		}
		return models.Recurrence{Type: typ, Weekday: &d}, nil
	case constants.RecurrenceCustom:
		days, err := utils.ParseWeekdays(f.Days)
		if err != nil {
			return models.Recurrence{}, fmt.Errorf("custom recurrence needs --days: %w", err)
		}
		return models.Recurrence{Type: typ, Days: days}, nil
	}
	return models.Recurrence{}, fmt.Errorf("invalid recurrence %q (expected none, daily, weekly or custom)", f.Recur)
}

// ParseCategoryType validates a category type name.
func ParseCategoryType(s string) (models.CategoryType, error) {
	t := models.CategoryType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		names := make([]string, len(models.CategoryTypes))
		for i, ct := range models.CategoryTypes {
			names[i] = string(ct)
		}
		return "", fmt.Errorf("invalid category type %q (expected one of %s)", s, strings.Join(names, ", "))
	}
	return t, nil
}

// ParsePriority validates a priority name; empty means medium.
func ParsePriority(s string) (models.Priority, error) {
	switch p := models.Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return models.PriorityMedium, nil
	case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
		return p, nil
	}
	return "", fmt.Errorf("invalid priority %q (expected high, medium or low)", s)
}
