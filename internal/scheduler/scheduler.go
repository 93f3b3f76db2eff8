package scheduler

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/layout"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/timespec"
	"github.com/julianstephens/goaltrack/internal/utils"
)

// Scheduler composes calendar views from the catalog. It holds no state, so
// every call recomputes from its inputs.
type Scheduler struct{}

func New() *Scheduler {
	return &Scheduler{}
}

// WorkBlock is a fixed block drawn on work days, e.g. 09:00-18:15 Mon-Fri.
type WorkBlock struct {
	StartSlot int
	EndSlot   int
	Days      []int
}

// Options tune calendar composition.
type Options struct {
	WorkBlock *WorkBlock
}

// DayCalendar is one column of the calendar: positioned events plus the
// items that have no fixed time.
type DayCalendar struct {
	Date   time.Time
	Events []models.CalendarEvent
	AllDay []models.CalendarEvent
}

// WeekCalendar holds seven consecutive days starting at Start.
type WeekCalendar struct {
	Start time.Time
	Days  []DayCalendar
}

type entry struct {
	id           string
	name         string
	kind         string
	categoryType models.CategoryType
	timeLabel    string
	duration     string
}

// OptionsFromSettings builds calendar options from persisted settings.
func OptionsFromSettings(settings models.Settings) (Options, error) {
	if !settings.WorkBlockEnabled {
		return Options{}, nil
	}
	start, ok := timespec.ParseClock(settings.WorkStart)
	if !ok {
		return Options{}, fmt.Errorf("invalid work start time %q", settings.WorkStart)
	}
	end, ok := timespec.ParseClock(settings.WorkEnd)
	if !ok {
		return Options{}, fmt.Errorf("invalid work end time %q", settings.WorkEnd)
	}
	if end <= start {
		return Options{}, fmt.Errorf("work end %s must be after work start %s", settings.WorkEnd, settings.WorkStart)
	}
	return Options{WorkBlock: &WorkBlock{StartSlot: start, EndSlot: end, Days: settings.WorkDays}}, nil
}

// Week lays out the repeating weekly grid. Each day gets the habits and
// recurring activities whose rule lands on its weekday; one-time activities
// are not part of the repeating grid.
func (s *Scheduler) Week(catalog models.Catalog, weekStart time.Time, opts Options) WeekCalendar {
	week := WeekCalendar{Start: weekStart, Days: make([]DayCalendar, 0, 7)}
	for i := 0; i < 7; i++ {
		date := utils.AddDays(weekStart, i)
		wd := date.Weekday()
		var entries []entry
		for _, h := range catalog.AllHabits() {
			if slices.Contains(utils.OccupiedWeekdays(h.Habit), wd) {
				entries = append(entries, habitEntry(h, catalog))
			}
		}
		for _, a := range catalog.AllActivities() {
			if slices.Contains(utils.OccupiedWeekdays(a.Activity), wd) {
				entries = append(entries, activityEntry(a))
			}
		}
		week.Days = append(week.Days, s.compose(date, entries, opts))
	}
	return week
}

// Day lays out a single date using the due check, so one-time activities
// dated on it (or undated) appear alongside the recurring items.
func (s *Scheduler) Day(catalog models.Catalog, date time.Time, opts Options) DayCalendar {
	var entries []entry
	for _, h := range catalog.AllHabits() {
		if utils.IsDueOn(h.Habit, date) {
			entries = append(entries, habitEntry(h, catalog))
		}
	}
	for _, a := range catalog.AllActivities() {
		if utils.IsDueOn(a.Activity, date) {
			entries = append(entries, activityEntry(a))
		}
	}
	return s.compose(date, entries, opts)
}

func (s *Scheduler) compose(date time.Time, entries []entry, opts Options) DayCalendar {
	day := DayCalendar{Date: date}

	if wb := opts.WorkBlock; wb != nil && slices.Contains(wb.Days, int(date.Weekday())) {
		entries = append(entries, entry{
			id:           "work",
			name:         "Work",
			kind:         models.EventKindWork,
			categoryType: models.CategoryCareer,
			timeLabel:    slotLabel(wb.StartSlot),
			duration:     fmt.Sprintf("%d min", (wb.EndSlot-wb.StartSlot)*constants.SlotMinutes),
		})
	}

	var intervals []layout.Interval
	byKey := make(map[string]models.CalendarEvent)
	for i, e := range entries {
		ev := models.CalendarEvent{
			ID:           e.id,
			Name:         e.name,
			CategoryType: e.categoryType,
			Kind:         e.kind,
		}
		start, ok := timespec.ParseStartSlot(e.timeLabel)
		if !ok {
			day.AllDay = append(day.AllDay, ev)
			continue
		}
		ev.StartSlot = start
		ev.DurationSlots = min(timespec.ParseDurationSlots(e.duration), max(constants.SlotsPerDay-start, 1))

		// Duplicate ids are a catalog error; the index keeps them apart here.
		key := e.id + "\x00" + strconv.Itoa(i)
		byKey[key] = ev
		intervals = append(intervals, layout.Interval{ID: key, Start: ev.StartSlot, Length: ev.DurationSlots})
	}

	for _, p := range layout.Assign(intervals) {
		ev := byKey[p.ID]
		ev.Column = p.Column
		ev.TotalColumns = p.TotalColumns
		day.Events = append(day.Events, ev)
	}
	return day
}

// habitEntry falls back to the category's time when the habit has none.
func habitEntry(h models.HabitRef, catalog models.Catalog) entry {
	timeLabel := h.Time
	if strings.TrimSpace(timeLabel) == "" {
		for _, cat := range catalog.RoutineCategories {
			if cat.ID == h.CategoryID {
				timeLabel = cat.Time
				break
			}
		}
	}
	return entry{
		id:           h.ID,
		name:         h.Name,
		kind:         models.EventKindHabit,
		categoryType: h.CategoryType,
		timeLabel:    timeLabel,
		duration:     h.Duration,
	}
}

func activityEntry(a models.ActivityRef) entry {
	return entry{
		id:           a.ID,
		name:         a.Name,
		kind:         models.EventKindActivity,
		categoryType: a.CategoryType,
		timeLabel:    a.Time,
		duration:     a.Duration,
	}
}

func slotLabel(slot int) string {
	h, m := timespec.SlotTime(slot)
	return fmt.Sprintf("%02d:%02d", h, m)
}
