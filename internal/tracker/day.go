package tracker

import (
	"sort"
	"time"

	"github.com/julianstephens/goaltrack/internal/catalog"
	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/logger"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/progress"
	"github.com/julianstephens/goaltrack/internal/timespec"
	"github.com/julianstephens/goaltrack/internal/utils"
)

// HabitItem is a habit due on the viewed day with its recorded value.
type HabitItem struct {
	models.HabitRef
	Value models.RoutineValue
	Done  bool
}

// ActivityItem is an activity listed on the viewed day.
type ActivityItem struct {
	models.ActivityRef
	Done bool
	// Overdue marks one-time items whose date is behind today.
	Overdue bool
}

// DayView is everything the daily checklist shows.
type DayView struct {
	Date       time.Time
	Habits     []HabitItem
	Activities []ActivityItem
	Stat       progress.DayStat
	Streak     int
	Reflection models.Reflection
}

// DayView builds the checklist for date.
func (s *Service) DayView(date time.Time) (DayView, error) {
	date = utils.Midnight(date)
	today := s.Today()

	settings, err := s.settings()
	if err != nil {
		return DayView{}, err
	}
	cat, err := s.store.GetCatalog()
	if err != nil {
		return DayView{}, err
	}

	// Streaks look back a year; carried-over items look back to their date.
	from := utils.AddDays(date, -(constants.StreakCap + 1))
	for _, a := range cat.AllActivities() {
		if d, err := utils.ParseDateKey(a.Date); err == nil && d.Before(from) {
			from = d
		}
	}
	days, err := s.loadDays(from, date)
	if err != nil {
		return DayView{}, err
	}
	rec, ok := days.Get(utils.DateKey(date))
	if !ok {
		rec = models.NewDayRecord(utils.DateKey(date))
	}

	view := DayView{Date: date, Reflection: rec.Reflection}

	for _, h := range cat.AllHabits() {
		if !utils.IsDueOn(h.Habit, date) {
			continue
		}
		v, present := rec.Routine[h.ID]
		view.Habits = append(view.Habits, HabitItem{
			HabitRef: h,
			Value:    v,
			Done:     progress.IsCompleted(h.Habit, v, present),
		})
	}

	for _, a := range cat.AllActivities() {
		if !utils.IsPendingOn(a.Activity, date, today, settings.PendingPolicy) {
			continue
		}
		done := rec.Planned[a.ID]
		if !done && completedBefore(a.Activity, date, days) {
			continue
		}
		view.Activities = append(view.Activities, ActivityItem{
			ActivityRef: a,
			Done:        done,
			Overdue:     utils.IsOverdue(a.Activity, today) && !done,
		})
	}
	sortActivities(view.Activities)

	habits := cat.Habits()
	view.Stat = progress.DayRate(habits, days, date)
	view.Streak = progress.Streak(habits, days, date, settings.StreakThreshold)
	return view, nil
}

// completedBefore reports whether a carried-over one-time item was already
// ticked off on some day from its date up to, not including, day.
func completedBefore(a models.Activity, day time.Time, days models.DayLookup) bool {
	if a.IsRecurring() || a.Date == "" {
		return false
	}
	start, err := utils.ParseDateKey(a.Date)
	if err != nil || !start.Before(day) {
		return false
	}
	for d := start; d.Before(day); d = utils.AddDays(d, 1) {
		if rec, ok := days.Get(utils.DateKey(d)); ok && rec.Planned[a.ID] {
			return true
		}
	}
	return false
}

// sortActivities orders open items before done ones, overdue first, then
// by priority and start time. Items without a time sort last.
func sortActivities(items []ActivityItem) {
	slot := func(a ActivityItem) int {
		if s, ok := timespec.ParseStartSlot(a.Time); ok {
			return s
		}
		return constants.SlotsPerDay
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Done != b.Done {
			return !a.Done
		}
		if a.Overdue != b.Overdue {
			return a.Overdue
		}
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		return slot(a) < slot(b)
	})
}

// ToggleHabit flips a habit on date and saves the day.
func (s *Service) ToggleHabit(date time.Time, ref string) (models.RoutineValue, error) {
	return s.mutateHabit(date, ref, func(rec *models.DayRecord, h models.Habit) (models.RoutineValue, error) {
		return catalog.ToggleHabit(rec, h), nil
	})
}

// SetHabitValue records a numeric value, clamped to the habit's bounds.
func (s *Service) SetHabitValue(date time.Time, ref string, value float64) (models.RoutineValue, error) {
	return s.mutateHabit(date, ref, func(rec *models.DayRecord, h models.Habit) (models.RoutineValue, error) {
		return catalog.SetHabitValue(rec, h, value)
	})
}

// AdjustHabitValue adds delta to a numeric habit's value.
func (s *Service) AdjustHabitValue(date time.Time, ref string, delta float64) (models.RoutineValue, error) {
	return s.mutateHabit(date, ref, func(rec *models.DayRecord, h models.Habit) (models.RoutineValue, error) {
		return catalog.AdjustHabitValue(rec, h, delta)
	})
}

func (s *Service) mutateHabit(date time.Time, ref string, fn func(*models.DayRecord, models.Habit) (models.RoutineValue, error)) (models.RoutineValue, error) {
	cat, err := s.store.GetCatalog()
	if err != nil {
		return models.RoutineValue{}, err
	}
	h, err := catalog.FindHabit(cat, ref)
	if err != nil {
		return models.RoutineValue{}, err
	}
	rec, _, err := s.dayRecord(date)
	if err != nil {
		return models.RoutineValue{}, err
	}
	v, err := fn(&rec, h.Habit)
	if err != nil {
		return models.RoutineValue{}, err
	}
	if err := s.store.SaveDayRecord(rec); err != nil {
		return models.RoutineValue{}, err
	}
	logger.Debug("Habit updated", "date", rec.Date, "habit", h.ID, "value", v.String())
	return v, nil
}

// ToggleActivity flips an activity's done mark on date.
func (s *Service) ToggleActivity(date time.Time, ref string) (bool, error) {
	cat, err := s.store.GetCatalog()
	if err != nil {
		return false, err
	}
	a, err := catalog.FindActivity(cat, ref)
	if err != nil {
		return false, err
	}
	rec, _, err := s.dayRecord(date)
	if err != nil {
		return false, err
	}
	done := catalog.ToggleActivity(&rec, a.ID)
	if err := s.store.SaveDayRecord(rec); err != nil {
		return false, err
	}
	logger.Debug("Activity updated", "date", rec.Date, "activity", a.ID, "done", done)
	return done, nil
}

// SaveReflection stores the journal for date. An empty reflection on a day
// without a record writes nothing.
func (s *Service) SaveReflection(date time.Time, r models.Reflection) error {
	rec, exists, err := s.dayRecord(date)
	if err != nil {
		return err
	}
	if !exists && r.IsEmpty() {
		return nil
	}
	rec.Reflection = r
	return s.store.SaveDayRecord(rec)
}
