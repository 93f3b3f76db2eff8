package catalog

import (
	"fmt"

	"github.com/julianstephens/goaltrack/internal/models"
)

// ToggleHabit flips a habit's mark for the day. Numeric habits toggle
// between their target and zero.
func ToggleHabit(rec *models.DayRecord, h models.Habit) models.RoutineValue {
	rec.Normalize()
	cur, ok := rec.Routine[h.ID]
	var next models.RoutineValue
	if h.IsNumeric() {
		if ok && cur.IsNumber && cur.Number >= h.TargetValue() {
			next = models.NumberValue(0)
		} else {
			next = models.NumberValue(clamp(h, h.TargetValue()))
		}
	} else {
		next = models.BoolValue(!(ok && cur.Truthy()))
	}
	rec.Routine[h.ID] = next
	return next
}

// SetHabitValue stores a numeric reading, clamped to the habit's bounds.
func SetHabitValue(rec *models.DayRecord, h models.Habit, value float64) (models.RoutineValue, error) {
	if !h.IsNumeric() {
		return models.RoutineValue{}, fmt.Errorf("%w: %s", ErrNotNumeric, h.Name)
	}
	rec.Normalize()
	v := models.NumberValue(clamp(h, value))
	rec.Routine[h.ID] = v
	return v, nil
}

// AdjustHabitValue adds delta to the current reading, clamped.
func AdjustHabitValue(rec *models.DayRecord, h models.Habit, delta float64) (models.RoutineValue, error) {
	cur := 0.0
	if v, ok := rec.Routine[h.ID]; ok {
		cur = v.Float()
	}
	return SetHabitValue(rec, h, cur+delta)
}

// ToggleActivity flips an activity's done flag for the day.
func ToggleActivity(rec *models.DayRecord, id string) bool {
	rec.Normalize()
	next := !rec.Planned[id]
	rec.Planned[id] = next
	return next
}

func clamp(h models.Habit, v float64) float64 {
	lo, hi := h.Bounds()
	return min(max(v, lo), hi)
}
