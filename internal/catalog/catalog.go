// Package catalog edits the habit/activity catalog and the per-day marks.
// Functions mutate the values they are given; persisting them is the
// caller's job.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/goaltrack/internal/models"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrNotNumeric       = errors.New("habit is not numeric")
	ErrAmbiguous        = errors.New("reference matches more than one entry")
)

const (
	PrefixHabit    = "habit"
	PrefixActivity = "activity"
	PrefixRoutine  = "routine"
	PrefixPlanned  = "planned"
)

// NewID returns a time-ordered id such as "habit_0190...". Ids are never
// reused.
func NewID(prefix string) string {
	return prefix + "_" + uuid.Must(uuid.NewV7()).String()
}

// AddRoutineCategory appends a new routine category.
func AddRoutineCategory(c *models.Catalog, name string, typ models.CategoryType, timeLabel string) (models.RoutineCategory, error) {
	if err := checkCategory(name, typ); err != nil {
		return models.RoutineCategory{}, err
	}
	cat := models.RoutineCategory{
		ID:     NewID(PrefixRoutine),
		Name:   name,
		Time:   timeLabel,
		Type:   typ,
		Habits: []models.Habit{},
	}
	c.RoutineCategories = append(c.RoutineCategories, cat)
	return cat, nil
}

// AddPlannedCategory appends a new planned category.
func AddPlannedCategory(c *models.Catalog, name string, typ models.CategoryType) (models.PlannedCategory, error) {
	if err := checkCategory(name, typ); err != nil {
		return models.PlannedCategory{}, err
	}
	cat := models.PlannedCategory{
		ID:         NewID(PrefixPlanned),
		Name:       name,
		Type:       typ,
		Activities: []models.Activity{},
	}
	c.PlannedCategories = append(c.PlannedCategories, cat)
	return cat, nil
}

func checkCategory(name string, typ models.CategoryType) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("category name is required")
	}
	if !typ.Valid() {
		return fmt.Errorf("invalid category type %q", typ)
	}
	return nil
}

// DeleteCategory removes a routine or planned category and everything in it.
func DeleteCategory(c *models.Catalog, id string) error {
	for i, cat := range c.RoutineCategories {
		if cat.ID == id {
			c.RoutineCategories = append(c.RoutineCategories[:i], c.RoutineCategories[i+1:]...)
			return nil
		}
	}
	for i, cat := range c.PlannedCategories {
		if cat.ID == id {
			c.PlannedCategories = append(c.PlannedCategories[:i], c.PlannedCategories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
}

// RoutineCategoryIndex resolves a routine category by id or by
// case-insensitive name.
func RoutineCategoryIndex(c models.Catalog, ref string) (int, error) {
	names := make([]string, len(c.RoutineCategories))
	for i, cat := range c.RoutineCategories {
		if cat.ID == ref {
			return i, nil
		}
		names[i] = cat.Name
	}
	return matchName(names, ref)
}

// PlannedCategoryIndex resolves a planned category by id or by
// case-insensitive name.
func PlannedCategoryIndex(c models.Catalog, ref string) (int, error) {
	names := make([]string, len(c.PlannedCategories))
	for i, cat := range c.PlannedCategories {
		if cat.ID == ref {
			return i, nil
		}
		names[i] = cat.Name
	}
	return matchName(names, ref)
}

func matchName(names []string, ref string) (int, error) {
	found := -1
	for i, name := range names {
		if strings.EqualFold(name, ref) {
			if found >= 0 {
				return -1, fmt.Errorf("%w: %s", ErrAmbiguous, ref)
			}
			found = i
		}
	}
	if found < 0 {
		return -1, fmt.Errorf("%w: %s", ErrCategoryNotFound, ref)
	}
	return found, nil
}

// AddHabit appends a habit to a routine category, assigning an id when the
// habit has none.
func AddHabit(c *models.Catalog, categoryRef string, h models.Habit) (models.Habit, error) {
	idx, err := RoutineCategoryIndex(*c, categoryRef)
	if err != nil {
		return models.Habit{}, err
	}
	if h.ID == "" {
		h.ID = NewID(PrefixHabit)
	}
	if h.TrackingType == "" {
		h.TrackingType = models.TrackingBoolean
	}
	c.RoutineCategories[idx].Habits = append(c.RoutineCategories[idx].Habits, h)
	return h, nil
}

// UpdateHabit replaces the habit with the same id in place.
func UpdateHabit(c *models.Catalog, h models.Habit) error {
	for i := range c.RoutineCategories {
		for j := range c.RoutineCategories[i].Habits {
			if c.RoutineCategories[i].Habits[j].ID == h.ID {
				c.RoutineCategories[i].Habits[j] = h
				return nil
			}
		}
	}
	return fmt.Errorf("%w: habit %s", ErrItemNotFound, h.ID)
}

func DeleteHabit(c *models.Catalog, id string) error {
	for i := range c.RoutineCategories {
		habits := c.RoutineCategories[i].Habits
		for j := range habits {
			if habits[j].ID == id {
				c.RoutineCategories[i].Habits = append(habits[:j], habits[j+1:]...)
				return nil
			}
		}
	}
	return fmt.Errorf("%w: habit %s", ErrItemNotFound, id)
}

// AddActivity appends an activity to a planned category, assigning an id
// when the activity has none.
func AddActivity(c *models.Catalog, categoryRef string, a models.Activity) (models.Activity, error) {
	idx, err := PlannedCategoryIndex(*c, categoryRef)
	if err != nil {
		return models.Activity{}, err
	}
	if a.ID == "" {
		a.ID = NewID(PrefixActivity)
	}
	if a.Priority == "" {
		a.Priority = models.PriorityMedium
	}
	c.PlannedCategories[idx].Activities = append(c.PlannedCategories[idx].Activities, a)
	return a, nil
}

// UpdateActivity replaces the activity with the same id in place.
func UpdateActivity(c *models.Catalog, a models.Activity) error {
	for i := range c.PlannedCategories {
		for j := range c.PlannedCategories[i].Activities {
			if c.PlannedCategories[i].Activities[j].ID == a.ID {
				c.PlannedCategories[i].Activities[j] = a
				return nil
			}
		}
	}
	return fmt.Errorf("%w: activity %s", ErrItemNotFound, a.ID)
}

func DeleteActivity(c *models.Catalog, id string) error {
	for i := range c.PlannedCategories {
		acts := c.PlannedCategories[i].Activities
		for j := range acts {
			if acts[j].ID == id {
				c.PlannedCategories[i].Activities = append(acts[:j], acts[j+1:]...)
				return nil
			}
		}
	}
	return fmt.Errorf("%w: activity %s", ErrItemNotFound, id)
}

// FindHabit resolves a habit by id or by case-insensitive name.
func FindHabit(c models.Catalog, ref string) (models.HabitRef, error) {
	if h, ok := c.FindHabit(ref); ok {
		return h, nil
	}
	var match *models.HabitRef
	for _, h := range c.AllHabits() {
		if strings.EqualFold(h.Name, ref) {
			if match != nil {
				return models.HabitRef{}, fmt.Errorf("%w: %s", ErrAmbiguous, ref)
			}
			match = &h
		}
	}
	if match == nil {
		return models.HabitRef{}, fmt.Errorf("%w: habit %s", ErrItemNotFound, ref)
	}
	return *match, nil
}

// FindActivity resolves an activity by id or by case-insensitive name.
func FindActivity(c models.Catalog, ref string) (models.ActivityRef, error) {
	if a, ok := c.FindActivity(ref); ok {
		return a, nil
	}
	var match *models.ActivityRef
	for _, a := range c.AllActivities() {
		if strings.EqualFold(a.Name, ref) {
			if match != nil {
				return models.ActivityRef{}, fmt.Errorf("%w: %s", ErrAmbiguous, ref)
			}
			match = &a
		}
	}
	if match == nil {
		return models.ActivityRef{}, fmt.Errorf("%w: activity %s", ErrItemNotFound, ref)
	}
	return *match, nil
}
