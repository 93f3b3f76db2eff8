package models

type CategoryType string

const (
	CategorySpiritual CategoryType = "spiritual"
	CategoryHealth    CategoryType = "health"
	CategoryFitness   CategoryType = "fitness"
	CategoryLearning  CategoryType = "learning"
	CategoryCareer    CategoryType = "career"
	CategoryFinance   CategoryType = "finance"
	CategoryFamily    CategoryType = "family"
	CategoryOther     CategoryType = "other"
)

// CategoryTypes lists every category domain in display order.
var CategoryTypes = []CategoryType{
	CategorySpiritual,
	CategoryHealth,
	CategoryFitness,
	CategoryLearning,
	CategoryCareer,
	CategoryFinance,
	CategoryFamily,
	CategoryOther,
}

func (c CategoryType) Valid() bool {
	for _, t := range CategoryTypes {
		if t == c {
			return true
		}
	}
	return false
}

// RoutineCategory groups habits; list order is display order.
type RoutineCategory struct {
	ID     string       `json:"id" yaml:"id" validate:"required"`
	Name   string       `json:"name" yaml:"name" validate:"required"`
	Time   string       `json:"time,omitempty" yaml:"time,omitempty"`
	Type   CategoryType `json:"type" yaml:"type" validate:"required,category_type"`
	Habits []Habit      `json:"habits" yaml:"habits" validate:"dive"`
}

// PlannedCategory groups activities; list order is display order.
type PlannedCategory struct {
	ID         string       `json:"id" yaml:"id" validate:"required"`
	Name       string       `json:"name" yaml:"name" validate:"required"`
	Type       CategoryType `json:"type" yaml:"type" validate:"required,category_type"`
	Activities []Activity   `json:"activities" yaml:"activities" validate:"dive"`
}

// Catalog is the full set of user-defined categories.
type Catalog struct {
	RoutineCategories []RoutineCategory `json:"routineCategories" yaml:"routineCategories" validate:"dive"`
	PlannedCategories []PlannedCategory `json:"plannedCategories" yaml:"plannedCategories" validate:"dive"`
}

// HabitRef is a habit together with its owning category.
type HabitRef struct {
	Habit
	CategoryID   string
	CategoryName string
	CategoryType CategoryType
}

// ActivityRef is an activity together with its owning category.
type ActivityRef struct {
	Activity
	CategoryID   string
	CategoryName string
	CategoryType CategoryType
}

// AllHabits flattens the routine categories in catalog order.
func (c Catalog) AllHabits() []HabitRef {
	var out []HabitRef
	for _, cat := range c.RoutineCategories {
		for _, h := range cat.Habits {
			out = append(out, HabitRef{Habit: h, CategoryID: cat.ID, CategoryName: cat.Name, CategoryType: cat.Type})
		}
	}
	return out
}

// AllActivities flattens the planned categories in catalog order.
func (c Catalog) AllActivities() []ActivityRef {
	var out []ActivityRef
	for _, cat := range c.PlannedCategories {
		for _, a := range cat.Activities {
			out = append(out, ActivityRef{Activity: a, CategoryID: cat.ID, CategoryName: cat.Name, CategoryType: cat.Type})
		}
	}
	return out
}

// Habits returns the bare habits in catalog order.
func (c Catalog) Habits() []Habit {
	var out []Habit
	for _, cat := range c.RoutineCategories {
		out = append(out, cat.Habits...)
	}
	return out
}

func (c Catalog) FindHabit(id string) (HabitRef, bool) {
	for _, h := range c.AllHabits() {
		if h.ID == id {
			return h, true
		}
	}
	return HabitRef{}, false
}

func (c Catalog) FindActivity(id string) (ActivityRef, bool) {
	for _, a := range c.AllActivities() {
		if a.ID == id {
			return a, true
		}
	}
	return ActivityRef{}, false
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (c Catalog) Clone() Catalog {
	out := Catalog{
		RoutineCategories: make([]RoutineCategory, len(c.RoutineCategories)),
		PlannedCategories: make([]PlannedCategory, len(c.PlannedCategories)),
	}
	for i, cat := range c.RoutineCategories {
		cat.Habits = append([]Habit(nil), cat.Habits...)
		out.RoutineCategories[i] = cat
	}
	for i, cat := range c.PlannedCategories {
		cat.Activities = append([]Activity(nil), cat.Activities...)
		out.PlannedCategories[i] = cat
	}
	return out
}
