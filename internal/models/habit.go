package models

import "github.com/julianstephens/goaltrack/internal/constants"

type TrackingType string

const (
	TrackingBoolean TrackingType = "boolean"
	TrackingNumber  TrackingType = "number"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recurrence holds the repeat rule shared by habits and activities.
// Weekday is only meaningful for weekly rules and Days only for custom ones.
type Recurrence struct {
	Type    constants.RecurrenceType `json:"recurringType,omitempty" yaml:"recurringType,omitempty" validate:"omitempty,oneof=none daily weekly custom"`
	Weekday *int                     `json:"recurringWeekday,omitempty" yaml:"recurringWeekday,omitempty"`
	Days    []int                    `json:"recurringDays,omitempty" yaml:"recurringDays,omitempty"`
}

// Schedulable is the capability shared by habits and activities: something
// with a time label, a duration label and a recurrence rule.
type Schedulable interface {
	ItemID() string
	ItemName() string
	TimeLabel() string
	DurationLabel() string
	EffectiveRecurrence() Recurrence
	// DueDate is the one-time date (YYYY-MM-DD) or "" when unset.
	DueDate() string
}

// Habit represents a routine practice tracked every applicable day
type Habit struct {
	ID           string       `json:"id" yaml:"id" validate:"required"`
	Name         string       `json:"name" yaml:"name" validate:"required"`
	Time         string       `json:"time,omitempty" yaml:"time,omitempty"`
	Duration     string       `json:"duration,omitempty" yaml:"duration,omitempty"`
	TrackingType TrackingType `json:"trackingType,omitempty" yaml:"trackingType,omitempty" validate:"omitempty,oneof=boolean number"`
	Unit         string       `json:"unit,omitempty" yaml:"unit,omitempty"`
	Target       *float64     `json:"target,omitempty" yaml:"target,omitempty"`
	Min          *float64     `json:"min,omitempty" yaml:"min,omitempty"`
	Max          *float64     `json:"max,omitempty" yaml:"max,omitempty"`
	Recurrence   `yaml:",inline"`
}

func (h Habit) ItemID() string        { return h.ID }
func (h Habit) ItemName() string      { return h.Name }
func (h Habit) TimeLabel() string     { return h.Time }
func (h Habit) DurationLabel() string { return h.Duration }
func (h Habit) DueDate() string       { return "" }

// EffectiveRecurrence resolves the habit's rule. Habits carry no date, so an
// unset or "none" rule means every day.
func (h Habit) EffectiveRecurrence() Recurrence {
	switch h.Type {
	case constants.RecurrenceWeekly, constants.RecurrenceCustom, constants.RecurrenceDaily:
		return h.Recurrence
	}
	return Recurrence{Type: constants.RecurrenceDaily}
}

func (h Habit) IsNumeric() bool {
	return h.TrackingType == TrackingNumber
}

// TargetValue returns the numeric target, defaulting to 1.
func (h Habit) TargetValue() float64 {
	if h.Target == nil {
		return constants.DefaultNumberTarget
	}
	return *h.Target
}

// Bounds returns the clamp range for numeric entry, defaulting to [0, 100].
func (h Habit) Bounds() (float64, float64) {
	lo, hi := 0.0, float64(constants.DefaultNumberMax)
	if h.Min != nil {
		lo = *h.Min
	}
	if h.Max != nil {
		hi = *h.Max
	}
	return lo, hi
}

// Activity represents a planned task, one-time or recurring
type Activity struct {
	ID          string   `json:"id" yaml:"id" validate:"required"`
	Name        string   `json:"name" yaml:"name" validate:"required"`
	Time        string   `json:"time,omitempty" yaml:"time,omitempty"`
	Duration    string   `json:"duration,omitempty" yaml:"duration,omitempty"`
	Date        string   `json:"date,omitempty" yaml:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Priority    Priority `json:"priority,omitempty" yaml:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	// Recurring is the legacy flag from before Recurrence existed; true means daily.
	Recurring  bool `json:"recurring,omitempty" yaml:"recurring,omitempty"`
	Recurrence `yaml:",inline"`
}

func (a Activity) ItemID() string        { return a.ID }
func (a Activity) ItemName() string      { return a.Name }
func (a Activity) TimeLabel() string     { return a.Time }
func (a Activity) DurationLabel() string { return a.Duration }
func (a Activity) DueDate() string       { return a.Date }

// EffectiveRecurrence prefers the explicit rule, then the legacy flag.
func (a Activity) EffectiveRecurrence() Recurrence {
	if a.Type != "" {
		return a.Recurrence
	}
	if a.Recurring {
		return Recurrence{Type: constants.RecurrenceDaily}
	}
	return Recurrence{Type: constants.RecurrenceNone}
}

func (a Activity) IsRecurring() bool {
	return a.EffectiveRecurrence().Type != constants.RecurrenceNone
}

// Rank orders priorities high to low; unknown sorts last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}
