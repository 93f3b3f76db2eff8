package models

// CalendarEvent is a positioned item on the weekly grid. It is derived on
// every render and never persisted.
type CalendarEvent struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	CategoryType  CategoryType `json:"categoryType"`
	Kind          string       `json:"kind"` // habit, activity or work
	StartSlot     int          `json:"startSlot"`
	DurationSlots int          `json:"durationSlots"`
	Column        int          `json:"column"`
	TotalColumns  int          `json:"totalColumns"`
}

const (
	EventKindHabit    = "habit"
	EventKindActivity = "activity"
	EventKindWork     = "work"
)
