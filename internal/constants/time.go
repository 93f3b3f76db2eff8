package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Calendar grid: 15-minute slots from 04:00 up to midnight.
	DayStartHour = 4
	SlotMinutes  = 15
	SlotsPerHour = 60 / SlotMinutes
	SlotsPerDay  = (24 - DayStartHour) * SlotsPerHour
)
