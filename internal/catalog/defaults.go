package catalog

import (
	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/models"
)

func ptr[T any](v T) *T { return &v }

// DefaultCatalog is the starter catalog written by init.
func DefaultCatalog() models.Catalog {
	return models.Catalog{
		RoutineCategories: []models.RoutineCategory{
			{
				ID:   "routine_morning",
				Name: "Morning",
				Time: "6:00 - 7:30 AM",
				Type: models.CategorySpiritual,
				Habits: []models.Habit{
					{ID: "habit_meditate", Name: "Meditate", Time: "6:00 AM", Duration: "20 min", TrackingType: models.TrackingBoolean},
					{ID: "habit_journal", Name: "Journal", Time: "6:30 AM", Duration: "15 min", TrackingType: models.TrackingBoolean},
					{ID: "habit_breakfast", Name: "Healthy breakfast", Time: "7:00 AM", Duration: "30 min", TrackingType: models.TrackingBoolean},
				},
			},
			{
				ID:   "routine_health",
				Name: "All day",
				Time: "Throughout day",
				Type: models.CategoryHealth,
				Habits: []models.Habit{
					{ID: "habit_water", Name: "Water", Time: "All day", TrackingType: models.TrackingNumber, Unit: "glasses", Target: ptr(8.0), Min: ptr(0.0), Max: ptr(16.0)},
					{ID: "habit_steps", Name: "Steps", Time: "All day", TrackingType: models.TrackingNumber, Unit: "k steps", Target: ptr(6.0), Max: ptr(30.0)},
				},
			},
			{
				ID:   "routine_evening",
				Name: "Evening",
				Time: "6:30 - 10:00 PM",
				Type: models.CategoryFitness,
				Habits: []models.Habit{
					{
						ID: "habit_workout", Name: "Workout", Time: "6:30 PM", Duration: "45 min", TrackingType: models.TrackingBoolean,
						Recurrence: models.Recurrence{Type: constants.RecurrenceCustom, Days: []int{1, 3, 5}},
					},
					{ID: "habit_sleep", Name: "Lights out by 10", Time: "10:00 PM", Duration: "8 hrs", TrackingType: models.TrackingBoolean},
				},
			},
		},
		PlannedCategories: []models.PlannedCategory{
			{
				ID:   "planned_learning",
				Name: "Learning",
				Type: models.CategoryLearning,
				Activities: []models.Activity{
					{ID: "activity_course", Name: "Online course", Time: "AM commute", Duration: "30 min", Priority: models.PriorityHigh, Recurring: true},
					{ID: "activity_reading", Name: "Book reading", Time: "8:45 PM", Duration: "20 min", Priority: models.PriorityMedium, Recurring: true},
				},
			},
			{
				ID:   "planned_finance",
				Name: "Finance",
				Type: models.CategoryFinance,
				Activities: []models.Activity{
					{
						ID: "activity_budget", Name: "Review budget", Time: "9:00 AM", Duration: "30 min", Priority: models.PriorityMedium,
						Recurrence: models.Recurrence{Type: constants.RecurrenceWeekly, Weekday: ptr(0)},
					},
				},
			},
			{
				ID:   "planned_family",
				Name: "Family",
				Type: models.CategoryFamily,
				Activities: []models.Activity{
					{
						ID: "activity_call", Name: "Call family", Time: "pm commute", Duration: "20 min", Priority: models.PriorityLow,
						Recurrence: models.Recurrence{Type: constants.RecurrenceCustom, Days: []int{2, 4}},
					},
				},
			},
		},
	}
}
