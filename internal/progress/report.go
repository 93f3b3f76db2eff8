package progress

import (
	"time"

	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/models"
)

// Options carry the tunable parts of the aggregation.
type Options struct {
	StreakThreshold         float64
	WindowDays              int
	HabitsRespectRecurrence bool
}

func OptionsFromSettings(s models.Settings) Options {
	return Options{
		StreakThreshold:         s.StreakThreshold,
		WindowDays:              s.ProgressWindowDays,
		HabitsRespectRecurrence: s.HabitsRespectRecurrence,
	}
}

// Report bundles everything the progress views show.
type Report struct {
	Today           DayStat
	Streak          int
	Monthly         MonthlySummary
	Weeks           []WeekSummary
	Habits          []ItemRate
	HabitRanking    Ranking
	Activities      []ItemRate
	ActivityRanking Ranking
	Categories      []CategoryRate
}

// Summarize computes the full report as of today.
func Summarize(catalog models.Catalog, days models.DayLookup, today time.Time, opts Options) Report {
	habits := catalog.Habits()
	habitRates := HabitRates(catalog, days, today, opts.WindowDays, opts.HabitsRespectRecurrence)
	activityRates := ActivityRates(catalog, days, today, opts.WindowDays)

	return Report{
		Today:           DayRate(habits, days, today),
		Streak:          Streak(habits, days, today, opts.StreakThreshold),
		Monthly:         Monthly(habits, days, today),
		Weeks:           Weekly(habits, days, today, constants.WeeklyBreakdown),
		Habits:          habitRates,
		HabitRanking:    Rank(habitRates),
		Activities:      activityRates,
		ActivityRanking: Rank(activityRates),
		Categories:      CategoryRates(catalog, days, today, opts.WindowDays),
	}
}

// LookbackDays is how many days before today Summarize may read, so callers
// can load just that range from storage. The current week may also read up
// to six days after today.
func LookbackDays(opts Options) int {
	return max(constants.StreakCap+1, constants.WeeklyBreakdown*7, windowOrDefault(opts.WindowDays))
}
