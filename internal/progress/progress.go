// Package progress summarizes completion records: per-day rates, streaks,
// rolling per-item rates and the struggling/strong rankings.
//
// Every function is pure over the catalog and a DayLookup snapshot. A date
// with no record is "no data": it is skipped by averages and rate
// denominators rather than counted as zero.
package progress

import (
	"math"
	"time"

	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/utils"
)

// DayStat is the routine completion for one date.
type DayStat struct {
	Date    string
	Done    int
	Total   int
	Percent int
	HasData bool
}

// IsCompleted reports whether a habit's mark counts as done. Numeric habits
// need a numeric value at or above the target; boolean habits need a truthy
// value.
func IsCompleted(h models.Habit, v models.RoutineValue, present bool) bool {
	if !present {
		return false
	}
	if h.IsNumeric() {
		return v.IsNumber && v.Number >= h.TargetValue()
	}
	return v.Truthy()
}

// Percent rounds done/total to the nearest whole percent; 0 when total is 0.
func Percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// CountCompleted returns how many habits the record marks as done.
func CountCompleted(habits []models.Habit, rec models.DayRecord) int {
	done := 0
	for _, h := range habits {
		v, ok := rec.Routine[h.ID]
		if IsCompleted(h, v, ok) {
			done++
		}
	}
	return done
}

// DayRate computes the routine completion rate for one date.
func DayRate(habits []models.Habit, days models.DayLookup, date time.Time) DayStat {
	key := utils.DateKey(date)
	stat := DayStat{Date: key, Total: len(habits)}
	rec, ok := days.Get(key)
	if !ok {
		return stat
	}
	stat.HasData = true
	stat.Done = CountCompleted(habits, rec)
	stat.Percent = Percent(stat.Done, stat.Total)
	return stat
}

// Streak counts consecutive days before today on which at least
// max(1, threshold*len(habits)) habits were completed. It stops at the first
// day without a record or below the threshold and never exceeds 365.
func Streak(habits []models.Habit, days models.DayLookup, today time.Time, threshold float64) int {
	if threshold <= 0 {
		threshold = constants.DefaultStreakThreshold
	}
	need := math.Max(1, threshold*float64(len(habits)))

	streak := 0
	check := utils.AddDays(today, -1)
	for streak < constants.StreakCap {
		rec, ok := days.Get(utils.DateKey(check))
		if !ok {
			break
		}
		if float64(CountCompleted(habits, rec)) < need {
			break
		}
		streak++
		check = utils.AddDays(check, -1)
	}
	return streak
}

// Series returns the day rates for the n days ending at end, oldest first.
func Series(habits []models.Habit, days models.DayLookup, end time.Time, n int) []DayStat {
	dates := utils.DateRange(end, n)
	out := make([]DayStat, len(dates))
	for i, d := range dates {
		out[i] = DayRate(habits, days, d)
	}
	return out
}

// MonthlySummary covers the trailing 30 days.
type MonthlySummary struct {
	Days        []DayStat
	AvgPercent  int // over days with data only
	PerfectDays int
	ActiveDays  int
}

// Monthly summarizes the 30 days ending today.
func Monthly(habits []models.Habit, days models.DayLookup, today time.Time) MonthlySummary {
	summary := MonthlySummary{Days: Series(habits, days, today, constants.MonthlyWindowDays)}
	sum := 0
	for _, d := range summary.Days {
		if !d.HasData {
			continue
		}
		summary.ActiveDays++
		sum += d.Percent
		if d.Percent == 100 {
			summary.PerfectDays++
		}
	}
	if summary.ActiveDays > 0 {
		summary.AvgPercent = int(math.Round(float64(sum) / float64(summary.ActiveDays)))
	}
	return summary
}

// WeekSummary is one Monday-start week of day rates.
type WeekSummary struct {
	Start      time.Time
	Days       []DayStat
	AvgPercent int
}

// Weekly returns the last n Monday-start weeks, oldest first, the last one
// being the week containing today. Days after today are included with no
// data so each week always has seven entries.
func Weekly(habits []models.Habit, days models.DayLookup, today time.Time, n int) []WeekSummary {
	if n <= 0 {
		n = constants.WeeklyBreakdown
	}
	current := utils.StartOfWeek(today, int(time.Monday))
	weeks := make([]WeekSummary, 0, n)
	for w := n - 1; w >= 0; w-- {
		start := utils.AddDays(current, -7*w)
		week := WeekSummary{Start: start, Days: Series(habits, days, utils.AddDays(start, 6), 7)}
		valid, sum := 0, 0
		for _, d := range week.Days {
			if d.HasData || d.Percent > 0 {
				valid++
				sum += d.Percent
			}
		}
		if valid > 0 {
			week.AvgPercent = int(math.Round(float64(sum) / float64(valid)))
		}
		weeks = append(weeks, week)
	}
	return weeks
}
