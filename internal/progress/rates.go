package progress

import (
	"cmp"
	"slices"
	"time"

	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/utils"
)

// ItemRate is a habit's or activity's completion over a trailing window.
type ItemRate struct {
	ID             string
	Name           string
	Category       string
	CategoryType   models.CategoryType
	RecurrenceType constants.RecurrenceType
	Completed      int
	Tracked        int
	Rate           int
}

// CategoryRate is the pooled completion of every habit in a routine category.
type CategoryRate struct {
	ID        string
	Name      string
	Type      models.CategoryType
	Completed int
	Possible  int
	Rate      int
}

// Ranking splits item rates into the weakest and strongest performers.
type Ranking struct {
	Struggling []ItemRate
	Strong     []ItemRate
}

// HabitRates computes each habit's rate over the window days ending at
// today. A day counts toward a habit when it has a record; with
// respectRecurrence the habit must also be due that day.
func HabitRates(catalog models.Catalog, days models.DayLookup, today time.Time, window int, respectRecurrence bool) []ItemRate {
	dates := utils.DateRange(today, windowOrDefault(window))
	habits := catalog.AllHabits()
	out := make([]ItemRate, 0, len(habits))
	for _, h := range habits {
		r := ItemRate{
			ID:             h.ID,
			Name:           h.Name,
			Category:       h.CategoryName,
			CategoryType:   h.CategoryType,
			RecurrenceType: h.EffectiveRecurrence().Type,
		}
		for _, d := range dates {
			rec, ok := days.Get(utils.DateKey(d))
			if !ok {
				continue
			}
			if respectRecurrence && !utils.IsDueOn(h.Habit, d) {
				continue
			}
			r.Tracked++
			v, present := rec.Routine[h.ID]
			if IsCompleted(h.Habit, v, present) {
				r.Completed++
			}
		}
		r.Rate = Percent(r.Completed, r.Tracked)
		out = append(out, r)
	}
	return out
}

// ActivityRates computes rates for recurring activities only. A day counts
// when it has a record and the activity is due on it.
func ActivityRates(catalog models.Catalog, days models.DayLookup, today time.Time, window int) []ItemRate {
	dates := utils.DateRange(today, windowOrDefault(window))
	var out []ItemRate
	for _, a := range catalog.AllActivities() {
		if !a.IsRecurring() {
			continue
		}
		r := ItemRate{
			ID:             a.ID,
			Name:           a.Name,
			Category:       a.CategoryName,
			CategoryType:   a.CategoryType,
			RecurrenceType: a.EffectiveRecurrence().Type,
		}
		for _, d := range dates {
			rec, ok := days.Get(utils.DateKey(d))
			if !ok || !utils.IsDueOn(a.Activity, d) {
				continue
			}
			r.Tracked++
			if rec.Planned[a.ID] {
				r.Completed++
			}
		}
		r.Rate = Percent(r.Completed, r.Tracked)
		out = append(out, r)
	}
	return out
}

// CategoryRates pools habit completion per routine category over recorded
// days in the window, weakest first.
func CategoryRates(catalog models.Catalog, days models.DayLookup, today time.Time, window int) []CategoryRate {
	dates := utils.DateRange(today, windowOrDefault(window))
	out := make([]CategoryRate, 0, len(catalog.RoutineCategories))
	for _, cat := range catalog.RoutineCategories {
		cr := CategoryRate{ID: cat.ID, Name: cat.Name, Type: cat.Type}
		for _, d := range dates {
			rec, ok := days.Get(utils.DateKey(d))
			if !ok {
				continue
			}
			for _, h := range cat.Habits {
				cr.Possible++
				v, present := rec.Routine[h.ID]
				if IsCompleted(h, v, present) {
					cr.Completed++
				}
			}
		}
		cr.Rate = Percent(cr.Completed, cr.Possible)
		out = append(out, cr)
	}
	slices.SortStableFunc(out, func(a, b CategoryRate) int {
		return cmp.Compare(a.Rate, b.Rate)
	})
	return out
}

// Rank picks up to five struggling items (rate below 50, weakest first) and
// up to five strong ones (rate 80 or more, strongest first). Items never
// tracked are left out. Ties in both lists keep catalog order, so when more
// than five strong items share a rate the earliest in the catalog are kept.
func Rank(rates []ItemRate) Ranking {
	var ranking Ranking
	for _, r := range rates {
		if r.Tracked == 0 {
			continue
		}
		if r.Rate < constants.StrugglingBelow {
			ranking.Struggling = append(ranking.Struggling, r)
		}
		if r.Rate >= constants.StrongAtOrAbove {
			ranking.Strong = append(ranking.Strong, r)
		}
	}
	slices.SortStableFunc(ranking.Struggling, func(a, b ItemRate) int {
		return cmp.Compare(a.Rate, b.Rate)
	})
	slices.SortStableFunc(ranking.Strong, func(a, b ItemRate) int {
		return cmp.Compare(b.Rate, a.Rate)
	})
	if len(ranking.Struggling) > constants.RankLimit {
		ranking.Struggling = ranking.Struggling[:constants.RankLimit]
	}
	if len(ranking.Strong) > constants.RankLimit {
		ranking.Strong = ranking.Strong[:constants.RankLimit]
	}
	return ranking
}

func windowOrDefault(window int) int {
	if window <= 0 {
		return constants.DefaultProgressWindowDays
	}
	return window
}
