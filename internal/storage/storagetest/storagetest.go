// Package storagetest holds the behavioral checks every storage.Provider
// backend must pass.
package storagetest

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/storage"
)

func ptr[T any](v T) *T { return &v }

// Catalog returns a small catalog covering both item kinds and every
// recurrence shape.
func Catalog() models.Catalog {
	return models.Catalog{
		RoutineCategories: []models.RoutineCategory{
			{
				ID: "routine_morning", Name: "Morning", Time: "6:00 AM", Type: models.CategoryHealth,
				Habits: []models.Habit{
					{ID: "h_water", Name: "Water", TrackingType: models.TrackingNumber, Target: ptr(8.0), Min: ptr(0.0), Max: ptr(12.0)},
					{ID: "h_stretch", Name: "Stretch", Duration: "10 min"},
				},
			},
			{
				ID: "routine_evening", Name: "Evening", Type: models.CategoryFitness,
				Habits: []models.Habit{
					{ID: "h_lift", Name: "Lift", Time: "6:30 PM", Recurrence: models.Recurrence{Type: constants.RecurrenceCustom, Days: []int{1, 3, 5}}},
				},
			},
		},
		PlannedCategories: []models.PlannedCategory{
			{
				ID: "planned_learning", Name: "Learning", Type: models.CategoryLearning,
				Activities: []models.Activity{
					{ID: "a_course", Name: "Course", Date: "2026-03-02", Priority: models.PriorityHigh},
					{ID: "a_review", Name: "Weekly review", Recurrence: models.Recurrence{Type: constants.RecurrenceWeekly, Weekday: ptr(0)}},
				},
			},
		},
	}
}

// Run exercises a freshly initialized provider returned by open.
func Run(t *testing.T, open func(t *testing.T) storage.Provider) {
	t.Run("DefaultSettings", func(t *testing.T) {
		s := open(t)
		got, err := s.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings() error = %v", err)
		}
		want := models.DefaultSettings()
		if got.StreakThreshold != want.StreakThreshold || got.ProgressWindowDays != want.ProgressWindowDays || got.PendingPolicy != want.PendingPolicy {
			t.Errorf("GetSettings() = %+v, want defaults %+v", got, want)
		}
	})

	t.Run("SettingsRoundTrip", func(t *testing.T) {
		s := open(t)
		in := models.DefaultSettings()
		in.WeekStartsOn = 1
		in.StreakThreshold = 0.5
		in.WorkBlockEnabled = true
		in.WorkDays = []int{1, 2, 3}
		in.GistID = "abc123"
		if err := s.SaveSettings(in); err != nil {
			t.Fatalf("SaveSettings() error = %v", err)
		}
		got, err := s.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings() error = %v", err)
		}
		if got.WeekStartsOn != 1 || got.StreakThreshold != 0.5 || !got.WorkBlockEnabled || got.GistID != "abc123" || len(got.WorkDays) != 3 {
			t.Errorf("GetSettings() = %+v, want %+v", got, in)
		}
	})

	t.Run("CatalogRoundTrip", func(t *testing.T) {
		s := open(t)
		if err := s.SaveCatalog(Catalog()); err != nil {
			t.Fatalf("SaveCatalog() error = %v", err)
		}
		got, err := s.GetCatalog()
		if err != nil {
			t.Fatalf("GetCatalog() error = %v", err)
		}
		if len(got.RoutineCategories) != 2 || len(got.PlannedCategories) != 1 {
			t.Fatalf("GetCatalog() categories = %d/%d, want 2/1", len(got.RoutineCategories), len(got.PlannedCategories))
		}
		if got.RoutineCategories[0].ID != "routine_morning" || got.RoutineCategories[0].Time != "6:00 AM" {
			t.Errorf("first routine category = %+v", got.RoutineCategories[0])
		}
		water := got.RoutineCategories[0].Habits[0]
		if water.ID != "h_water" || !water.IsNumeric() || water.TargetValue() != 8 {
			t.Errorf("water habit = %+v", water)
		}
		lift := got.RoutineCategories[1].Habits[0]
		if lift.Recurrence.Type != constants.RecurrenceCustom || len(lift.Recurrence.Days) != 3 {
			t.Errorf("lift recurrence = %+v", lift.Recurrence)
		}
		review := got.PlannedCategories[0].Activities[1]
		if review.Recurrence.Weekday == nil || *review.Recurrence.Weekday != 0 {
			t.Errorf("review weekday = %v, want 0", review.Recurrence.Weekday)
		}

		// Saving a shorter catalog replaces, not merges.
		short := Catalog()
		short.RoutineCategories = short.RoutineCategories[:1]
		if err := s.SaveCatalog(short); err != nil {
			t.Fatalf("SaveCatalog() error = %v", err)
		}
		got, _ = s.GetCatalog()
		if len(got.RoutineCategories) != 1 {
			t.Errorf("GetCatalog() after replace = %d routine categories, want 1", len(got.RoutineCategories))
		}
	})

	t.Run("DayRecords", func(t *testing.T) {
		s := open(t)
		if _, err := s.GetDayRecord("2026-03-01"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("GetDayRecord() on missing day error = %v, want ErrNotFound", err)
		}

		for _, day := range []string{"2026-03-03", "2026-03-01", "2026-03-02"} {
			rec := models.NewDayRecord(day)
			rec.Routine["h_stretch"] = models.BoolValue(true)
			rec.Routine["h_water"] = models.NumberValue(6.5)
			rec.Planned["a_course"] = day == "2026-03-02"
			if err := s.SaveDayRecord(rec); err != nil {
				t.Fatalf("SaveDayRecord(%s) error = %v", day, err)
			}
		}

		rec, err := s.GetDayRecord("2026-03-02")
		if err != nil {
			t.Fatalf("GetDayRecord() error = %v", err)
		}
		if v := rec.Routine["h_water"]; !v.IsNumber || v.Number != 6.5 {
			t.Errorf("water value = %+v, want number 6.5", v)
		}
		if v := rec.Routine["h_stretch"]; v.IsNumber || !v.Checked {
			t.Errorf("stretch value = %+v, want checked bool", v)
		}
		if !rec.Planned["a_course"] {
			t.Error("planned a_course = false, want true")
		}

		// Upsert overwrites.
		rec.Reflection.WentWell = "slept well"
		rec.Planned["a_course"] = false
		if err := s.SaveDayRecord(rec); err != nil {
			t.Fatalf("SaveDayRecord() error = %v", err)
		}
		rec, _ = s.GetDayRecord("2026-03-02")
		if rec.Reflection.WentWell != "slept well" || rec.Planned["a_course"] {
			t.Errorf("GetDayRecord() after update = %+v", rec)
		}

		got, err := s.GetDayRecords("2026-03-02", "2026-03-03")
		if err != nil {
			t.Fatalf("GetDayRecords() error = %v", err)
		}
		if len(got) != 2 || got[0].Date != "2026-03-02" || got[1].Date != "2026-03-03" {
			t.Errorf("GetDayRecords() = %v, want 03-02 and 03-03 in order", dates(got))
		}
		all, _ := s.GetDayRecords("", "")
		if len(all) != 3 {
			t.Errorf("GetDayRecords(open) = %d records, want 3", len(all))
		}
	})

	t.Run("ExportImport", func(t *testing.T) {
		s := open(t)
		if err := s.SaveCatalog(Catalog()); err != nil {
			t.Fatalf("SaveCatalog() error = %v", err)
		}
		rec := models.NewDayRecord("2026-03-01")
		rec.Routine["h_stretch"] = models.BoolValue(true)
		if err := s.SaveDayRecord(rec); err != nil {
			t.Fatalf("SaveDayRecord() error = %v", err)
		}

		exported, err := s.Export()
		if err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		if exported.Version != constants.DataVersion || exported.LastUpdated.IsZero() || len(exported.Days) != 1 {
			t.Errorf("Export() = version %q, updated %v, %d days", exported.Version, exported.LastUpdated, len(exported.Days))
		}

		stamp := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
		replacement := models.NewAppData()
		replacement.RoutineCategories = Catalog().RoutineCategories[1:]
		replacement.Days["2026-02-01"] = models.NewDayRecord("")
		replacement.LastUpdated = stamp
		if err := s.Import(replacement); err != nil {
			t.Fatalf("Import() error = %v", err)
		}

		got, err := s.Export()
		if err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		if !got.LastUpdated.Equal(stamp) {
			t.Errorf("LastUpdated = %v, want preserved %v", got.LastUpdated, stamp)
		}
		if len(got.RoutineCategories) != 1 || len(got.PlannedCategories) != 0 {
			t.Errorf("imported catalog = %d/%d categories, want 1/0", len(got.RoutineCategories), len(got.PlannedCategories))
		}
		if _, ok := got.Days["2026-03-01"]; ok {
			t.Error("old day record survived import")
		}
		if d, ok := got.Days["2026-02-01"]; !ok || d.Date != "2026-02-01" {
			t.Errorf("imported day = %+v, %v", d, ok)
		}
	})

	t.Run("WritesStampLastUpdated", func(t *testing.T) {
		s := open(t)
		before, _ := s.Export()
		time.Sleep(2 * time.Millisecond)
		if err := s.SaveDayRecord(models.NewDayRecord("2026-03-05")); err != nil {
			t.Fatalf("SaveDayRecord() error = %v", err)
		}
		after, _ := s.Export()
		if !after.LastUpdated.After(before.LastUpdated) {
			t.Errorf("LastUpdated %v not after %v", after.LastUpdated, before.LastUpdated)
		}
	})
}

// MalformedDate is the day a backend corrupts between SeedMalformed and
// MalformedDay.
const MalformedDate = "2026-03-02"

// MalformedRoutine is a routine column whose value is neither a boolean nor
// a number.
const MalformedRoutine = `{"h_water":"yes"}`

// SeedMalformed saves the test catalog and records for 2026-03-01,
// MalformedDate and 2026-03-03.
func SeedMalformed(t *testing.T, s storage.Provider) {
	t.Helper()
	if err := s.SaveCatalog(Catalog()); err != nil {
		t.Fatalf("SaveCatalog() error = %v", err)
	}
	for _, day := range []string{"2026-03-01", MalformedDate, "2026-03-03"} {
		rec := models.NewDayRecord(day)
		rec.Routine["h_water"] = models.NumberValue(8)
		if err := s.SaveDayRecord(rec); err != nil {
			t.Fatalf("SaveDayRecord(%s) error = %v", day, err)
		}
	}
}

// MalformedDay checks a provider seeded by SeedMalformed whose MalformedDate
// record no longer decodes: that day reads as missing and everything else
// stays readable.
func MalformedDay(t *testing.T, s storage.Provider) {
	t.Helper()

	cat, err := s.GetCatalog()
	if err != nil {
		t.Fatalf("GetCatalog() error = %v", err)
	}
	if len(cat.RoutineCategories) != 2 {
		t.Errorf("GetCatalog() = %d routine categories, want 2", len(cat.RoutineCategories))
	}

	recs, err := s.GetDayRecords("2026-03-01", "2026-03-03")
	if err != nil {
		t.Fatalf("GetDayRecords() error = %v", err)
	}
	got := dates(recs)
	if len(got) != 2 || got[0] != "2026-03-01" || got[1] != "2026-03-03" {
		t.Errorf("GetDayRecords() dates = %v, want [2026-03-01 2026-03-03]", got)
	}
	for _, rec := range recs {
		if rec.Routine["h_water"].Float() != 8 {
			t.Errorf("day %s h_water = %v, want 8", rec.Date, rec.Routine["h_water"])
		}
	}

	if _, err := s.GetDayRecord(MalformedDate); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetDayRecord(%s) error = %v, want ErrNotFound", MalformedDate, err)
	}
	if _, err := s.GetDayRecord("2026-03-01"); err != nil {
		t.Errorf("GetDayRecord(2026-03-01) error = %v", err)
	}
}

func dates(recs []models.DayRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Date
	}
	return out
}
