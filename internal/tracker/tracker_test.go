package tracker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/goaltrack/internal/catalog"
	"github.com/julianstephens/goaltrack/internal/gist"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/storage"
	"github.com/julianstephens/goaltrack/internal/storage/storagetest"
	"github.com/julianstephens/goaltrack/internal/utils"
)

func date(s string) time.Time {
	d, err := utils.ParseDateKey(s)
	if err != nil {
		panic(err)
	}
	return d
}

// setupService returns a service over a fresh JSON store holding the
// storagetest catalog, with today fixed at the given date.
func setupService(t *testing.T, today string) (*Service, *storage.JSONStore) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "goaltrack.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := store.SaveCatalog(storagetest.Catalog()); err != nil {
		t.Fatalf("SaveCatalog() error = %v", err)
	}
	now := date(today).Add(9 * time.Hour)
	return New(store, WithClock(func() time.Time { return now })), store
}

func habitIDs(items []HabitItem) []string {
	var ids []string
	for _, h := range items {
		ids = append(ids, h.ID)
	}
	return ids
}

func activityIDs(items []ActivityItem) []string {
	var ids []string
	for _, a := range items {
		ids = append(ids, a.ID)
	}
	return ids
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDayViewDueItems(t *testing.T) {
	svc, _ := setupService(t, "2026-03-02")

	tests := []struct {
		day        string
		habits     []string
		activities []string
	}{
		// Monday: lift is due, the course is dated today.
		{"2026-03-02", []string{"h_water", "h_stretch", "h_lift"}, []string{"a_course"}},
		// Tuesday: no lift, the course is still upcoming from today's point of view.
		{"2026-03-03", []string{"h_water", "h_stretch"}, []string{"a_course"}},
		// Sunday: the weekly review.
		{"2026-03-08", []string{"h_water", "h_stretch"}, []string{"a_course", "a_review"}},
	}

	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			view, err := svc.DayView(date(tt.day))
			if err != nil {
				t.Fatalf("DayView() error = %v", err)
			}
			if got := habitIDs(view.Habits); !equal(got, tt.habits) {
				t.Errorf("DayView() habits = %v, want %v", got, tt.habits)
			}
			if got := activityIDs(view.Activities); !equal(got, tt.activities) {
				t.Errorf("DayView() activities = %v, want %v", got, tt.activities)
			}
		})
	}
}

func TestDayViewCarryOver(t *testing.T) {
	svc, _ := setupService(t, "2026-03-04")

	view, err := svc.DayView(date("2026-03-04"))
	if err != nil {
		t.Fatalf("DayView() error = %v", err)
	}
	if len(view.Activities) != 1 || !view.Activities[0].Overdue {
		t.Fatalf("DayView() activities = %+v, want overdue a_course", view.Activities)
	}

	if _, err := svc.ToggleActivity(date("2026-03-03"), "a_course"); err != nil {
		t.Fatalf("ToggleActivity() error = %v", err)
	}
	view, err = svc.DayView(date("2026-03-04"))
	if err != nil {
		t.Fatalf("DayView() error = %v", err)
	}
	if len(view.Activities) != 0 {
		t.Errorf("DayView() activities = %v, want none once completed", activityIDs(view.Activities))
	}

	// The day it was done still lists it, checked.
	view, err = svc.DayView(date("2026-03-03"))
	if err != nil {
		t.Fatalf("DayView() error = %v", err)
	}
	if len(view.Activities) != 1 || !view.Activities[0].Done || view.Activities[0].Overdue {
		t.Errorf("DayView(03-03) activities = %+v, want a_course done", view.Activities)
	}
}

func TestHabitMutations(t *testing.T) {
	svc, store := setupService(t, "2026-03-02")
	day := date("2026-03-02")

	v, err := svc.ToggleHabit(day, "h_stretch")
	if err != nil || !v.Truthy() {
		t.Fatalf("ToggleHabit() = %v, %v, want checked", v, err)
	}
	if v, _ = svc.ToggleHabit(day, "Stretch"); v.Truthy() {
		t.Errorf("ToggleHabit() by name = %v, want unchecked", v)
	}

	if v, _ = svc.SetHabitValue(day, "h_water", 20); v.Number != 12 {
		t.Errorf("SetHabitValue(20) = %v, want clamped 12", v)
	}
	if v, _ = svc.AdjustHabitValue(day, "h_water", -5); v.Number != 7 {
		t.Errorf("AdjustHabitValue(-5) = %v, want 7", v)
	}
	if v, _ = svc.ToggleHabit(day, "h_water"); v.Number != 8 {
		t.Errorf("ToggleHabit(numeric) = %v, want target 8", v)
	}

	if _, err := svc.SetHabitValue(day, "h_stretch", 3); !errors.Is(err, catalog.ErrNotNumeric) {
		t.Errorf("SetHabitValue(boolean) error = %v, want ErrNotNumeric", err)
	}
	if _, err := svc.ToggleHabit(day, "missing"); !errors.Is(err, catalog.ErrItemNotFound) {
		t.Errorf("ToggleHabit(missing) error = %v, want ErrItemNotFound", err)
	}

	rec, err := store.GetDayRecord("2026-03-02")
	if err != nil {
		t.Fatalf("GetDayRecord() error = %v", err)
	}
	if got := rec.Routine["h_water"]; !got.IsNumber || got.Number != 8 {
		t.Errorf("stored h_water = %v, want 8", got)
	}
}

func TestDayViewStatAndStreak(t *testing.T) {
	svc, _ := setupService(t, "2026-03-05")

	for _, d := range []string{"2026-03-02", "2026-03-03", "2026-03-04"} {
		for _, h := range []string{"h_water", "h_stretch", "h_lift"} {
			if _, err := svc.ToggleHabit(date(d), h); err != nil {
				t.Fatalf("ToggleHabit() error = %v", err)
			}
		}
	}
	if _, err := svc.ToggleHabit(date("2026-03-05"), "h_stretch"); err != nil {
		t.Fatal(err)
	}

	view, err := svc.DayView(date("2026-03-05"))
	if err != nil {
		t.Fatalf("DayView() error = %v", err)
	}
	if view.Streak != 3 {
		t.Errorf("DayView() streak = %d, want 3", view.Streak)
	}
	if view.Stat.Done != 1 || view.Stat.Total != 3 || view.Stat.Percent != 33 {
		t.Errorf("DayView() stat = %+v, want 1/3", view.Stat)
	}
}

func TestSaveReflection(t *testing.T) {
	svc, store := setupService(t, "2026-03-02")

	if err := svc.SaveReflection(date("2026-03-01"), models.Reflection{}); err != nil {
		t.Fatalf("SaveReflection(empty) error = %v", err)
	}
	if _, err := store.GetDayRecord("2026-03-01"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("empty reflection created a record, err = %v", err)
	}

	r := models.Reflection{WentWell: "ran", Gratitude: "sun"}
	if err := svc.SaveReflection(date("2026-03-02"), r); err != nil {
		t.Fatalf("SaveReflection() error = %v", err)
	}
	view, err := svc.DayView(date("2026-03-02"))
	if err != nil {
		t.Fatal(err)
	}
	if view.Reflection != r {
		t.Errorf("DayView() reflection = %+v, want %+v", view.Reflection, r)
	}
}

func TestWeekAndProgress(t *testing.T) {
	svc, _ := setupService(t, "2026-03-04")

	week, err := svc.Week(date("2026-03-04"))
	if err != nil {
		t.Fatalf("Week() error = %v", err)
	}
	if got := utils.DateKey(week.Days[0].Date); got != "2026-03-01" {
		t.Errorf("Week() starts %s, want Sunday 2026-03-01", got)
	}

	if _, err := svc.ToggleHabit(date("2026-03-03"), "h_stretch"); err != nil {
		t.Fatal(err)
	}
	report, err := svc.Progress(date("2026-03-04"), 0)
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	if len(report.Habits) != 3 {
		t.Errorf("Progress() habits = %d, want 3", len(report.Habits))
	}
	if report.Today.HasData {
		t.Errorf("Progress() today = %+v, want no data", report.Today)
	}
}

func TestUpdateCatalog(t *testing.T) {
	svc, store := setupService(t, "2026-03-02")

	boom := errors.New("boom")
	err := svc.UpdateCatalog(func(c *models.Catalog) error {
		c.RoutineCategories = nil
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("UpdateCatalog() error = %v, want boom", err)
	}
	cat, _ := store.GetCatalog()
	if len(cat.RoutineCategories) != 2 {
		t.Errorf("failed update changed the catalog: %d categories", len(cat.RoutineCategories))
	}

	if err := svc.UpdateCatalog(func(c *models.Catalog) error {
		return catalog.DeleteHabit(c, "h_lift")
	}); err != nil {
		t.Fatalf("UpdateCatalog() error = %v", err)
	}
	cat, _ = store.GetCatalog()
	if _, ok := cat.FindHabit("h_lift"); ok {
		t.Error("UpdateCatalog() did not persist the deletion")
	}

	seeded, err := svc.SeedDefaults()
	if err != nil || seeded {
		t.Errorf("SeedDefaults() on a non-empty catalog = %v, %v", seeded, err)
	}
}

type fakeSyncer struct {
	gotID string
	res   gist.Result
	err   error
}

func (f *fakeSyncer) Sync(_ context.Context, local models.AppData, id string) (gist.Result, error) {
	f.gotID = id
	if f.err != nil {
		return gist.Result{}, f.err
	}
	if f.res.Direction == gist.Pushed {
		f.res.Data = local
	}
	return f.res, nil
}

func TestSync(t *testing.T) {
	t.Run("push records gist id", func(t *testing.T) {
		svc, store := setupService(t, "2026-03-02")
		before, _ := store.Export()

		f := &fakeSyncer{res: gist.Result{Direction: gist.Pushed, GistID: "g1"}}
		if _, err := svc.Sync(context.Background(), f); err != nil {
			t.Fatalf("Sync() error = %v", err)
		}
		if f.gotID != "" {
			t.Errorf("Sync() sent id %q, want empty", f.gotID)
		}
		settings, _ := store.GetSettings()
		if settings.GistID != "g1" || settings.LastSynced == "" {
			t.Errorf("settings after sync = %+v", settings)
		}
		after, _ := store.Export()
		if !after.LastUpdated.Equal(before.LastUpdated) {
			t.Errorf("Sync() moved lastUpdated %v -> %v", before.LastUpdated, after.LastUpdated)
		}
	})

	t.Run("pull replaces local", func(t *testing.T) {
		svc, store := setupService(t, "2026-03-02")
		remote := models.NewAppData()
		remote.LastUpdated = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		remote.Days = map[string]models.DayRecord{"2029-12-31": models.NewDayRecord("2029-12-31")}

		f := &fakeSyncer{res: gist.Result{Direction: gist.Pulled, GistID: "g2", Data: remote}}
		if _, err := svc.Sync(context.Background(), f); err != nil {
			t.Fatalf("Sync() error = %v", err)
		}
		cat, _ := store.GetCatalog()
		if len(cat.RoutineCategories) != 0 {
			t.Errorf("catalog after pull = %d categories, want remote's 0", len(cat.RoutineCategories))
		}
		if _, err := store.GetDayRecord("2029-12-31"); err != nil {
			t.Errorf("pulled day missing: %v", err)
		}
		data, _ := store.Export()
		if !data.LastUpdated.Equal(remote.LastUpdated) || data.Settings.GistID != "g2" {
			t.Errorf("after pull lastUpdated = %v gist = %q", data.LastUpdated, data.Settings.GistID)
		}
	})

	t.Run("remote error leaves local alone", func(t *testing.T) {
		svc, store := setupService(t, "2026-03-02")
		f := &fakeSyncer{err: gist.ErrUnauthorized}
		if _, err := svc.Sync(context.Background(), f); !errors.Is(err, gist.ErrUnauthorized) {
			t.Fatalf("Sync() error = %v, want ErrUnauthorized", err)
		}
		settings, _ := store.GetSettings()
		if settings.GistID != "" {
			t.Errorf("GistID = %q after failed sync", settings.GistID)
		}
	})
}
