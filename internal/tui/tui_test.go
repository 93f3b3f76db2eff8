package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/storage"
	"github.com/julianstephens/goaltrack/internal/storage/storagetest"
	"github.com/julianstephens/goaltrack/internal/tracker"
	"github.com/julianstephens/goaltrack/internal/tui/components/daylist"
)

type noopMsg struct{}

// setupModel seeds the test catalog with a clock at 2026-03-04, a Wednesday.
func setupModel(t *testing.T, seed bool) Model {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "goaltrack.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if seed {
		if err := store.SaveCatalog(storagetest.Catalog()); err != nil {
			t.Fatalf("failed to seed catalog: %v", err)
		}
	}
	now := time.Date(2026, 3, 4, 9, 0, 0, 0, time.Local)
	svc := tracker.New(store, tracker.WithClock(func() time.Time { return now }))
	m := NewModel(svc)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	m := setupModel(t, true)

	if m.state != constants.StateToday {
		t.Errorf("state = %v, want StateToday", m.state)
	}
	// Water, Stretch and Lift are due on a Wednesday, plus the carried-over course.
	if got := len(m.dayList.Items()); got != 4 {
		t.Errorf("len(Items()) = %d, want 4", got)
	}
	view := m.View()
	for _, want := range []string{"Today", "Week", "Progress", "Wednesday, March 4", "0/3 habits"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestTabSwitching(t *testing.T) {
	m := setupModel(t, true)

	tests := []struct {
		msg  tea.KeyMsg
		want constants.SessionState
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, constants.StateWeek},
		{tea.KeyMsg{Type: tea.KeyTab}, constants.StateProgress},
		{tea.KeyMsg{Type: tea.KeyTab}, constants.StateToday},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, constants.StateProgress},
	}
	for i, tt := range tests {
		m = send(t, m, tt.msg)
		if m.state != tt.want {
			t.Errorf("step %d: state = %v, want %v", i, m.state, tt.want)
		}
	}
	if view := m.View(); !strings.Contains(view, "Overview") {
		t.Errorf("progress View() missing Overview, got:\n%s", view)
	}
}

func TestMarkMessages(t *testing.T) {
	m := setupModel(t, true)

	m = send(t, m, daylist.ToggleHabitMsg{ID: "h_stretch"})
	m = send(t, m, daylist.AdjustHabitMsg{ID: "h_water", Delta: 1})
	m = send(t, m, daylist.AdjustHabitMsg{ID: "h_water", Delta: 1})
	m = send(t, m, daylist.ToggleActivityMsg{ID: "a_course"})

	if m.status != "" {
		t.Fatalf("status = %q, want empty", m.status)
	}
	rec, err := m.tracker.Store().GetDayRecord("2026-03-04")
	if err != nil {
		t.Fatalf("GetDayRecord() error = %v", err)
	}
	if !rec.Routine["h_stretch"].Truthy() {
		t.Errorf("h_stretch = %v, want true", rec.Routine["h_stretch"])
	}
	if got := rec.Routine["h_water"].Float(); got != 2 {
		t.Errorf("h_water = %v, want 2", got)
	}
	if !rec.Planned["a_course"] {
		t.Error("a_course not marked done")
	}
	if m.day.Stat.Done != 1 {
		t.Errorf("Stat.Done = %d, want 1", m.day.Stat.Done)
	}
}

func TestMarkUnknownHabit(t *testing.T) {
	m := setupModel(t, true)
	m = send(t, m, daylist.ToggleHabitMsg{ID: "h_missing"})
	if !strings.HasPrefix(m.status, "⚠ toggle habit") {
		t.Errorf("status = %q, want toggle habit warning", m.status)
	}
}

func TestDateNavigation(t *testing.T) {
	m := setupModel(t, true)

	m = send(t, m, runes("]"))
	if got := m.date.Format(constants.DateFormat); got != "2026-03-05" {
		t.Errorf("after ] date = %s, want 2026-03-05", got)
	}
	m = send(t, m, runes("["))
	m = send(t, m, runes("["))
	if got := m.date.Format(constants.DateFormat); got != "2026-03-03" {
		t.Errorf("after [[ date = %s, want 2026-03-03", got)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, runes("]"))
	if got := m.weekDate.Format(constants.DateFormat); got != "2026-03-11" {
		t.Errorf("weekDate = %s, want 2026-03-11", got)
	}

	m = send(t, m, runes("t"))
	if !m.date.Equal(m.tracker.Today()) || !m.weekDate.Equal(m.tracker.Today()) {
		t.Errorf("t did not jump to today: date=%v weekDate=%v", m.date, m.weekDate)
	}
}

func TestAddHabitForm(t *testing.T) {
	m := setupModel(t, true)

	m = send(t, m, daylist.AddHabitMsg{})
	if m.state != constants.StateAddHabit {
		t.Fatalf("state = %v, want StateAddHabit", m.state)
	}
	if m.habitForm.Category != "routine_morning" {
		t.Errorf("default category = %q, want routine_morning", m.habitForm.Category)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != constants.StateToday {
		t.Fatalf("esc: state = %v, want StateToday", m.state)
	}

	m = send(t, m, daylist.AddHabitMsg{})
	*m.habitForm = HabitFormModel{
		Name:     "Read",
		Category: "routine_evening",
		Numeric:  true,
		Target:   "20",
	}
	m.form.State = huh.StateCompleted
	m = send(t, m, noopMsg{})

	if m.state != constants.StateToday {
		t.Errorf("state = %v, want StateToday", m.state)
	}
	cat, err := m.tracker.Store().GetCatalog()
	if err != nil {
		t.Fatal(err)
	}
	habits := cat.RoutineCategories[1].Habits
	last := habits[len(habits)-1]
	if last.Name != "Read" || last.TrackingType != models.TrackingNumber {
		t.Errorf("added habit = %+v, want numeric Read", last)
	}
	if last.Target == nil || *last.Target != 20 {
		t.Errorf("Target = %v, want 20", last.Target)
	}
}

func TestAddHabitNeedsCategory(t *testing.T) {
	m := setupModel(t, false)
	m = send(t, m, daylist.AddHabitMsg{})
	if m.state != constants.StateToday {
		t.Errorf("state = %v, want StateToday", m.state)
	}
	if !strings.Contains(m.status, "routine category") {
		t.Errorf("status = %q, want category hint", m.status)
	}
}

func TestHabitFromForm(t *testing.T) {
	tests := []struct {
		name string
		form HabitFormModel
		want models.TrackingType
	}{
		{"boolean", HabitFormModel{Name: " Walk ", Time: "7 AM"}, ""},
		{"numeric without target", HabitFormModel{Name: "Pages", Numeric: true}, models.TrackingNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := habitFromForm(&tt.form)
			if h.TrackingType != tt.want {
				t.Errorf("TrackingType = %q, want %q", h.TrackingType, tt.want)
			}
			if h.Name != strings.TrimSpace(tt.form.Name) {
				t.Errorf("Name = %q", h.Name)
			}
			if h.Target != nil {
				t.Errorf("Target = %v, want nil", *h.Target)
			}
		})
	}
}

func TestQuit(t *testing.T) {
	m := setupModel(t, true)
	updated, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if !updated.(Model).quitting {
		t.Error("quitting = false, want true")
	}
}
