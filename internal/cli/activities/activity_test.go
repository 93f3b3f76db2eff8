package activities

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/goaltrack/internal/catalog"
	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/storage"
	"github.com/julianstephens/goaltrack/internal/storage/storagetest"
	"github.com/julianstephens/goaltrack/internal/tracker"
)

func ptr[T any](v T) *T { return &v }

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "goaltrack.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if err := store.SaveCatalog(storagetest.Catalog()); err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}
	now := time.Date(2026, 3, 4, 9, 0, 0, 0, time.Local)
	ctx := cli.NewContext(store, tracker.WithClock(func() time.Time { return now }))
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func findActivity(t *testing.T, ctx *cli.Context, ref string) models.ActivityRef {
	t.Helper()
	cat, err := ctx.Store.GetCatalog()
	if err != nil {
		t.Fatal(err)
	}
	a, err := catalog.FindActivity(cat, ref)
	if err != nil {
		t.Fatalf("FindActivity(%q) error = %v", ref, err)
	}
	return a
}

func TestActivityAddCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	cmd := &ActivityAddCmd{
		Name:     "Dentist",
		Category: "learning",
		Time:     "2:00 PM",
		Date:     "tomorrow",
		Priority: "high",
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("activity add failed: %v", err)
	}
	if !strings.Contains(out.String(), "Added activity: Dentist") {
		t.Errorf("unexpected output: %s", out.String())
	}
	a := findActivity(t, ctx, "dentist")
	if a.Date != "2026-03-05" || a.Priority != models.PriorityHigh {
		t.Errorf("activity = %+v, want due 2026-03-05 high priority", a.Activity)
	}

	weekly := &ActivityAddCmd{
		Name:            "Long run",
		Category:        "planned_learning",
		RecurrenceFlags: cli.RecurrenceFlags{Weekday: "sat"},
	}
	if err := weekly.Run(ctx); err != nil {
		t.Fatalf("activity add failed: %v", err)
	}
	run := findActivity(t, ctx, "Long run")
	if run.Type != constants.RecurrenceWeekly || run.Weekday == nil || *run.Weekday != 6 {
		t.Errorf("recurrence = %+v, want weekly on Saturday", run.Recurrence)
	}
	if run.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q, want medium", run.Priority)
	}
}

func TestActivityAddCmd_Errors(t *testing.T) {
	ctx, _ := setupTestDB(t)

	tests := []struct {
		name string
		cmd  ActivityAddCmd
	}{
		{"empty name", ActivityAddCmd{Name: "", Category: "learning"}},
		{"routine category", ActivityAddCmd{Name: "X", Category: "morning"}},
		{"bad priority", ActivityAddCmd{Name: "X", Category: "learning", Priority: "asap"}},
		{"bad date", ActivityAddCmd{Name: "X", Category: "learning", Date: "03/05"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("Run() expected error")
			}
		})
	}
}

func TestActivityListCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	if err := (&ActivityListCmd{}).Run(ctx); err != nil {
		t.Fatalf("activity list failed: %v", err)
	}
	for _, want := range []string{"Course", "2026-03-02 (overdue)", "Weekly review", "weekly on Sun"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("activity list missing %q:\n%s", want, out.String())
		}
	}
}

func TestActivityEditCmd(t *testing.T) {
	ctx, _ := setupTestDB(t)

	cmd := &ActivityEditCmd{
		Ref:      "course",
		Date:     ptr(""),
		Priority: ptr("low"),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("activity edit failed: %v", err)
	}
	a := findActivity(t, ctx, "a_course")
	if a.Date != "" || a.Priority != models.PriorityLow {
		t.Errorf("edited activity = %+v", a.Activity)
	}

	legacy := &ActivityEditCmd{Ref: "a_review", RecurrenceFlags: cli.RecurrenceFlags{Days: "tue,thu"}}
	if err := legacy.Run(ctx); err != nil {
		t.Fatalf("activity edit failed: %v", err)
	}
	review := findActivity(t, ctx, "a_review")
	if review.Type != constants.RecurrenceCustom || review.Recurring {
		t.Errorf("recurrence = %+v recurring=%v", review.Recurrence, review.Recurring)
	}
}

func TestActivityToggleAndDelete(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&ActivityToggleCmd{Ref: "Course", Date: "today"}).Run(ctx); err != nil {
		t.Fatalf("activity toggle failed: %v", err)
	}
	if !strings.Contains(out.String(), `"Course" marked done for 2026-03-04`) {
		t.Errorf("unexpected output: %s", out.String())
	}
	rec, err := ctx.Store.GetDayRecord("2026-03-04")
	if err != nil {
		t.Fatal(err)
	}
	if !rec.Planned["a_course"] {
		t.Error("toggle not persisted")
	}

	if err := (&ActivityDeleteCmd{Ref: "a_course"}).Run(ctx); err != nil {
		t.Fatalf("activity delete failed: %v", err)
	}
	if err := (&ActivityToggleCmd{Ref: "a_course", Date: "today"}).Run(ctx); !errors.Is(err, catalog.ErrItemNotFound) {
		t.Errorf("toggle after delete error = %v, want ErrItemNotFound", err)
	}
}
