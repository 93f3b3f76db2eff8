package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	ctx := cli.NewContext(store)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestApply(t *testing.T) {
	base := models.DefaultSettings()

	tests := []struct {
		name    string
		key     string
		value   string
		check   func(models.Settings) bool
		wantErr bool
	}{
		{"threshold", "streak_threshold", "0.5", func(s models.Settings) bool { return s.StreakThreshold == 0.5 }, false},
		{"dashed key", "streak-threshold", "1", func(s models.Settings) bool { return s.StreakThreshold == 1 }, false},
		{"threshold too high", "streak_threshold", "1.5", nil, true},
		{"threshold not a number", "streak_threshold", "lots", nil, true},
		{"week starts on name", "week_starts_on", "monday", func(s models.Settings) bool { return s.WeekStartsOn == 1 }, false},
		{"work days by name", "work_days", "sat,sun", func(s models.Settings) bool { return len(s.WorkDays) == 2 && s.WorkDays[0] == 0 }, false},
		{"bool", "work_block_enabled", "yes", nil, true},
		{"bool true", "habits_respect_recurrence", "TRUE", func(s models.Settings) bool { return s.HabitsRespectRecurrence }, false},
		{"policy", "pending_policy", "exact", func(s models.Settings) bool { return s.PendingPolicy == "exact" }, false},
		{"bad policy", "pending_policy", "never", nil, true},
		{"window", "progress_window_days", "30", func(s models.Settings) bool { return s.ProgressWindowDays == 30 }, false},
		{"zero window", "progress_window_days", "0", nil, true},
		{"unknown", "color", "blue", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(base, tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Apply() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(got) {
				t.Errorf("Apply() = %+v", got)
			}
		})
	}

	t.Run("work end before start", func(t *testing.T) {
		s := base
		s.WorkBlockEnabled = true
		if _, err := Apply(s, "work_end", "08:00"); err == nil {
			t.Error("Apply() expected error for work block ending before it starts")
		}
		s.WorkBlockEnabled = false
		if _, err := Apply(s, "work_end", "08:00"); err != nil {
			t.Errorf("Apply() with work block off error = %v", err)
		}
	})
}

func TestSettingsCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsSetCmd{Key: "streak_threshold", Value: "0.9"}).Run(ctx); err != nil {
		t.Fatalf("settings set failed: %v", err)
	}
	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if got.StreakThreshold != 0.9 {
		t.Errorf("StreakThreshold = %v, want 0.9", got.StreakThreshold)
	}

	out.Reset()
	if err := (&SettingsShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("settings show failed: %v", err)
	}
	for _, want := range []string{"streak_threshold", "0.9", "Mon, Tue, Wed, Thu, Fri"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("settings show output missing %q:\n%s", want, out.String())
		}
	}
}
