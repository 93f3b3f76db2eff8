package system

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-ps"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/keyring"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/storage"
	"github.com/julianstephens/goaltrack/internal/storage/sqlite"
	"github.com/julianstephens/goaltrack/internal/storage/storagetest"
)

// newContext returns a context over an uninitialized SQLite store whose
// output is captured.
func newContext(t *testing.T) (*cli.Context, *bytes.Buffer, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() { _ = store.Close() })

	ctx := cli.NewContext(store)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out, dbPath
}

// initContext is newContext with the store initialized and empty.
func initContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	ctx, out, _ := newContext(t)
	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	return ctx, out
}

type mockProcess struct {
	pid        int
	executable string
}

func (p mockProcess) Pid() int           { return p.pid }
func (p mockProcess) PPid() int          { return 1 }
func (p mockProcess) Executable() string { return p.executable }

func stubProcesses(t *testing.T, procs ...ps.Process) {
	t.Helper()
	orig := processesFunc
	origSelf := selfPID
	processesFunc = func() ([]ps.Process, error) { return procs, nil }
	selfPID = func() int { return 100 }
	t.Cleanup(func() {
		processesFunc = orig
		selfPID = origSelf
	})
}

func TestInitCmd_Success(t *testing.T) {
	ctx, out, dbPath := newContext(t)

	cmd := &InitCmd{Defaults: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
	if !strings.Contains(out.String(), "Initialized goaltrack storage") {
		t.Errorf("unexpected output: %q", out.String())
	}

	cat, err := ctx.Store.GetCatalog()
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.AllHabits()) == 0 {
		t.Error("init did not seed the starter catalog")
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, _ := newContext(t)
	cmd := &InitCmd{Defaults: true}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	first, _ := ctx.Store.GetCatalog()
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	second, _ := ctx.Store.GetCatalog()
	if len(first.AllHabits()) != len(second.AllHabits()) {
		t.Errorf("second init changed the catalog: %d -> %d habits", len(first.AllHabits()), len(second.AllHabits()))
	}
}

func TestInitCmd_NoDefaults(t *testing.T) {
	ctx, _, _ := newContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	cat, _ := ctx.Store.GetCatalog()
	if len(cat.RoutineCategories)+len(cat.PlannedCategories) != 0 {
		t.Errorf("--no-defaults seeded %d categories", len(cat.RoutineCategories)+len(cat.PlannedCategories))
	}
}

func TestInitCmd_JSONAlreadyInitialized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	ctx := cli.NewContext(storage.NewJSONStore(path))
	out := &bytes.Buffer{}
	ctx.Out = out

	for i := 0; i < 2; i++ {
		if err := (&InitCmd{}).Run(ctx); err != nil {
			t.Fatalf("init #%d failed: %v", i+1, err)
		}
	}
	if !strings.Contains(out.String(), "already initialized") {
		t.Errorf("second init output = %q", out.String())
	}
}

func TestInitCmd_Source(t *testing.T) {
	srcPath := filepath.Join(t.TempDir(), "legacy.json")
	src := storage.NewJSONStore(srcPath)
	if err := src.Init(); err != nil {
		t.Fatal(err)
	}
	if err := src.SaveCatalog(storagetest.Catalog()); err != nil {
		t.Fatal(err)
	}
	rec := models.NewDayRecord("2026-03-02")
	rec.Planned["a_course"] = true
	if err := src.SaveDayRecord(rec); err != nil {
		t.Fatal(err)
	}

	ctx, out, _ := newContext(t)
	if err := (&InitCmd{Source: srcPath, Defaults: true}).Run(ctx); err != nil {
		t.Fatalf("init --source failed: %v", err)
	}
	if !strings.Contains(out.String(), "3 habits") {
		t.Errorf("output = %q, want habit count", out.String())
	}
	got, err := ctx.Store.GetDayRecord("2026-03-02")
	if err != nil || !got.Planned["a_course"] {
		t.Errorf("copied day = %+v, %v", got, err)
	}
}

func TestInitCmd_ForceRejectsSameSource(t *testing.T) {
	ctx, _, dbPath := newContext(t)
	err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "same") {
		t.Errorf("init --force --source=self error = %v", err)
	}
}

func TestMigrateCmd(t *testing.T) {
	ctx, out := initContext(t)

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "up to date") {
		t.Errorf("migrate output = %q", out.String())
	}

	out.Reset()
	if err := (&MigrateCmd{Status: true}).Run(ctx); err != nil {
		t.Fatalf("migrate --status failed: %v", err)
	}
	if !strings.Contains(out.String(), "(0 pending)") {
		t.Errorf("migrate --status output = %q", out.String())
	}
}

func TestDoctorCmd_Healthy(t *testing.T) {
	gokeyring.MockInit()
	stubProcesses(t, mockProcess{pid: 100, executable: constants.AppName})
	ctx, out := initContext(t)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor failed on a healthy store: %v\n%s", err, out.String())
	}
	for _, want := range []string{"Store reachable: OK", "Schema version: OK", "Backups present: WARNING", "Other goaltrack processes: OK"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("doctor output missing %q:\n%s", want, out.String())
		}
	}
}

func TestDoctorCmd_InvalidData(t *testing.T) {
	gokeyring.MockInit()
	stubProcesses(t)
	ctx, out := initContext(t)

	cat := storagetest.Catalog()
	cat.RoutineCategories[1].Habits[0].ID = "h_water"
	if err := ctx.Store.SaveCatalog(cat); err != nil {
		t.Fatal(err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor passed with duplicate habit ids")
	}
	if !strings.Contains(out.String(), "Data validation: FAIL") {
		t.Errorf("doctor output:\n%s", out.String())
	}
}

func TestDoctorCmd_Unreachable(t *testing.T) {
	gokeyring.MockInit()
	stubProcesses(t)
	ctx, out, _ := newContext(t)

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor passed without a store")
	}
	if !strings.Contains(out.String(), "Schema version: SKIPPED") {
		t.Errorf("doctor output:\n%s", out.String())
	}
}

func TestCheckOtherProcesses(t *testing.T) {
	stubProcesses(t,
		mockProcess{pid: 100, executable: constants.AppName},
		mockProcess{pid: 200, executable: constants.AppName},
		mockProcess{pid: 300, executable: "bash"},
	)
	err := checkOtherProcesses()
	var w errWarning
	if !errors.As(err, &w) || !strings.Contains(err.Error(), "200") {
		t.Errorf("checkOtherProcesses() = %v, want warning naming pid 200", err)
	}
}

func TestValidateCmd(t *testing.T) {
	ctx, out := initContext(t)
	if err := ctx.Store.SaveCatalog(storagetest.Catalog()); err != nil {
		t.Fatal(err)
	}
	if err := (&ValidateCmd{}).Run(ctx); err != nil {
		t.Errorf("validate failed on a clean catalog: %v\n%s", err, out.String())
	}

	cat := storagetest.Catalog()
	cat.PlannedCategories[0].Activities[1].Weekday = nil
	if err := ctx.Store.SaveCatalog(cat); err != nil {
		t.Fatal(err)
	}
	if err := (&ValidateCmd{}).Run(ctx); err == nil {
		t.Error("validate passed a weekly activity without a weekday")
	}
}

func TestDebugCmds(t *testing.T) {
	ctx, out := initContext(t)
	if err := ctx.Store.SaveCatalog(storagetest.Catalog()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		cmd     interface{ Run(*cli.Context) error }
		want    string
		wantErr bool
	}{
		{"db-path", &DebugDBPathCmd{}, `"path"`, false},
		{"settings", &DebugDumpSettingsCmd{}, `"week_starts_on"`, false},
		{"habit by name", &DebugDumpHabitCmd{Ref: "water"}, `"id": "h_water"`, false},
		{"activity", &DebugDumpActivityCmd{Ref: "a_review"}, `"recurringType": "weekly"`, false},
		{"unknown habit", &DebugDumpHabitCmd{Ref: "nope"}, "", true},
		{"missing day", &DebugDumpDayCmd{Date: "2020-01-01"}, "", true},
		{"bad date", &DebugDumpDayCmd{Date: "01/01/2020"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("Run() output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestTokenCmds(t *testing.T) {
	gokeyring.MockInit()
	ctx, out := initContext(t)

	orig := promptSecret
	promptSecret = func(string) (string, error) { return " prompted ", nil }
	t.Cleanup(func() { promptSecret = orig })

	if err := (&TokenSetCmd{Value: "ghp_abc"}).Run(ctx); err != nil {
		t.Fatalf("token set failed: %v", err)
	}
	if got, _ := keyring.GetToken(); got != "ghp_abc" {
		t.Errorf("stored token = %q", got)
	}

	if err := (&TokenSetCmd{Postgres: true}).Run(ctx); err != nil {
		t.Fatalf("token set --postgres failed: %v", err)
	}
	if got, _ := keyring.Get(constants.KeyringPostgresPassword); got != "prompted" {
		t.Errorf("stored password = %q, want trimmed prompt", got)
	}

	out.Reset()
	if err := (&TokenStatusCmd{}).Run(ctx); err != nil {
		t.Fatalf("token status failed: %v", err)
	}
	if strings.Count(out.String(), "is stored") != 2 {
		t.Errorf("token status output = %q", out.String())
	}

	if err := (&TokenDeleteCmd{}).Run(ctx); err != nil {
		t.Fatalf("token delete failed: %v", err)
	}
	if err := (&TokenDeleteCmd{}).Run(ctx); err == nil {
		t.Error("second token delete should fail")
	}
}

func TestTokenStatusUnavailable(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("no dbus"))
	t.Cleanup(gokeyring.MockInit)
	ctx, _ := initContext(t)

	if err := (&TokenStatusCmd{}).Run(ctx); !errors.Is(err, keyring.ErrKeyringUnavailable) {
		t.Errorf("token status error = %v, want ErrKeyringUnavailable", err)
	}
}
