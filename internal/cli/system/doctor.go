package system

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/goaltrack/internal/backup"
	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/keyring"
	"github.com/julianstephens/goaltrack/internal/storage/postgres"
	"github.com/julianstephens/goaltrack/internal/validation"
)

var (
	processesFunc = ps.Processes
	selfPID       = os.Getpid
	nowFunc       = time.Now
)

// errWarning marks a check result that should not fail the run.
type errWarning struct{ msg string }

func (e errWarning) Error() string { return e.msg }

func warnf(format string, args ...any) error {
	return errWarning{msg: fmt.Sprintf(format, args...)}
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	failed := false
	report := func(name string, err error) {
		var w errWarning
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", name)
		case errors.As(err, &w):
			ctx.Printf("⚠ %s: WARNING\n", name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", name)
			ctx.Printf("   Error: %v\n", err)
			failed = true
		}
	}
	skip := func(name string) {
		ctx.Printf("⊘ %s: SKIPPED (store not reachable)\n", name)
	}

	reachable := checkStoreReachable(ctx)
	report("Store reachable", reachable)
	if reachable == nil {
		report("Schema version", checkSchema(ctx))
		report("Data validation", checkValidation(ctx))
		report("Sync", checkSync(ctx))
	} else {
		skip("Schema version")
		skip("Data validation")
		skip("Sync")
	}
	report("Backups present", checkBackupsPresent(ctx))
	report("Clock/timezone", checkClockTimezone())
	report("Other goaltrack processes", checkOtherProcesses())
	report("OS keyring", checkKeyring())

	ctx.Println()
	if failed {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	return nil
}

func checkSchema(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	st, err := m.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	if !st.UpToDate() {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'goaltrack migrate')", st.Current, st.Latest)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	data, err := ctx.Store.Export()
	if err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}
	result := validation.New().ValidateAppData(data)
	switch {
	case result.HasErrors():
		return fmt.Errorf("%d problem(s) found; run 'goaltrack validate' for details", len(result.Conflicts))
	case result.HasConflicts():
		return warnf("%d warning(s); run 'goaltrack validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkSync(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if settings.GistID == "" {
		return warnf("not configured; run 'goaltrack sync' to create a gist")
	}
	if settings.LastSynced == "" {
		return warnf("gist %s has never been synced", settings.GistID)
	}
	at, err := time.Parse(time.RFC3339, settings.LastSynced)
	if err != nil {
		return warnf("unreadable last sync time %q", settings.LastSynced)
	}
	if nowFunc().Sub(at) > 7*24*time.Hour {
		return warnf("last synced %s", humanize.Time(at))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*postgres.Store); ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return warnf("no backups found - consider creating one with 'goaltrack backup create'")
	}
	return nil
}

func checkClockTimezone() error {
	now := nowFunc()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

// checkOtherProcesses warns when another goaltrack process may be writing
// to the same store.
func checkOtherProcesses() error {
	procs, err := processesFunc()
	if err != nil {
		return warnf("could not list processes: %v", err)
	}
	self := selfPID()
	var others []int
	for _, p := range procs {
		if p.Pid() != self && p.Executable() == constants.AppName {
			others = append(others, p.Pid())
		}
	}
	if len(others) > 0 {
		return warnf("%d other goaltrack process(es) running (pid %v); stop them before restoring backups", len(others), others)
	}
	return nil
}

func checkKeyring() error {
	if !keyring.IsAvailable() {
		return warnf("not available; use GOALTRACK_GITHUB_TOKEN for sync")
	}
	return nil
}
