package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := cli.NewContext(store)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out, dbPath
}

func stubConfirm(t *testing.T, answer bool) *int {
	t.Helper()
	calls := 0
	orig := confirmRestore
	confirmRestore = func(string) (bool, error) {
		calls++
		return answer, nil
	}
	t.Cleanup(func() { confirmRestore = orig })
	return &calls
}

func TestBackupListEmpty(t *testing.T) {
	ctx, out, _ := setupTestDB(t)
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out, _ := setupTestDB(t)
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if !strings.Contains(out.String(), "Backup created: goaltrack-") {
		t.Errorf("unexpected create output: %s", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "1 total") {
		t.Errorf("expected one backup listed, got: %s", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, out, dbPath := setupTestDB(t)
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	name := strings.TrimSpace(strings.TrimPrefix(out.String(), "✓ Backup created:"))

	rec := models.NewDayRecord("2026-03-01")
	rec.Routine["h_read"] = models.BoolValue(true)
	if err := ctx.Store.SaveDayRecord(rec); err != nil {
		t.Fatal(err)
	}

	t.Run("cancelled", func(t *testing.T) {
		calls := stubConfirm(t, false)
		out.Reset()
		if err := (&BackupRestoreCmd{BackupFile: name}).Run(ctx); err != nil {
			t.Fatalf("restore failed: %v", err)
		}
		if *calls != 1 || !strings.Contains(out.String(), "Restore cancelled.") {
			t.Errorf("calls = %d, output = %s", *calls, out.String())
		}
	})

	t.Run("confirmed with --yes", func(t *testing.T) {
		calls := stubConfirm(t, false)
		if err := (&BackupRestoreCmd{BackupFile: name, Yes: true}).Run(ctx); err != nil {
			t.Fatalf("restore failed: %v", err)
		}
		if *calls != 0 {
			t.Errorf("confirm called %d times with --yes", *calls)
		}

		restored := sqlite.NewStore(dbPath)
		if err := restored.Load(); err != nil {
			t.Fatalf("failed to load restored store: %v", err)
		}
		defer restored.Close()
		recs, err := restored.GetDayRecords("", "")
		if err != nil {
			t.Fatal(err)
		}
		if len(recs) != 0 {
			t.Errorf("restored store has %d day records, want 0", len(recs))
		}
	})
}

func TestBackupRestoreMissing(t *testing.T) {
	ctx, _, _ := setupTestDB(t)
	err := (&BackupRestoreCmd{BackupFile: "nope.db", Yes: true}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "backup file not found") {
		t.Errorf("Run() error = %v, want not found", err)
	}
}
