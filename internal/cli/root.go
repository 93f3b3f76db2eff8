package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/julianstephens/goaltrack/internal/backup"
	"github.com/julianstephens/goaltrack/internal/constants"
	apperrors "github.com/julianstephens/goaltrack/internal/errors"
	"github.com/julianstephens/goaltrack/internal/gist"
	"github.com/julianstephens/goaltrack/internal/keyring"
	"github.com/julianstephens/goaltrack/internal/logger"
	"github.com/julianstephens/goaltrack/internal/storage"
	"github.com/julianstephens/goaltrack/internal/storage/postgres"
	"github.com/julianstephens/goaltrack/internal/storage/sqlite"
	"github.com/julianstephens/goaltrack/internal/tracker"
	"github.com/julianstephens/goaltrack/internal/utils"
)

func init() {
	apperrors.RegisterHint(storage.ErrNotInitialized, "run 'goaltrack init' first")
	apperrors.RegisterHint(postgres.ErrEmbeddedCredentials, "use PGPASSWORD, .pgpass or 'goaltrack token set --postgres' instead")
	apperrors.RegisterHint(gist.ErrUnauthorized, "store a token with repo 'gist' scope via 'goaltrack token set'")
	apperrors.RegisterHint(keyring.ErrKeyringUnavailable, "set GOALTRACK_GITHUB_TOKEN instead")
}

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Service
	Out     io.Writer
}

// NewContext wraps a store with a tracker service writing to stdout.
func NewContext(store storage.Provider, opts ...tracker.Option) *Context {
	return &Context{
		Store:   store,
		Tracker: tracker.New(store, opts...),
		Out:     os.Stdout,
	}
}

// Printf writes to the command's output.
func (c *Context) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	_, _ = fmt.Fprintln(c.Out, args...)
}

// PerformAutomaticBackup creates a backup and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*postgres.Store); ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// OpenStore picks a backend for config: a postgres:// URL, a .json file or
// a SQLite database path. "~" is expanded.
func OpenStore(config string) (storage.Provider, error) {
	if postgres.IsConnString(config) {
		if err := postgres.ValidateConnString(config); err != nil {
			return nil, err
		}
		if os.Getenv("PGPASSWORD") == "" {
			if pw, err := keyring.Get(constants.KeyringPostgresPassword); err == nil {
				_ = os.Setenv("PGPASSWORD", pw)
			}
		}
		return postgres.New(config), nil
	}

	path, err := homedir.Expand(config)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// ParseDate accepts YYYY-MM-DD, "today", "yesterday" or "tomorrow", relative
// to now. Empty means today.
func ParseDate(value string, now time.Time) (time.Time, error) {
	today := utils.Midnight(now)
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return utils.AddDays(today, -1), nil
	case "tomorrow":
		return utils.AddDays(today, 1), nil
	}
	d, err := utils.ParseDateKey(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD, today, yesterday or tomorrow)", value)
	}
	return d, nil
}

// Date resolves a --date flag against the tracker's clock.
func (c *Context) Date(value string) (time.Time, error) {
	return ParseDate(value, c.Tracker.Today())
}
