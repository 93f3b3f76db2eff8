package main

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/cli/activities"
	"github.com/julianstephens/goaltrack/internal/cli/backups"
	"github.com/julianstephens/goaltrack/internal/cli/categories"
	"github.com/julianstephens/goaltrack/internal/cli/habits"
	"github.com/julianstephens/goaltrack/internal/cli/settings"
	"github.com/julianstephens/goaltrack/internal/cli/system"
	"github.com/julianstephens/goaltrack/internal/cli/transfer"
	"github.com/julianstephens/goaltrack/internal/cli/views"
	"github.com/julianstephens/goaltrack/internal/constants"
	apperrors "github.com/julianstephens/goaltrack/internal/errors"
	"github.com/julianstephens/goaltrack/internal/logger"
	"github.com/julianstephens/goaltrack/internal/storage/postgres"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Store path (.db for SQLite, .json for a JSON file) or PostgreSQL connection string. PostgreSQL passwords must come from PGPASSWORD, .pgpass or the OS keyring." env:"GOALTRACK_CONFIG" default:"${config}"`
	Debug    bool   `help:"Log debug output to stderr." env:"GOALTRACK_DEBUG"`
	LogLevel string `help:"Log level for the log file (debug, info, warn, error)." env:"GOALTRACK_LOG_LEVEL"`

	Init     system.InitCmd     `cmd:"" help:"Initialize goaltrack storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Today    views.TodayCmd     `cmd:"" help:"Show habits and activities for a day."`
	Week     views.WeekCmd      `cmd:"" help:"Show the weekly calendar."`
	Stats    views.StatsCmd     `cmd:"" help:"Show progress statistics."`
	Reflect  views.ReflectCmd   `cmd:"" help:"Write the daily reflection."`
	Validate system.ValidateCmd `cmd:"" help:"Validate the catalog, settings and day records."`
	DebugCmd system.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`

	Habit    habits.HabitCmd        `cmd:"" help:"Manage habits and record habit progress."`
	Activity activities.ActivityCmd `cmd:"" help:"Manage planned activities."`
	Category categories.CategoryCmd `cmd:"" help:"Manage routine and planned categories."`
	Settings settings.SettingsCmd   `cmd:"" help:"Manage application settings."`
	Backup   backups.BackupCmd      `cmd:"" help:"Manage store backups."`
	Sync     transfer.SyncCmd       `cmd:"" help:"Sync with a private GitHub gist."`
	Export   transfer.ExportCmd     `cmd:"" help:"Export all data as JSON or YAML."`
	Import   transfer.ImportCmd     `cmd:"" help:"Replace all data from a JSON or YAML export."`
	Token    struct {
		Set    system.TokenSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
		Delete system.TokenDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
		Status system.TokenStatusCmd `cmd:"" default:"1" help:"Show which secrets are stored."`
	} `cmd:"" help:"Manage the GitHub token and PostgreSQL password in the OS keyring."`
}

// noLoad lists commands that open the store themselves.
var noLoad = []string{"init", "doctor"}

func main() {
	// A missing .env is normal.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		apperrors.Fatal(err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit and goal tracker: daily routines, planned activities and progress."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"config":  constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir(CLI.Config),
		Level:     CLI.LogLevel,
	}); err != nil {
		apperrors.Fatal(err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "version", constants.Version)

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	appCtx := cli.NewContext(store)

	command := strings.Fields(ctx.Command())
	if len(command) == 0 || !slices.Contains(noLoad, command[0]) {
		if err := store.Load(); err != nil {
			_ = store.Close()
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		_ = store.Close()
		apperrors.Fatal(err)
	}
}

// configDir is where logs and backups live: next to a file store, or the
// default config directory for PostgreSQL.
func configDir(config string) string {
	if postgres.IsConnString(config) {
		config = constants.DefaultConfigPath
	}
	path, err := homedir.Expand(config)
	if err != nil {
		path = config
	}
	return filepath.Dir(path)
}
