package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/goaltrack/internal/catalog"
	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/storage"
	"github.com/julianstephens/goaltrack/internal/utils"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" name:"db-path" help:"Show the store path."`
	DumpDay      *DebugDumpDayCmd      `cmd:"" help:"Dump a day record as JSON."`
	DumpHabit    *DebugDumpHabitCmd    `cmd:"" help:"Dump a habit as JSON."`
	DumpActivity *DebugDumpActivityCmd `cmd:"" help:"Dump an activity as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpDayCmd struct {
	Date string `arg:"" help:"Date to dump (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpDayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.Date(cmd.Date)
	if err != nil {
		return err
	}
	key := utils.DateKey(date)
	rec, err := ctx.Store.GetDayRecord(key)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no record for date: %s", key)
	}
	if err != nil {
		return fmt.Errorf("failed to get day record: %w", err)
	}
	return printJSON(ctx, rec)
}

type DebugDumpHabitCmd struct {
	Ref string `arg:"" help:"Habit id or name."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *cli.Context) error {
	cat, err := ctx.Store.GetCatalog()
	if err != nil {
		return err
	}
	h, err := catalog.FindHabit(cat, cmd.Ref)
	if err != nil {
		return err
	}
	return printJSON(ctx, h.Habit)
}

type DebugDumpActivityCmd struct {
	Ref string `arg:"" help:"Activity id or name."`
}

func (cmd *DebugDumpActivityCmd) Run(ctx *cli.Context) error {
	cat, err := ctx.Store.GetCatalog()
	if err != nil {
		return err
	}
	a, err := catalog.FindActivity(cat, cmd.Ref)
	if err != nil {
		return err
	}
	return printJSON(ctx, a.Activity)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(ctx, settings)
}
