package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/storage"
	"github.com/julianstephens/goaltrack/internal/storage/postgres"
)

type InitCmd struct {
	Force    bool   `help:"Delete an existing store file before initializing."`
	Source   string `help:"Store path or connection string to copy all data from."`
	Defaults bool   `help:"Seed the starter catalog on an empty store." default:"true" negatable:""`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	_, isPostgres := ctx.Store.(*postgres.Store)

	if c.Force && !isPostgres {
		if c.Source != "" {
			absPath, _ := filepath.Abs(path)
			absSource, _ := filepath.Abs(c.Source)
			if absPath == absSource {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
			}
		}
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	err := ctx.Store.Init()
	switch {
	case errors.Is(err, storage.ErrAlreadyInitialized):
		if err := ctx.Store.Load(); err != nil {
			return err
		}
		ctx.Printf("Storage already initialized at: %s\n", path)
	case err != nil:
		return err
	default:
		ctx.Printf("Initialized goaltrack storage at: %s\n", path)
	}

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := copyFrom(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
		return nil
	}

	if c.Defaults {
		seeded, err := ctx.Tracker.SeedDefaults()
		if err != nil {
			return fmt.Errorf("failed to seed starter catalog: %w", err)
		}
		if seeded {
			ctx.Println("Added the starter catalog. Edit it with 'goaltrack habit' and 'goaltrack activity'.")
		}
	}
	return nil
}

func copyFrom(ctx *cli.Context, source string) error {
	src, err := cli.OpenStore(source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source store: %w", err)
	}
	defer src.Close()

	data, err := src.Export()
	if err != nil {
		return fmt.Errorf("failed to read source store: %w", err)
	}
	if err := ctx.Store.Import(data); err != nil {
		return fmt.Errorf("failed to write destination store: %w", err)
	}
	ctx.Printf("  Copied %s, %s and %s\n",
		cli.Plural(len(data.RoutineCategories)+len(data.PlannedCategories), "category"),
		cli.Plural(len(data.Catalog().AllHabits()), "habit"),
		cli.Plural(len(data.Days), "day"))
	return nil
}
