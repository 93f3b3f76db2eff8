package transfer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/validation"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// formatFor picks the explicit format, else guesses from the file extension.
func formatFor(explicit, path string) (string, error) {
	switch strings.ToLower(explicit) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case "":
	default:
		return "", fmt.Errorf("unknown format %q (want json or yaml)", explicit)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return FormatJSON, nil
}

func encode(w io.Writer, format string, data models.AppData) error {
	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func decode(r io.Reader, format string) (models.AppData, error) {
	var data models.AppData
	var err error
	if format == FormatYAML {
		err = yaml.NewDecoder(r).Decode(&data)
	} else {
		err = json.NewDecoder(r).Decode(&data)
	}
	if err != nil {
		return models.AppData{}, fmt.Errorf("failed to parse %s: %w", format, err)
	}
	data.Normalize()
	return data, nil
}

type ExportCmd struct {
	File   string `arg:"" optional:"" help:"Output file. Writes to stdout when omitted."`
	Format string `short:"f" help:"Output format (json or yaml). Guessed from the file extension."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Store.Export()
	if err != nil {
		return fmt.Errorf("failed to export data: %w", err)
	}
	format, err := formatFor(c.Format, c.File)
	if err != nil {
		return err
	}

	if c.File == "" || c.File == "-" {
		return encode(ctx.Out, format, data)
	}

	f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := encode(f, format, data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	ctx.Printf("✓ Exported %s to %s\n", cli.Plural(len(data.Days), "day"), c.File)
	return nil
}

type ImportCmd struct {
	File   string `arg:"" help:"File to import. The current data is replaced."`
	Format string `short:"f" help:"Input format (json or yaml). Guessed from the file extension."`
	Force  bool   `help:"Import even when the data has validation errors."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	format, err := formatFor(c.Format, c.File)
	if err != nil {
		return err
	}
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	data, err := decode(f, format)
	if err != nil {
		return err
	}

	result := validation.New().ValidateAppData(data)
	if result.HasConflicts() {
		ctx.Println(result.FormatReport())
	}
	if result.HasErrors() && !c.Force {
		return fmt.Errorf("refusing to import invalid data (use --force to override)")
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.Import(data); err != nil {
		return fmt.Errorf("failed to import data: %w", err)
	}
	cat := data.Catalog()
	ctx.Printf("✓ Imported %s, %s and %s\n",
		cli.Plural(len(cat.AllHabits()), "habit"),
		cli.Plural(len(cat.AllActivities()), "activity"),
		cli.Plural(len(data.Days), "day"))
	return nil
}
