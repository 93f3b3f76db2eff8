package system

import (
	"fmt"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/validation"
)

type ValidateCmd struct {
	Strict bool `help:"Exit with an error on warnings too."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Store.Export()
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	ctx.Println("Validating catalog, settings and day records...")
	result := validation.New().ValidateAppData(data)

	ctx.Println()
	ctx.Println(result.FormatReport())

	if result.HasErrors() || (cmd.Strict && result.HasConflicts()) {
		return fmt.Errorf("validation found %d issue(s)", len(result.Conflicts))
	}
	return nil
}
