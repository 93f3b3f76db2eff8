package views

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/models"
)

type ReflectCmd struct {
	Date      string  `help:"Day to reflect on." default:"today"`
	WentWell  *string `help:"What went well."`
	Improve   *string `help:"What to improve."`
	Gratitude *string `help:"What you are grateful for."`
}

// editReflection is replaced in tests.
var editReflection = func(r *models.Reflection) error {
	return huh.NewForm(huh.NewGroup(
		huh.NewText().Title("What went well?").Value(&r.WentWell),
		huh.NewText().Title("What could improve?").Value(&r.Improve),
		huh.NewText().Title("What are you grateful for?").Value(&r.Gratitude),
	)).Run()
}

func (c *ReflectCmd) Run(ctx *cli.Context) error {
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	view, err := ctx.Tracker.DayView(date)
	if err != nil {
		return err
	}
	r := view.Reflection

	if c.WentWell == nil && c.Improve == nil && c.Gratitude == nil {
		if err := editReflection(&r); err != nil {
			return err
		}
	} else {
		if c.WentWell != nil {
			r.WentWell = *c.WentWell
		}
		if c.Improve != nil {
			r.Improve = *c.Improve
		}
		if c.Gratitude != nil {
			r.Gratitude = *c.Gratitude
		}
	}
	r.WentWell = strings.TrimSpace(r.WentWell)
	r.Improve = strings.TrimSpace(r.Improve)
	r.Gratitude = strings.TrimSpace(r.Gratitude)

	if err := ctx.Tracker.SaveReflection(date, r); err != nil {
		return err
	}
	ctx.Printf("Saved reflection for %s\n", date.Format("Jan 2 2006"))
	return nil
}
