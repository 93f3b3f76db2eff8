package activities

import (
	"fmt"
	"strings"

	"github.com/julianstephens/goaltrack/internal/catalog"
	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/utils"
)

type ActivityCmd struct {
	Add    ActivityAddCmd    `cmd:"" help:"Add an activity to a planned category."`
	List   ActivityListCmd   `cmd:"" help:"List activities."`
	Edit   ActivityEditCmd   `cmd:"" help:"Edit an activity."`
	Delete ActivityDeleteCmd `cmd:"" help:"Delete an activity."`
	Toggle ActivityToggleCmd `cmd:"" help:"Mark an activity done or not done for a day."`
}

type ActivityAddCmd struct {
	Name        string `arg:"" help:"Activity name."`
	Category    string `short:"c" required:"" help:"Planned category id or name."`
	Time        string `help:"Time label, e.g. '2:00 PM'."`
	Duration    string `help:"Duration label, e.g. '1 hr'."`
	Date        string `help:"Due date for one-time activities (YYYY-MM-DD, today, tomorrow)."`
	Priority    string `help:"high, medium or low." default:"medium"`
	Description string `help:"Free-form notes."`
	cli.RecurrenceFlags
}

func (c *ActivityAddCmd) Run(ctx *cli.Context) error {
	a := models.Activity{
		Name:        strings.TrimSpace(c.Name),
		Time:        c.Time,
		Duration:    c.Duration,
		Description: c.Description,
	}
	if a.Name == "" {
		return fmt.Errorf("activity name is required")
	}
	if err := c.fill(ctx, &a); err != nil {
		return err
	}

	var added models.Activity
	err := ctx.Tracker.UpdateCatalog(func(cat *models.Catalog) error {
		var err error
		added, err = catalog.AddActivity(cat, c.Category, a)
		return err
	})
	if err != nil {
		return err
	}
	ctx.Printf("Added activity: %s (%s)\n", added.Name, added.ID)
	return nil
}

func (c *ActivityAddCmd) fill(ctx *cli.Context, a *models.Activity) error {
	p, err := cli.ParsePriority(c.Priority)
	if err != nil {
		return err
	}
	a.Priority = p
	if c.Date != "" {
		d, err := ctx.Date(c.Date)
		if err != nil {
			return err
		}
		a.Date = utils.DateKey(d)
	}
	if c.RecurrenceFlags.Set() {
		rec, err := c.Build()
		if err != nil {
			return err
		}
		a.Recurrence = rec
	}
	return nil
}

type ActivityListCmd struct {
	Category string `short:"c" help:"Only list activities in this category."`
}

func (c *ActivityListCmd) Run(ctx *cli.Context) error {
	cat, err := ctx.Store.GetCatalog()
	if err != nil {
		return err
	}
	today := ctx.Tracker.Today()

	tbl := cli.NewTable()
	tbl.AddRow(cli.Bold.Sprint("Name"), cli.Bold.Sprint("Category"), cli.Bold.Sprint("When"), cli.Bold.Sprint("Time"), cli.Bold.Sprint("Priority"), cli.Bold.Sprint("ID"))
	count := 0
	for _, a := range cat.AllActivities() {
		if c.Category != "" && a.CategoryID != c.Category && !strings.EqualFold(a.CategoryName, c.Category) {
			continue
		}
		when := utils.FormatRecurrence(a.EffectiveRecurrence())
		if !a.IsRecurring() {
			when = a.Date
			if when == "" {
				when = "anytime"
			}
			if utils.IsOverdue(a.Activity, today) {
				when = cli.Alert.Sprint(when + " (overdue)")
			}
		}
		tbl.AddRow(cli.Truncate(a.Name, 40), a.CategoryName, when, a.Time, string(a.Priority), cli.Faint.Sprint(a.ID))
		count++
	}
	if count == 0 {
		ctx.Println("No activities found.")
		return nil
	}
	ctx.Println(tbl)
	return nil
}

type ActivityEditCmd struct {
	Ref         string  `arg:"" help:"Activity id or name."`
	Name        *string `help:"New name."`
	Time        *string `help:"New time label (empty to clear)."`
	Duration    *string `help:"New duration label (empty to clear)."`
	Date        *string `help:"New due date (empty to clear)."`
	Priority    *string `help:"New priority."`
	Description *string `help:"New notes."`
	cli.RecurrenceFlags
}

func (c *ActivityEditCmd) Run(ctx *cli.Context) error {
	var edited models.Activity
	err := ctx.Tracker.UpdateCatalog(func(cat *models.Catalog) error {
		ref, err := catalog.FindActivity(*cat, c.Ref)
		if err != nil {
			return err
		}
		a := ref.Activity
		if c.Name != nil {
			if strings.TrimSpace(*c.Name) == "" {
				return fmt.Errorf("activity name cannot be empty")
			}
			a.Name = strings.TrimSpace(*c.Name)
		}
		if c.Time != nil {
			a.Time = *c.Time
		}
		if c.Duration != nil {
			a.Duration = *c.Duration
		}
		if c.Description != nil {
			a.Description = *c.Description
		}
		if c.Priority != nil {
			if a.Priority, err = cli.ParsePriority(*c.Priority); err != nil {
				return err
			}
		}
		if c.Date != nil {
			a.Date = ""
			if *c.Date != "" {
				d, err := ctx.Date(*c.Date)
				if err != nil {
					return err
				}
				a.Date = utils.DateKey(d)
			}
		}
		if c.RecurrenceFlags.Set() {
			rec, err := c.Build()
			if err != nil {
				return err
			}
			a.Recurrence = rec
			a.Recurring = false
		}
		edited = a
		return catalog.UpdateActivity(cat, a)
	})
	if err != nil {
		return err
	}
	ctx.Printf("Updated activity: %s\n", edited.Name)
	return nil
}

type ActivityDeleteCmd struct {
	Ref string `arg:"" help:"Activity id or name."`
}

func (c *ActivityDeleteCmd) Run(ctx *cli.Context) error {
	var name string
	err := ctx.Tracker.UpdateCatalog(func(cat *models.Catalog) error {
		ref, err := catalog.FindActivity(*cat, c.Ref)
		if err != nil {
			return err
		}
		name = ref.Name
		return catalog.DeleteActivity(cat, ref.ID)
	})
	if err != nil {
		return err
	}
	ctx.Printf("Deleted activity: %s\n", name)
	return nil
}

type ActivityToggleCmd struct {
	Ref  string `arg:"" help:"Activity id or name."`
	Date string `help:"Date (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *ActivityToggleCmd) Run(ctx *cli.Context) error {
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	done, err := ctx.Tracker.ToggleActivity(date, c.Ref)
	if err != nil {
		return err
	}
	state := "not done"
	if done {
		state = "done"
	}
	ctx.Printf("Activity %q marked %s for %s\n", c.Ref, state, utils.DateKey(date))
	return nil
}
