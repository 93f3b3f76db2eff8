package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/goaltrack/internal/catalog"
	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/utils"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a habit to a routine category."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	Toggle HabitToggleCmd `cmd:"" help:"Toggle a habit for a day."`
	Set    HabitSetCmd    `cmd:"" help:"Record a numeric habit's value for a day."`
}

// NumberFlags configure numeric tracking.
type NumberFlags struct {
	Numeric bool     `help:"Track a number instead of a checkbox."`
	Unit    string   `help:"Unit shown next to numeric values."`
	Target  *float64 `help:"Value that counts as done (default 1)."`
	Min     *float64 `help:"Lowest accepted value (default 0)."`
	Max     *float64 `help:"Highest accepted value (default 100)."`
}

func (f NumberFlags) apply(h *models.Habit) {
	if f.Numeric {
		h.TrackingType = models.TrackingNumber
	}
	if f.Unit != "" {
		h.Unit = f.Unit
	}
	if f.Target != nil {
		h.Target = f.Target
	}
	if f.Min != nil {
		h.Min = f.Min
	}
	if f.Max != nil {
		h.Max = f.Max
	}
}

type HabitAddCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Category string `short:"c" required:"" help:"Routine category id or name."`
	Time     string `help:"Time label, e.g. '6:30 AM' or '7-8 PM'."`
	Duration string `help:"Duration label, e.g. '15 min'."`
	cli.RecurrenceFlags
	NumberFlags
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	h := models.Habit{
		Name:     strings.TrimSpace(c.Name),
		Time:     c.Time,
		Duration: c.Duration,
	}
	if h.Name == "" {
		return fmt.Errorf("habit name is required")
	}
	if c.RecurrenceFlags.Set() {
		rec, err := c.Build()
		if err != nil {
			return err
		}
		h.Recurrence = rec
	}
	c.NumberFlags.apply(&h)

	var added models.Habit
	err := ctx.Tracker.UpdateCatalog(func(cat *models.Catalog) error {
		var err error
		added, err = catalog.AddHabit(cat, c.Category, h)
		return err
	})
	if err != nil {
		return err
	}
	ctx.Printf("Added habit: %s (%s)\n", added.Name, added.ID)
	return nil
}

type HabitListCmd struct {
	Category string `short:"c" help:"Only list habits in this category."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	cat, err := ctx.Store.GetCatalog()
	if err != nil {
		return err
	}

	tbl := cli.NewTable()
	tbl.AddRow(cli.Bold.Sprint("Name"), cli.Bold.Sprint("Category"), cli.Bold.Sprint("Time"), cli.Bold.Sprint("Repeats"), cli.Bold.Sprint("Tracking"), cli.Bold.Sprint("ID"))
	count := 0
	for _, h := range cat.AllHabits() {
		if c.Category != "" && h.CategoryID != c.Category && !strings.EqualFold(h.CategoryName, c.Category) {
			continue
		}
		tbl.AddRow(h.Name, h.CategoryName, h.Time, utils.FormatRecurrence(h.EffectiveRecurrence()), tracking(h.Habit), cli.Faint.Sprint(h.ID))
		count++
	}
	if count == 0 {
		ctx.Println("No habits found.")
		return nil
	}
	ctx.Println(tbl)
	return nil
}

func tracking(h models.Habit) string {
	if !h.IsNumeric() {
		return "check"
	}
	lo, hi := h.Bounds()
	s := fmt.Sprintf("≥ %g", h.TargetValue())
	if h.Unit != "" {
		s += " " + h.Unit
	}
	return fmt.Sprintf("%s [%g-%g]", s, lo, hi)
}

type HabitEditCmd struct {
	Ref      string  `arg:"" help:"Habit id or name."`
	Name     *string `help:"New name."`
	Time     *string `help:"New time label (empty to clear)."`
	Duration *string `help:"New duration label (empty to clear)."`
	Boolean  bool    `help:"Switch back to checkbox tracking."`
	cli.RecurrenceFlags
	NumberFlags
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	var edited models.Habit
	err := ctx.Tracker.UpdateCatalog(func(cat *models.Catalog) error {
		ref, err := catalog.FindHabit(*cat, c.Ref)
		if err != nil {
			return err
		}
		h := ref.Habit
		if c.Name != nil {
			if strings.TrimSpace(*c.Name) == "" {
				return fmt.Errorf("habit name cannot be empty")
			}
			h.Name = strings.TrimSpace(*c.Name)
		}
		if c.Time != nil {
			h.Time = *c.Time
		}
		if c.Duration != nil {
			h.Duration = *c.Duration
		}
		if c.RecurrenceFlags.Set() {
			rec, err := c.Build()
			if err != nil {
				return err
			}
			h.Recurrence = rec
		}
		c.NumberFlags.apply(&h)
		if c.Boolean {
			h.TrackingType = models.TrackingBoolean
		}
		edited = h
		return catalog.UpdateHabit(cat, h)
	})
	if err != nil {
		return err
	}
	ctx.Printf("Updated habit: %s\n", edited.Name)
	return nil
}

type HabitDeleteCmd struct {
	Ref string `arg:"" help:"Habit id or name."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	var name string
	err := ctx.Tracker.UpdateCatalog(func(cat *models.Catalog) error {
		ref, err := catalog.FindHabit(*cat, c.Ref)
		if err != nil {
			return err
		}
		name = ref.Name
		return catalog.DeleteHabit(cat, ref.ID)
	})
	if err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s\n", name)
	return nil
}

type HabitToggleCmd struct {
	Ref  string `arg:"" help:"Habit id or name."`
	Date string `help:"Date (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	v, err := ctx.Tracker.ToggleHabit(date, c.Ref)
	if err != nil {
		return err
	}
	state := "unmarked"
	if v.Truthy() {
		state = "marked"
	}
	if v.IsNumber {
		state = "set to " + v.String()
	}
	ctx.Printf("Habit %q %s for %s\n", c.Ref, state, utils.DateKey(date))
	return nil
}

type HabitSetCmd struct {
	Ref   string  `arg:"" help:"Habit id or name."`
	Value float64 `arg:"" help:"Value to record."`
	Add   bool    `help:"Add the value to the current reading instead of replacing it."`
	Date  string  `help:"Date (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *HabitSetCmd) Run(ctx *cli.Context) error {
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	var v models.RoutineValue
	if c.Add {
		v, err = ctx.Tracker.AdjustHabitValue(date, c.Ref, c.Value)
	} else {
		v, err = ctx.Tracker.SetHabitValue(date, c.Ref, c.Value)
	}
	if err != nil {
		return err
	}
	ctx.Printf("Habit %q set to %s for %s\n", c.Ref, v.String(), utils.DateKey(date))
	return nil
}
