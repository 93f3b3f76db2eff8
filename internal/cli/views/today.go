package views

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/tracker"
)

type TodayCmd struct {
	Date string `help:"Day to show (YYYY-MM-DD, today, yesterday, tomorrow)." default:"today"`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	view, err := ctx.Tracker.DayView(date)
	if err != nil {
		return err
	}
	renderDay(ctx, view)
	return nil
}

func renderDay(ctx *cli.Context, view tracker.DayView) {
	ctx.Println(cli.Head.Sprint(view.Date.Format("Monday, January 2 2006")))
	ctx.Printf("%s %s  %d/%d habits  streak %s\n\n",
		cli.Bar(view.Stat.Percent, 20), cli.Pct(view.Stat.Percent),
		view.Stat.Done, view.Stat.Total, cli.Plural(view.Streak, "day"))

	if len(view.Habits) == 0 {
		ctx.Println(cli.Faint.Sprint("No habits due."))
	} else {
		tbl := cli.NewTable()
		tbl.AddRow("", cli.Bold.Sprint("Habit"), cli.Bold.Sprint("Category"), cli.Bold.Sprint("Time"), cli.Bold.Sprint("Value"))
		for _, h := range view.Habits {
			tbl.AddRow(cli.Check(h.Done), cli.Truncate(h.Name, 36), h.CategoryName, h.Time, habitValue(h))
		}
		ctx.Println(tbl)
	}
	ctx.Println()

	if len(view.Activities) == 0 {
		ctx.Println(cli.Faint.Sprint("No activities planned."))
	} else {
		tbl := cli.NewTable()
		tbl.AddRow("", cli.Bold.Sprint("Activity"), cli.Bold.Sprint("Priority"), cli.Bold.Sprint("Time"), "")
		for _, a := range view.Activities {
			note := ""
			if a.Overdue {
				note = cli.Alert.Sprintf("overdue since %s", a.Date)
			}
			tbl.AddRow(cli.Check(a.Done), cli.Truncate(a.Name, 36), string(a.Priority), a.Time, note)
		}
		ctx.Println(tbl)
	}

	if !view.Reflection.IsEmpty() {
		ctx.Println()
		renderReflection(ctx, view.Reflection)
	}
}

func habitValue(h tracker.HabitItem) string {
	if !h.IsNumeric() {
		return ""
	}
	s := fmt.Sprintf("%g/%g", h.Value.Float(), h.TargetValue())
	if h.Unit != "" {
		s += " " + h.Unit
	}
	return s
}

func renderReflection(ctx *cli.Context, r models.Reflection) {
	for _, part := range []struct{ label, text string }{
		{"Went well", r.WentWell},
		{"To improve", r.Improve},
		{"Grateful for", r.Gratitude},
	} {
		if strings.TrimSpace(part.text) == "" {
			continue
		}
		ctx.Println(cli.Bold.Sprint(part.label))
		ctx.Println(indent(wordwrap.String(part.text, 72), "  "))
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
