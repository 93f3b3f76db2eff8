package views

import (
	"fmt"
	"sort"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/timespec"
	"github.com/julianstephens/goaltrack/internal/utils"
)

type WeekCmd struct {
	Date string `help:"Any day in the week to show." default:"today"`
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	week, err := ctx.Tracker.Week(date)
	if err != nil {
		return err
	}

	end := utils.AddDays(week.Start, 6)
	ctx.Println(cli.Head.Sprintf("Week of %s – %s", week.Start.Format("Jan 2"), end.Format("Jan 2 2006")))
	for _, day := range week.Days {
		ctx.Println()
		label := fmt.Sprintf("%s %s", utils.WeekdayShort(day.Date.Weekday()), day.Date.Format("01-02"))
		if utils.DateKey(day.Date) == utils.DateKey(ctx.Tracker.Today()) {
			label += " (today)"
		}
		ctx.Println(cli.Bold.Sprint(label))

		if len(day.Events)+len(day.AllDay) == 0 {
			ctx.Println(cli.Faint.Sprint("  nothing scheduled"))
			continue
		}
		tbl := cli.NewTable()
		for _, e := range day.AllDay {
			tbl.AddRow("  all day", cli.Truncate(e.Name, 40), cli.Faint.Sprint(e.Kind), "")
		}
		events := append([]models.CalendarEvent(nil), day.Events...)
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].StartSlot != events[j].StartSlot {
				return events[i].StartSlot < events[j].StartSlot
			}
			return events[i].Column < events[j].Column
		})
		for _, e := range events {
			span := fmt.Sprintf("  %s-%s", timespec.FormatSlot(e.StartSlot), timespec.FormatSlot(e.StartSlot+e.DurationSlots))
			lane := ""
			if e.TotalColumns > 1 {
				lane = cli.Faint.Sprintf("lane %d/%d", e.Column+1, e.TotalColumns)
			}
			tbl.AddRow(span, cli.Truncate(e.Name, 40), cli.Faint.Sprint(e.Kind), lane)
		}
		ctx.Println(tbl)
	}
	return nil
}
