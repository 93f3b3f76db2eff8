package views

import (
	"fmt"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/progress"
)

type StatsCmd struct {
	Date   string `help:"Compute statistics as of this day." default:"today"`
	Window int    `help:"Days in the per-item rate window (default from settings)."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	report, err := ctx.Tracker.Progress(date, c.Window)
	if err != nil {
		return err
	}

	ctx.Println(cli.Head.Sprint("Overview"))
	tbl := cli.NewTable()
	tbl.AddRow("Today", fmt.Sprintf("%s %s", cli.Bar(report.Today.Percent, 20), cli.Pct(report.Today.Percent)))
	tbl.AddRow("Streak", cli.Plural(report.Streak, "day"))
	tbl.AddRow("30-day average", fmt.Sprintf("%s %s", cli.Bar(report.Monthly.AvgPercent, 20), cli.Pct(report.Monthly.AvgPercent)))
	tbl.AddRow("Perfect days", fmt.Sprintf("%d of %d tracked", report.Monthly.PerfectDays, report.Monthly.ActiveDays))
	ctx.Println(tbl)
	ctx.Println(sparkline(report.Monthly.Days))

	ctx.Println()
	ctx.Println(cli.Head.Sprint("Weeks"))
	tbl = cli.NewTable()
	for _, w := range report.Weeks {
		tbl.AddRow(w.Start.Format("Jan 2"), cli.Bar(w.AvgPercent, 20), cli.Pct(w.AvgPercent))
	}
	ctx.Println(tbl)

	ctx.Println()
	ctx.Println(cli.Head.Sprint("Habits"))
	ctx.Println(rateTable(report.Habits))

	if len(report.Activities) > 0 {
		ctx.Println()
		ctx.Println(cli.Head.Sprint("Recurring activities"))
		ctx.Println(rateTable(report.Activities))
	}

	if len(report.Categories) > 0 {
		ctx.Println()
		ctx.Println(cli.Head.Sprint("Categories"))
		tbl = cli.NewTable()
		for _, cr := range report.Categories {
			tbl.AddRow(cr.Name, string(cr.Type), cli.Bar(cr.Rate, 20), cli.Pct(cr.Rate), fmt.Sprintf("%d/%d", cr.Completed, cr.Possible))
		}
		ctx.Println(tbl)
	}

	renderRanking(ctx, "Struggling", report.HabitRanking.Struggling)
	renderRanking(ctx, "Going strong", report.HabitRanking.Strong)
	return nil
}

func rateTable(rates []progress.ItemRate) fmt.Stringer {
	tbl := cli.NewTable()
	for _, r := range rates {
		tracked := cli.Faint.Sprint("no data")
		if r.Tracked > 0 {
			tracked = fmt.Sprintf("%d/%d", r.Completed, r.Tracked)
		}
		tbl.AddRow(cli.Truncate(r.Name, 32), r.Category, cli.Bar(r.Rate, 20), cli.Pct(r.Rate), tracked)
	}
	return tbl
}

func renderRanking(ctx *cli.Context, title string, rates []progress.ItemRate) {
	if len(rates) == 0 {
		return
	}
	ctx.Println()
	ctx.Println(cli.Head.Sprint(title))
	for _, r := range rates {
		ctx.Printf("  %s %s\n", cli.Pct(r.Rate), r.Name)
	}
}

var sparks = []rune("▁▂▃▄▅▆▇█")

// sparkline draws one cell per day; days without data are blank.
func sparkline(days []progress.DayStat) string {
	out := ""
	for _, d := range days {
		if !d.HasData {
			out += " "
			continue
		}
		idx := d.Percent * (len(sparks) - 1) / 100
		out += cli.RateColor(d.Percent).Sprint(string(sparks[idx]))
	}
	return out
}
