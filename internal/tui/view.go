package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/progress"
)

var tabNames = []string{"Today", "Week", "Progress"}

func (m Model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	if m.state == constants.StateAddHabit {
		return docStyle.Render(titleStyle.Render("New habit") + "\n\n" + m.form.View() + "\n" +
			m.statusLine() + faintStyle.Render("esc to cancel"))
	}

	var tabs []string
	for i, name := range tabNames {
		if constants.SessionState(i) == m.state {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var body string
	switch m.state {
	case constants.StateToday:
		body = m.todayHeader() + "\n\n" + m.dayList.View()
	case constants.StateWeek:
		title := "Week"
		if m.weekGrid.Week != nil {
			title = "Week of " + m.weekGrid.Week.Start.Format("Jan 2, 2006")
		}
		body = titleStyle.Render(title) + "\n\n" + m.weekGrid.View()
	case constants.StateProgress:
		body = m.progressView()
	}

	return docStyle.Render(header + "\n\n" + body + "\n" + m.statusLine() + m.help.View(m))
}

func (m Model) statusLine() string {
	if m.status == "" {
		return "\n"
	}
	if strings.HasPrefix(m.status, "⚠") {
		return warningStyle.Render(m.status) + "\n"
	}
	return faintStyle.Render(m.status) + "\n"
}

func (m Model) todayHeader() string {
	stat := m.day.Stat
	line := titleStyle.Render(m.date.Format("Monday, January 2")) + "  "
	if stat.Total == 0 {
		return line + faintStyle.Render("no habits due")
	}
	line += fmt.Sprintf("%s %s  %d/%d habits", bar(stat.Percent, 20),
		rateStyle(stat.Percent).Render(fmt.Sprintf("%d%%", stat.Percent)), stat.Done, stat.Total)
	if m.day.Streak > 0 {
		line += "  " + fmt.Sprintf("🔥 %s", cli.Plural(m.day.Streak, "day"))
	}
	return line
}

func (m Model) progressView() string {
	r := m.report
	if r == nil {
		return faintStyle.Render("No progress data.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Overview") + "\n")
	fmt.Fprintf(&b, "Today      %s %s\n", bar(r.Today.Percent, 20), rateStyle(r.Today.Percent).Render(fmt.Sprintf("%d%%", r.Today.Percent)))
	fmt.Fprintf(&b, "Streak     %s\n", cli.Plural(r.Streak, "day"))
	fmt.Fprintf(&b, "30 days    %d%% average, %d perfect, %d active\n",
		r.Monthly.AvgPercent, r.Monthly.PerfectDays, r.Monthly.ActiveDays)
	b.WriteString("           " + sparkline(r.Monthly.Days) + "\n\n")

	if len(r.Weeks) > 0 {
		b.WriteString(titleStyle.Render("Weeks") + "\n")
		for _, w := range r.Weeks {
			fmt.Fprintf(&b, "%s  %s %3d%%\n", w.Start.Format("Jan 02"), bar(w.AvgPercent, 14), w.AvgPercent)
		}
		b.WriteString("\n")
	}

	if len(r.Habits) > 0 {
		b.WriteString(titleStyle.Render("Habits") + "\n")
		for _, h := range r.Habits {
			name := truncate.StringWithTail(h.Name, 24, "…")
			fmt.Fprintf(&b, "%-24s %s %s\n", name, bar(h.Rate, 14),
				rateStyle(h.Rate).Render(fmt.Sprintf("%3d%%", h.Rate)))
		}
		b.WriteString("\n")
	}

	rank := r.HabitRanking
	if len(rank.Struggling) > 0 {
		b.WriteString(dangerStyle.Render("Needs attention: ") + rateNames(rank.Struggling) + "\n")
	}
	if len(rank.Strong) > 0 {
		b.WriteString(rateStyle(100).Render("Going strong: ") + rateNames(rank.Strong) + "\n")
	}
	return b.String()
}

// sparkline draws one block per day, blank for days without data.
func sparkline(days []progress.DayStat) string {
	levels := []rune("▁▂▃▄▅▆▇█")
	var b strings.Builder
	for _, d := range days {
		if !d.HasData {
			b.WriteString(faintStyle.Render("·"))
			continue
		}
		i := d.Percent * (len(levels) - 1) / 100
		b.WriteString(rateStyle(d.Percent).Render(string(levels[i])))
	}
	return b.String()
}

func rateNames(rates []progress.ItemRate) string {
	names := make([]string, len(rates))
	for i, r := range rates {
		names[i] = fmt.Sprintf("%s (%d%%)", r.Name, r.Rate)
	}
	return strings.Join(names, ", ")
}
