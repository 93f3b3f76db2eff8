package weekgrid

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/scheduler"
	"github.com/julianstephens/goaltrack/internal/timespec"
	"github.com/julianstephens/goaltrack/internal/utils"
)

var (
	dayStyle = lipgloss.NewStyle().Bold(true)

	todayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(16)

	laneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	categoryColors = map[models.CategoryType]lipgloss.Color{
		models.CategorySpiritual: "141",
		models.CategoryHealth:    "42",
		models.CategoryFitness:   "208",
		models.CategoryLearning:  "39",
		models.CategoryCareer:    "245",
		models.CategoryFinance:   "220",
		models.CategoryFamily:    "205",
		models.CategoryOther:     "252",
	}
)

func eventStyle(t models.CategoryType) lipgloss.Style {
	c, ok := categoryColors[t]
	if !ok {
		c = categoryColors[models.CategoryOther]
	}
	return lipgloss.NewStyle().Foreground(c)
}

type Model struct {
	viewport viewport.Model
	Week     *scheduler.WeekCalendar
	today    time.Time
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Week == nil {
		return "No week loaded."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetWeek(week scheduler.WeekCalendar, today time.Time) {
	m.Week = &week
	m.today = today
	m.Render()
	m.viewport.GotoTop()
}

// Render draws each day as a block: all-day items first, then timed events
// in start order with their overlap lane.
func (m *Model) Render() {
	if m.Week == nil {
		m.viewport.SetContent("No week loaded.")
		return
	}

	var b strings.Builder
	for _, day := range m.Week.Days {
		label := fmt.Sprintf("%s %s", utils.WeekdayShort(day.Date.Weekday()), day.Date.Format("Jan 2"))
		if utils.DateKey(day.Date) == utils.DateKey(m.today) {
			b.WriteString(todayStyle.Render(label+" · today") + "\n")
		} else {
			b.WriteString(dayStyle.Render(label) + "\n")
		}

		if len(day.AllDay)+len(day.Events) == 0 {
			b.WriteString(laneStyle.Render("  nothing scheduled") + "\n\n")
			continue
		}
		for _, e := range day.AllDay {
			fmt.Fprintf(&b, "  %s %s\n", timeStyle.Render("all day"), eventStyle(e.CategoryType).Render(e.Name))
		}

		events := append([]models.CalendarEvent(nil), day.Events...)
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].StartSlot != events[j].StartSlot {
				return events[i].StartSlot < events[j].StartSlot
			}
			return events[i].Column < events[j].Column
		})
		for _, e := range events {
			span := timespec.FormatSlot(e.StartSlot) + "-" + timespec.FormatSlot(e.StartSlot+e.DurationSlots)
			line := fmt.Sprintf("  %s %s", timeStyle.Render(span), eventStyle(e.CategoryType).Render(e.Name))
			if e.TotalColumns > 1 {
				line += " " + laneStyle.Render(fmt.Sprintf("lane %d/%d", e.Column+1, e.TotalColumns))
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}
