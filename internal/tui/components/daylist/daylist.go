package daylist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/goaltrack/internal/tracker"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type ToggleActivityMsg struct {
	ID string
}

// AdjustHabitMsg nudges a numeric habit by Delta.
type AdjustHabitMsg struct {
	ID    string
	Delta float64
}

// Item is one row of the checklist: a habit or an activity.
type Item struct {
	Habit    *tracker.HabitItem
	Activity *tracker.ActivityItem
}

func (i Item) done() bool {
	if i.Habit != nil {
		return i.Habit.Done
	}
	return i.Activity.Done
}

func (i Item) Title() string {
	mark := "○ "
	if i.done() {
		mark = "✓ "
	}
	if i.Habit != nil {
		return mark + i.Habit.Name
	}
	title := mark + i.Activity.Name
	if i.Activity.Overdue {
		title += " (overdue)"
	}
	return title
}

func (i Item) Description() string {
	var parts []string
	if i.Habit != nil {
		h := i.Habit
		parts = append(parts, h.CategoryName)
		if h.IsNumeric() {
			v := fmt.Sprintf("%g/%g", h.Value.Float(), h.TargetValue())
			if h.Unit != "" {
				v += " " + h.Unit
			}
			parts = append(parts, v)
		}
		if h.Time != "" {
			parts = append(parts, h.Time)
		}
		return strings.Join(parts, " · ")
	}
	a := i.Activity
	parts = append(parts, a.CategoryName, string(a.Priority)+" priority")
	if a.Time != "" {
		parts = append(parts, a.Time)
	}
	if a.Overdue {
		parts = append(parts, "due "+a.Date)
	}
	return strings.Join(parts, " · ")
}

func (i Item) FilterValue() string {
	if i.Habit != nil {
		return i.Habit.Name
	}
	return i.Activity.Name
}

type KeyMap struct {
	Toggle   key.Binding
	Increase key.Binding
	Decrease key.Binding
	Add      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		Increase: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "increase"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "decrease"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add habit"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Increase, keys.Decrease, keys.Add}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

// SetDay replaces the rows, habits first, keeping the cursor position.
func (m *Model) SetDay(view tracker.DayView) {
	items := make([]list.Item, 0, len(view.Habits)+len(view.Activities))
	for i := range view.Habits {
		items = append(items, Item{Habit: &view.Habits[i]})
	}
	for i := range view.Activities {
		items = append(items, Item{Activity: &view.Activities[i]})
	}
	m.list.SetItems(items)
}

func (m Model) Items() []list.Item {
	return m.list.Items()
}

func (m *Model) Select(index int) {
	m.list.Select(index)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		i, ok := m.list.SelectedItem().(Item)
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle) && ok:
			if i.Habit != nil {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID} }
			}
			return m, func() tea.Msg { return ToggleActivityMsg{ID: i.Activity.ID} }
		case key.Matches(msg, m.keys.Increase) && ok && i.Habit != nil && i.Habit.IsNumeric():
			return m, func() tea.Msg { return AdjustHabitMsg{ID: i.Habit.ID, Delta: 1} }
		case key.Matches(msg, m.keys.Decrease) && ok && i.Habit != nil && i.Habit.IsNumeric():
			return m, func() tea.Msg { return AdjustHabitMsg{ID: i.Habit.ID, Delta: -1} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  Nothing due on this day.\n  Press 'a' to add a habit."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
