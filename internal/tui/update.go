package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/goaltrack/internal/catalog"
	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/models"
	"github.com/julianstephens/goaltrack/internal/tui/components/daylist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == constants.StateAddHabit {
		return m, m.handleAddHabit(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case daylist.ToggleHabitMsg:
		if _, err := m.tracker.ToggleHabit(m.date, msg.ID); err != nil {
			m.fail("toggle habit", err)
		}
		m.afterMark()
		return m, nil

	case daylist.AdjustHabitMsg:
		if _, err := m.tracker.AdjustHabitValue(m.date, msg.ID, msg.Delta); err != nil {
			m.fail("adjust habit", err)
		}
		m.afterMark()
		return m, nil

	case daylist.ToggleActivityMsg:
		if _, err := m.tracker.ToggleActivity(m.date, msg.ID); err != nil {
			m.fail("toggle activity", err)
		}
		m.afterMark()
		return m, nil

	case daylist.AddHabitMsg:
		return m, m.openHabitForm()

	case tea.KeyMsg:
		if m.state == constants.StateToday && m.dayList.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.shift(-1)
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.shift(1)
			return m, nil
		case key.Matches(msg, m.keys.Today):
			m.jumpToday()
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.status = ""
			m.reloadAll()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateToday:
		m.dayList, cmd = m.dayList.Update(msg)
	case constants.StateWeek:
		m.weekGrid, cmd = m.weekGrid.Update(msg)
	}
	return m, cmd
}

// afterMark refreshes what a mark can change: the day and the statistics.
func (m *Model) afterMark() {
	m.reloadDay()
	m.reloadProgress()
}

func (m *Model) openHabitForm() tea.Cmd {
	cat, err := m.tracker.Store().GetCatalog()
	if err != nil {
		m.fail("load catalog", err)
		return nil
	}
	if len(cat.RoutineCategories) == 0 {
		m.status = "⚠ add a routine category first: goaltrack category add <name>"
		return nil
	}

	options := make([]huh.Option[string], len(cat.RoutineCategories))
	for i, rc := range cat.RoutineCategories {
		options[i] = huh.NewOption(rc.Name, rc.ID)
	}
	m.habitForm = &HabitFormModel{Category: cat.RoutineCategories[0].ID}
	m.form = NewHabitForm(m.habitForm, options)
	m.state = constants.StateAddHabit
	return m.form.Init()
}

func NewHabitForm(fm *HabitFormModel, categories []huh.Option[string]) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Category").
				Options(categories...).
				Value(&fm.Category),
			huh.NewInput().
				Title("Time").
				Placeholder("6:30 AM, 7-8 PM, or blank").
				Value(&fm.Time),
			huh.NewConfirm().
				Title("Track a number?").
				Value(&fm.Numeric),
			huh.NewInput().
				Title("Daily target (numeric habits)").
				Placeholder("1").
				Value(&fm.Target).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
						return errors.New("target must be a number")
					}
					return nil
				}),
		),
	).WithShowHelp(false)
}

// habitFromForm builds the habit a completed form describes.
func habitFromForm(fm *HabitFormModel) models.Habit {
	h := models.Habit{
		Name: strings.TrimSpace(fm.Name),
		Time: strings.TrimSpace(fm.Time),
	}
	if fm.Numeric {
		h.TrackingType = models.TrackingNumber
		if t, err := strconv.ParseFloat(strings.TrimSpace(fm.Target), 64); err == nil {
			h.Target = &t
		}
	}
	return h
}

func (m *Model) handleAddHabit(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = constants.StateToday
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		h := habitFromForm(m.habitForm)
		err := m.tracker.UpdateCatalog(func(cat *models.Catalog) error {
			_, err := catalog.AddHabit(cat, m.habitForm.Category, h)
			return err
		})
		if err != nil {
			// Stay in the form so the user can fix it or cancel with esc.
			m.fail("add habit", err)
			m.form.State = huh.StateNormal
			return cmd
		}
		m.status = "Added habit " + h.Name
		m.state = constants.StateToday
		m.reloadAll()
	case huh.StateAborted:
		m.state = constants.StateToday
	}
	return cmd
}
