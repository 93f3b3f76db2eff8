package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/goaltrack/internal/constants"
	"github.com/julianstephens/goaltrack/internal/logger"
	"github.com/julianstephens/goaltrack/internal/progress"
	"github.com/julianstephens/goaltrack/internal/tracker"
	"github.com/julianstephens/goaltrack/internal/tui/components/daylist"
	"github.com/julianstephens/goaltrack/internal/tui/components/weekgrid"
	"github.com/julianstephens/goaltrack/internal/utils"
)

// tabCount is the number of tabbed states; StateAddHabit is modal.
const tabCount = 3

type HabitFormModel struct {
	Name     string
	Category string
	Time     string
	Numeric  bool
	Target   string
}

type Model struct {
	tracker   *tracker.Service
	state     constants.SessionState
	keys      KeyMap
	help      help.Model
	dayList   daylist.Model
	weekGrid  weekgrid.Model
	day       tracker.DayView
	report    *progress.Report
	date      time.Time
	weekDate  time.Time
	form      *huh.Form
	habitForm *HabitFormModel
	status    string
	quitting  bool
	width     int
	height    int
}

func NewModel(svc *tracker.Service) Model {
	today := svc.Today()
	m := Model{
		tracker:  svc,
		state:    constants.StateToday,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		dayList:  daylist.New(0, 0),
		weekGrid: weekgrid.New(0, 0),
		date:     today,
		weekDate: today,
	}
	m.reloadAll()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateToday:
		dk := daylist.DefaultKeyMap()
		keys = append(keys, dk.Toggle, dk.Increase, dk.Decrease, dk.Add, m.keys.Prev, m.keys.Next)
	case constants.StateWeek:
		keys = append(keys, m.keys.Prev, m.keys.Next, m.keys.Today)
	case constants.StateProgress:
		keys = append(keys, m.keys.Reload)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Prev, m.keys.Next, m.keys.Today, m.keys.Reload}

	var actions []key.Binding
	if m.state == constants.StateToday {
		dk := daylist.DefaultKeyMap()
		actions = []key.Binding{dk.Toggle, dk.Increase, dk.Decrease, dk.Add}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) fail(action string, err error) {
	logger.Error("TUI action failed", "action", action, "error", err)
	m.status = "⚠ " + action + ": " + err.Error()
}

func (m *Model) reloadDay() {
	view, err := m.tracker.DayView(m.date)
	if err != nil {
		m.fail("load day", err)
		return
	}
	m.day = view
	m.dayList.SetDay(view)
}

func (m *Model) reloadWeek() {
	week, err := m.tracker.Week(m.weekDate)
	if err != nil {
		m.fail("load week", err)
		return
	}
	m.weekGrid.SetWeek(week, m.tracker.Today())
}

func (m *Model) reloadProgress() {
	report, err := m.tracker.Progress(m.tracker.Today(), 0)
	if err != nil {
		m.fail("load progress", err)
		return
	}
	m.report = &report
}

func (m *Model) reloadAll() {
	m.reloadDay()
	m.reloadWeek()
	m.reloadProgress()
}

// shift moves the Today tab by days or the Week tab by weeks.
func (m *Model) shift(n int) {
	switch m.state {
	case constants.StateToday:
		m.date = utils.AddDays(m.date, n)
		m.reloadDay()
	case constants.StateWeek:
		m.weekDate = utils.AddDays(m.weekDate, 7*n)
		m.reloadWeek()
	}
}

func (m *Model) jumpToday() {
	today := m.tracker.Today()
	m.date = today
	m.weekDate = today
	m.reloadDay()
	m.reloadWeek()
}

func (m *Model) resize() {
	// tabs, header, status and help take six lines
	h := max(m.height-8, 1)
	w := max(m.width-4, 1)
	m.dayList.SetSize(w, h)
	m.weekGrid.SetSize(w, h)
}
