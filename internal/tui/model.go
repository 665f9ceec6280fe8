package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/dayindex"
	"github.com/julianstephens/lawnlog/internal/lawn"
	"github.com/julianstephens/lawnlog/internal/logger"
	"github.com/julianstephens/lawnlog/internal/models"
	"github.com/julianstephens/lawnlog/internal/schedule"
	"github.com/julianstephens/lawnlog/internal/tui/components/activitylist"
	"github.com/julianstephens/lawnlog/internal/tui/components/dashboard"
	"github.com/julianstephens/lawnlog/internal/utils"
)

// tabs is the number of navigable views; the remaining states are modal.
const tabs = 4

var tabTitles = []string{"Dashboard", "Schedule", "Log", "Calendar"}

type ActivityFormModel struct {
	Type  models.ActivityType
	Date  string
	Notes string
}

type dashboardMsg struct {
	data    lawn.Dashboard
	err     error
	warning string
}

type Model struct {
	svc      *lawn.Service
	state    constants.SessionState
	keys     KeyMap
	help     help.Model
	quitting bool
	width    int
	height   int

	dashboardModel dashboard.Model
	activityList   activitylist.Model

	entries []schedule.Entry
	cursor  int

	today    time.Time
	month    time.Time
	monthIdx dayindex.Index

	form               *huh.Form
	activityForm       *ActivityFormModel
	activityToDeleteID string
	status             string
}

func NewModel(svc *lawn.Service) Model {
	m := Model{
		svc:            svc,
		state:          constants.StateDashboard,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		dashboardModel: dashboard.New(0, 0),
		activityList:   activitylist.New(nil, 0, 0),
	}
	if today, err := svc.Today(); err == nil {
		m.month = utils.StartOfMonth(today)
	} else {
		m.month = utils.StartOfMonth(time.Now())
	}
	m.reload()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateDashboard:
		keys = append(keys, m.keys.Refresh)
	case constants.StateSchedule:
		keys = append(keys, m.keys.Toggle)
	case constants.StateLog:
		keys = append(keys, activitylist.DefaultKeyMap().Add, activitylist.DefaultKeyMap().Delete)
	case constants.StateCalendar:
		keys = append(keys, m.keys.Left, m.keys.Right)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case constants.StateDashboard:
		actions = []key.Binding{m.keys.Refresh}
	case constants.StateSchedule:
		actions = []key.Binding{m.keys.Toggle}
	case constants.StateLog:
		lk := activitylist.DefaultKeyMap()
		actions = []key.Binding{lk.Add, lk.Delete, lk.Restore}
	case constants.StateCalendar:
		actions = []key.Binding{m.keys.Left, m.keys.Right, m.keys.Today}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return m.loadDashboard(false)
}

// loadDashboard fetches the dashboard off the update loop since it may hit
// the network for weather.
func (m Model) loadDashboard(refresh bool) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx := context.Background()
		var warning string
		if refresh {
			if _, err := svc.RefreshForecast(ctx); err != nil {
				logger.Warn("Weather refresh failed", "error", err)
				warning = err.Error()
			}
		}
		now, err := svc.Today()
		if err != nil {
			return dashboardMsg{err: err}
		}
		d, err := svc.Dashboard(ctx, now)
		return dashboardMsg{data: d, err: err, warning: warning}
	}
}

// reload refreshes everything read from local storage.
func (m *Model) reload() {
	m.status = ""
	now, err := m.svc.Today()
	if err != nil {
		m.status = err.Error()
		return
	}
	m.today = utils.StartOfDay(now)

	entries, err := m.svc.Schedule(now)
	if err != nil {
		m.status = err.Error()
	} else {
		m.entries = entries
		if m.cursor >= len(entries) {
			m.cursor = max(len(entries)-1, 0)
		}
	}

	acts, err := m.svc.Store.GetAllActivities(true)
	if err != nil {
		m.status = err.Error()
	} else {
		m.activityList.SetActivities(acts)
	}

	m.loadMonth()
}

func (m *Model) loadMonth() {
	idx, err := m.svc.MonthIndex(m.month)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.monthIdx = idx
}
