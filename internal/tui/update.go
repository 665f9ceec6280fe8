package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/models"
	"github.com/julianstephens/lawnlog/internal/tui/components/activitylist"
	"github.com/julianstephens/lawnlog/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		// tabs, status and help lines
		body := max(msg.Height-v-3, 1)
		m.dashboardModel.SetSize(msg.Width-h, body)
		m.activityList.SetSize(msg.Width-h, body)
		return m, nil

	case dashboardMsg:
		if msg.err != nil {
			m.dashboardModel.SetDashboard(nil, msg.err)
		} else {
			d := msg.data
			m.dashboardModel.SetDashboard(&d, nil)
		}
		if msg.warning != "" {
			m.status = msg.warning
		}
		return m, nil

	case activitylist.AddActivityMsg:
		m.activityForm = &ActivityFormModel{
			Type: models.ActivityMow,
			Date: m.today.Format(constants.DateFormat),
		}
		m.form = newActivityForm(m.activityForm)
		m.state = constants.StateAddActivity
		return m, m.form.Init()

	case activitylist.DeleteActivityMsg:
		m.activityToDeleteID = msg.ID
		m.state = constants.StateConfirmDelete
		return m, nil

	case activitylist.RestoreActivityMsg:
		if err := m.svc.Store.RestoreActivity(msg.ID); err != nil {
			m.status = fmt.Sprintf("Restore failed: %v", err)
			return m, nil
		}
		m.reload()
		m.status = "Activity restored"
		return m, m.loadDashboard(false)
	}

	switch m.state {
	case constants.StateAddActivity:
		return m.updateAddActivity(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !(m.state == constants.StateLog && m.activityList.Filtering()) {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabs
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabs) % tabs
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateDashboard:
		if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Refresh) {
			m.dashboardModel.SetLoading()
			return m, m.loadDashboard(true)
		}
		m.dashboardModel, cmd = m.dashboardModel.Update(msg)
	case constants.StateSchedule:
		if msg, ok := msg.(tea.KeyMsg); ok {
			m.updateSchedule(msg)
		}
	case constants.StateLog:
		m.activityList, cmd = m.activityList.Update(msg)
	case constants.StateCalendar:
		if msg, ok := msg.(tea.KeyMsg); ok {
			m.updateCalendar(msg)
		}
	}
	return m, cmd
}

func (m *Model) updateSchedule(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.cursor >= len(m.entries) {
			return
		}
		task := m.entries[m.cursor].Task
		done, err := m.svc.ToggleTask(task.Key, m.today)
		if err != nil {
			m.status = fmt.Sprintf("Toggle failed: %v", err)
			return
		}
		m.reload()
		if done {
			m.status = task.Label + " marked done"
		} else {
			m.status = task.Label + " marked not done"
		}
	}
}

func (m *Model) updateCalendar(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.month = m.month.AddDate(0, -1, 0)
	case key.Matches(msg, m.keys.Right):
		m.month = m.month.AddDate(0, 1, 0)
	case key.Matches(msg, m.keys.Today):
		m.month = utils.StartOfMonth(m.today)
	default:
		return
	}
	m.loadMonth()
}

func (m Model) updateAddActivity(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = constants.StateLog
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		a, err := m.svc.LogActivity(m.activityForm.Type, m.activityForm.Date, m.activityForm.Notes)
		if err != nil {
			// stay in the form so the entry can be corrected
			m.status = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.state = constants.StateLog
		m.reload()
		m.status = fmt.Sprintf("Logged %s on %s", a.Type.Label(), a.Date)
		return m, m.loadDashboard(false)
	case huh.StateAborted:
		m.state = constants.StateLog
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		id := m.activityToDeleteID
		m.activityToDeleteID = ""
		m.state = constants.StateLog
		if err := m.svc.Store.DeleteActivity(id); err != nil {
			m.status = fmt.Sprintf("Delete failed: %v", err)
			return m, nil
		}
		m.reload()
		m.status = "Activity deleted (press 'u' to restore)"
		return m, m.loadDashboard(false)
	case "n", "N", "esc", "q":
		m.activityToDeleteID = ""
		m.state = constants.StateLog
	}
	return m, nil
}

func newActivityForm(fm *ActivityFormModel) *huh.Form {
	options := make([]huh.Option[models.ActivityType], len(models.ActivityTypes))
	for i, t := range models.ActivityTypes {
		options[i] = huh.NewOption(t.Label(), t)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.ActivityType]().
				Title("Activity").
				Options(options...).
				Value(&fm.Type),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&fm.Date).
				Validate(func(s string) error {
					if !utils.ValidateDateFormat(s) {
						return fmt.Errorf("date must be YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().
				Title("Notes").
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}
