package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lawnlog/internal/cli/activities"
	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/schedule"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateDashboard:
		content = docStyle.Render(m.dashboardModel.View())
	case constants.StateSchedule:
		content = docStyle.Render(m.viewSchedule())
	case constants.StateLog:
		content = docStyle.Render(m.activityList.View())
	case constants.StateCalendar:
		content = docStyle.Render(activities.RenderMonth(m.month, m.today, m.monthIdx))
	case constants.StateAddActivity:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		statusStyle.Render(m.status),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var rendered []string
	for i, title := range tabTitles {
		if m.activeTab() == constants.SessionState(i) {
			rendered = append(rendered, activeTabStyle.Render(title))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// activeTab maps modal states back to the tab they were opened from.
func (m Model) activeTab() constants.SessionState {
	switch m.state {
	case constants.StateAddActivity, constants.StateConfirmDelete:
		return constants.StateLog
	}
	return m.state
}

func (m Model) viewSchedule() string {
	if len(m.entries) == 0 {
		return "No seasonal tasks."
	}
	var b strings.Builder
	for i, e := range m.entries {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		b.WriteString(cursor + scheduleLine(e) + "\n")
	}
	return b.String()
}

func scheduleLine(e schedule.Entry) string {
	mark := "[ ]"
	if e.Done {
		mark = "[x]"
	}
	window := e.Task.Start.Format(constants.DisplayDateFormat) + " – " + e.Task.End.Format(constants.DisplayDateFormat)
	line := fmt.Sprintf("%s %-28s %s", mark, e.Task.Label, window)
	switch {
	case e.Done:
		return doneStyle.Render(line)
	case e.Active:
		return activeStyle.Render(line + "  (open now)")
	case e.Passed:
		return passedStyle.Render(line)
	case e.DaysAway > 0:
		return line + fmt.Sprintf("  (in %d days)", e.DaysAway)
	}
	return line
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this activity?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
