package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lawnlog/internal/advisory"
	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/lawn"
	"github.com/julianstephens/lawnlog/internal/schedule"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("76")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(12)

	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	blockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	Data     *lawn.Dashboard
	Err      error
	loading  bool
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		loading:  true,
	}
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
	if m.loading {
		return mutedStyle.Render("Loading…")
	}
	if m.Err != nil {
		return blockedStyle.Render("Error: " + m.Err.Error())
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.refreshContent()
}

// SetLoading marks the dashboard as waiting for a fresh load.
func (m *Model) SetLoading() {
	m.loading = true
}

func (m *Model) SetDashboard(d *lawn.Dashboard, err error) {
	m.loading = false
	m.Data = d
	m.Err = err
	m.refreshContent()
}

func (m *Model) refreshContent() {
	if m.Data == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(Render(*m.Data))
}

// Render lays out a dashboard as plain rows.
func Render(d lawn.Dashboard) string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}

	b.WriteString(titleStyle.Render(d.Phase.Label) + "\n")
	b.WriteString(d.Phase.Description + "\n\n")

	row("Date", d.Date)
	row("Tip", d.Tip)
	row("Next step", nextStep(d.NextStep))
	if d.LastMow.Count > 0 {
		row("Last mow", fmt.Sprintf("%s (%d days ago)", d.LastMow.Last, d.LastMow.DaysSinceLast))
	} else {
		row("Last mow", mutedStyle.Render("never"))
	}
	b.WriteString("\n")

	if d.Weather == nil {
		b.WriteString(mutedStyle.Render("Weather unavailable: "+d.WeatherError) + "\n")
		return b.String()
	}
	w := d.Weather
	row("Weather", fmt.Sprintf("%.0f°F, wind %.0f mph, %s", w.TemperatureF, w.WindSpeedMph, w.Conditions))
	row("Rain", fmt.Sprintf("today %.2f in, next 48h %.2f in", w.RainTodayInches, w.RainNext48hInches))
	if d.Advice != nil {
		b.WriteString("\n")
		for _, a := range d.Advice.All() {
			b.WriteString(advice(a) + "\n")
		}
	}
	return b.String()
}

func nextStep(step schedule.Step) string {
	if !step.Found() {
		return mutedStyle.Render("season complete")
	}
	t := step.Task
	window := t.Start.Format(constants.DisplayDateFormat) + " – " + t.End.Format(constants.DisplayDateFormat)
	switch {
	case step.DaysUntilStart == 0:
		return urgentStyle.Render(fmt.Sprintf("%s, open now (%s)", t.Label, window))
	case step.IsUrgent:
		return urgentStyle.Render(fmt.Sprintf("%s in %d days (%s)", t.Label, step.DaysUntilStart, window))
	default:
		return fmt.Sprintf("%s in %d days (%s)", t.Label, step.DaysUntilStart, window)
	}
}

func advice(a advisory.Advice) string {
	if a.Allowed {
		return okStyle.Render("✓ ") + fmt.Sprintf("%-10s %s", a.Category.Label(), a.Reason)
	}
	return blockedStyle.Render("✗ ") + fmt.Sprintf("%-10s %s", a.Category.Label(), a.Reason)
}
