package season

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lawnlog/internal/advisory"
	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/models"
	"github.com/julianstephens/lawnlog/internal/schedule"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	blockStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	urgentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func window(t schedule.Task) string {
	return fmt.Sprintf("%s – %s", t.Start.Format(constants.DisplayDateFormat), t.End.Format(constants.DisplayDateFormat))
}

// describeStep renders a next-step result as one line
func describeStep(step schedule.Step) string {
	if !step.Found() {
		return mutedStyle.Render("Season complete. Nothing left on the calendar.")
	}
	t := step.Task
	switch {
	case step.DaysUntilStart == 0:
		return urgentStyle.Render(fmt.Sprintf("%s is open now (%s)", t.Label, window(*t)))
	case step.IsUrgent:
		return urgentStyle.Render(fmt.Sprintf("%s starts in %d days (%s)", t.Label, step.DaysUntilStart, window(*t)))
	default:
		return fmt.Sprintf("%s starts in %d days (%s)", t.Label, step.DaysUntilStart, window(*t))
	}
}

func describeAdvice(a advisory.Advice) string {
	mark := okStyle.Render("✓")
	if !a.Allowed {
		mark = blockStyle.Render("✗")
	}
	return fmt.Sprintf("%s %-10s %s", mark, a.Category.Label(), a.Reason)
}

func describeWeather(w models.WeatherSnapshot) string {
	s := fmt.Sprintf("%.0f°F, wind %.0f mph, %s. High %.0f°F / low %.0f°F",
		w.TemperatureF, w.WindSpeedMph, w.Conditions, w.HighTodayF, w.LowTodayF)
	if w.RainTodayInches > 0 || w.RainNext48hInches > 0 {
		s += fmt.Sprintf(". Rain today %.2f in, next 48h %.2f in", w.RainTodayInches, w.RainNext48hInches)
	}
	return s
}
