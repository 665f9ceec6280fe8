package activities

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lawnlog/internal/cli"
	"github.com/julianstephens/lawnlog/internal/dayindex"
	"github.com/julianstephens/lawnlog/internal/models"
	"github.com/julianstephens/lawnlog/internal/utils"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	todayStyle  = lipgloss.NewStyle().Reverse(true)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// badges are one-letter markers per activity type
var badges = map[models.ActivityType]string{
	models.ActivityMow:         "M",
	models.ActivityScalp:       "S",
	models.ActivityFertilize:   "F",
	models.ActivityPreEmergent: "P",
	models.ActivityWater:       "W",
	models.ActivityAerate:      "A",
}

const cellWidth = 7

type LogCalendarCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *LogCalendarCmd) Validate() error {
	if c.Month == "" {
		return nil
	}
	if _, err := time.Parse("2006-01", c.Month); err != nil {
		return fmt.Errorf("invalid month %q (expected YYYY-MM)", c.Month)
	}
	return nil
}

func (c *LogCalendarCmd) Run(ctx *cli.Context) error {
	month, err := monthOf(ctx, c.Month)
	if err != nil {
		return err
	}
	today, err := ctx.Service.Today()
	if err != nil {
		return err
	}
	idx, err := ctx.Service.MonthIndex(month)
	if err != nil {
		return err
	}
	ctx.Print(RenderMonth(month, utils.StartOfDay(today), idx))
	return nil
}

// RenderMonth draws a Sunday-first month grid with up to three badges per day.
func RenderMonth(month, today time.Time, idx dayindex.Index) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(month.Format("January 2006")))
	b.WriteString("\n")
	for _, d := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		b.WriteString(fmt.Sprintf("%-*s", cellWidth, d))
	}
	b.WriteString("\n")

	for _, week := range dayindex.MonthGrid(month) {
		for _, day := range week {
			if day.IsZero() {
				b.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			num := fmt.Sprintf("%2d", day.Day())
			if day.Equal(today) {
				num = todayStyle.Render(num)
			}
			marks := ""
			for _, t := range idx.Sample(day) {
				marks += badges[t]
			}
			if marks == "" {
				marks = emptyStyle.Render("·")
				b.WriteString(num + " " + marks + strings.Repeat(" ", cellWidth-4))
				continue
			}
			b.WriteString(num + " " + marks + strings.Repeat(" ", cellWidth-3-len(marks)))
		}
		b.WriteString("\n")
	}

	b.WriteString(emptyStyle.Render("M mow  S scalp  F fertilize  P pre-emergent  W water  A aerate"))
	b.WriteString("\n")
	return b.String()
}
