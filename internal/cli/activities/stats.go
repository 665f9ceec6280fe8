package activities

import (
	"fmt"

	"github.com/julianstephens/lawnlog/internal/cli"
)

type LogStatsCmd struct{}

func (c *LogStatsCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Service.Today()
	if err != nil {
		return err
	}
	cadence, err := ctx.Service.Cadence(today)
	if err != nil {
		return err
	}

	ctx.Printf("%-13s %5s %12s %10s %10s\n", "Type", "Count", "Last", "Days ago", "Every")
	for _, c := range cadence {
		if !c.HasHistory() {
			ctx.Printf("%-13s %5d %12s %10s %10s\n", c.Type.Label(), 0, "-", "-", "-")
			continue
		}
		every := "-"
		if c.HasRhythm() {
			every = fmt.Sprintf("%.1f±%.1fd", c.MeanInterval, c.StdDevInterval)
		}
		ctx.Printf("%-13s %5d %12s %10d %10s\n", c.Type.Label(), c.Count, c.Last, c.DaysSinceLast, every)
	}
	return nil
}
