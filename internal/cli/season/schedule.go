package season

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/lawnlog/internal/cli"
	"github.com/julianstephens/lawnlog/internal/schedule"
)

type ScheduleListCmd struct {
	Date string `help:"Annotate the season as of this date (YYYY-MM-DD)."`
	JSON bool   `help:"Print the season as JSON."`
	YAML bool   `name:"yaml" help:"Print the season as a YAML file suitable for the season_file setting."`
}

func (c *ScheduleListCmd) Validate() error {
	if c.JSON && c.YAML {
		return fmt.Errorf("--json and --yaml are mutually exclusive")
	}
	return nil
}

func (c *ScheduleListCmd) Run(ctx *cli.Context) error {
	now, err := ctx.Service.ParseDay(c.Date)
	if err != nil {
		return err
	}

	if c.YAML {
		cal, err := ctx.Service.Calendar(now)
		if err != nil {
			return err
		}
		data, err := schedule.Encode(now.Year(), cal.Tasks())
		if err != nil {
			return err
		}
		ctx.Printf("%s", data)
		return nil
	}

	entries, err := ctx.Service.Schedule(now)
	if err != nil {
		return err
	}

	if c.JSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		ctx.Println(string(data))
		return nil
	}

	for _, e := range entries {
		ctx.Println(formatEntry(e))
	}
	return nil
}

func formatEntry(e schedule.Entry) string {
	mark := "[ ]"
	if e.Done {
		mark = okStyle.Render("[x]")
	}
	status := ""
	switch {
	case e.Active:
		status = urgentStyle.Render("active")
	case e.Passed:
		status = mutedStyle.Render("passed")
	case e.DaysAway > 0:
		status = fmt.Sprintf("in %d days", e.DaysAway)
	}
	return fmt.Sprintf("%s %-22s %-16s %-12s %s", mark, e.Task.Label, window(e.Task), status, mutedStyle.Render(e.Task.Key))
}

type ScheduleNextCmd struct {
	Date string `help:"Evaluate as of this date (YYYY-MM-DD)."`
}

func (c *ScheduleNextCmd) Run(ctx *cli.Context) error {
	now, err := ctx.Service.ParseDay(c.Date)
	if err != nil {
		return err
	}
	step, err := ctx.Service.NextStep(now)
	if err != nil {
		return err
	}
	ctx.Println(describeStep(step))
	if step.Found() && step.Task.Description != "" {
		ctx.Println(mutedStyle.Render(step.Task.Description))
	}
	return nil
}

// ScheduleDoneCmd toggles the completion mark of a task
type ScheduleDoneCmd struct {
	Key string `arg:"" help:"Task key, as shown by 'schedule list'."`
}

func (c *ScheduleDoneCmd) Run(ctx *cli.Context) error {
	now, err := ctx.Service.Today()
	if err != nil {
		return err
	}
	done, err := ctx.Service.ToggleTask(c.Key, now)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	if done {
		ctx.Printf("✓ Marked %s done\n", c.Key)
	} else {
		ctx.Printf("Cleared done mark on %s\n", c.Key)
	}
	return nil
}
