package activities

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/lawnlog/internal/cli"
	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/models"
	"github.com/julianstephens/lawnlog/internal/storage"
	"github.com/julianstephens/lawnlog/internal/utils"
)

type LogAddCmd struct {
	Type  string `arg:"" help:"Activity type (mow, scalp, fertilize, pre-emergent, water, aerate)."`
	Date  string `help:"Date of the work (YYYY-MM-DD). Defaults to today."`
	Notes string `help:"Free-form notes."`
}

func (c *LogAddCmd) Validate() error {
	if _, err := models.ParseActivityType(c.Type); err != nil {
		return err
	}
	if c.Date != "" && !utils.ValidateDateFormat(c.Date) {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", c.Date)
	}
	return nil
}

func (c *LogAddCmd) Run(ctx *cli.Context) error {
	typ, err := models.ParseActivityType(c.Type)
	if err != nil {
		return err
	}
	a, err := ctx.Service.LogActivity(typ, c.Date, c.Notes)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	ctx.Printf("✓ Logged %s on %s (id %s)\n", a.Type.Label(), a.Date, a.ID)
	return nil
}

type LogListCmd struct {
	From           string `help:"First day to include (YYYY-MM-DD). Defaults to 30 days ago."`
	To             string `help:"Last day to include (YYYY-MM-DD). Defaults to today."`
	Type           string `help:"Only show one activity type."`
	IncludeDeleted bool   `help:"Include deleted activities."`
}

func (c *LogListCmd) Validate() error {
	for _, d := range []string{c.From, c.To} {
		if d != "" && !utils.ValidateDateFormat(d) {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", d)
		}
	}
	if c.From != "" && c.To != "" && c.From > c.To {
		return fmt.Errorf("--from %s is after --to %s", c.From, c.To)
	}
	if c.Type != "" {
		if _, err := models.ParseActivityType(c.Type); err != nil {
			return err
		}
	}
	return nil
}

func (c *LogListCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Service.Today()
	if err != nil {
		return err
	}
	from, to := c.From, c.To
	if to == "" {
		to = today.Format(constants.DateFormat)
	}
	if from == "" {
		from = today.AddDate(0, 0, -30).Format(constants.DateFormat)
	}

	acts, err := ctx.Store.GetActivities(from, to, c.IncludeDeleted)
	if err != nil {
		return fmt.Errorf("failed to get activities: %w", err)
	}

	var filter models.ActivityType
	if c.Type != "" {
		filter, _ = models.ParseActivityType(c.Type)
	}

	shown := 0
	for _, a := range acts {
		if filter != "" && a.Type != filter {
			continue
		}
		shown++
		line := fmt.Sprintf("%s  %-13s %s", a.Date, a.Type.Label(), a.ID)
		if a.Notes != "" {
			line += "  " + a.Notes
		}
		if a.DeletedAt != nil {
			line += " (deleted)"
		}
		ctx.Println(line)
	}
	if shown == 0 {
		ctx.Printf("No activities between %s and %s.\n", from, to)
	}
	return nil
}

type LogDeleteCmd struct {
	ID string `arg:"" help:"Activity ID."`
}

func (c *LogDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteActivity(c.ID); err != nil {
		if errors.Is(err, storage.ErrAlreadyDeleted) {
			return fmt.Errorf("activity %s is already deleted", c.ID)
		}
		return err
	}
	ctx.PerformAutomaticBackup()
	ctx.Printf("Deleted activity %s (restore with 'lawnlog log restore %s')\n", c.ID, c.ID)
	return nil
}

type LogRestoreCmd struct {
	ID string `arg:"" help:"Activity ID."`
}

func (c *LogRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RestoreActivity(c.ID); err != nil {
		if errors.Is(err, storage.ErrNotDeleted) {
			return fmt.Errorf("activity %s is not deleted", c.ID)
		}
		return err
	}
	ctx.PerformAutomaticBackup()
	ctx.Printf("✓ Restored activity %s\n", c.ID)
	return nil
}

// monthOf parses YYYY-MM, or returns the month of today when empty
func monthOf(ctx *cli.Context, month string) (time.Time, error) {
	if month == "" {
		today, err := ctx.Service.Today()
		if err != nil {
			return time.Time{}, err
		}
		return utils.StartOfMonth(today), nil
	}
	loc, err := ctx.Service.Location()
	if err != nil {
		return time.Time{}, err
	}
	t, err := utils.ParseMonthInLocation(month, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (expected YYYY-MM)", month)
	}
	return t, nil
}
