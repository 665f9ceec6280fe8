package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lawnlog/internal/cli"
	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/schedule"
	"github.com/julianstephens/lawnlog/internal/storage"
	"github.com/julianstephens/lawnlog/internal/utils"
)

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	ctx.Println("Current Settings:")
	for _, kv := range storage.SettingsToPairs(settings) {
		v := kv[1]
		if v == "" {
			v = "(unset)"
		}
		ctx.Printf("  %-20s %s\n", kv[0], v)
	}
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting name (latitude, longitude, timezone, weather_refresh_min, diagnosis_endpoint, season_file)."`
	Value string `arg:"" optional:"" help:"New value. Omit to clear optional settings."`
}

func (c *SettingsSetCmd) Validate() error {
	for _, k := range storage.SettingKeys {
		if k == c.Key {
			return nil
		}
	}
	return fmt.Errorf("unknown setting %q (expected one of %s)", c.Key, strings.Join(storage.SettingKeys, ", "))
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := storage.ApplySetting(&settings, c.Key, c.Value); err != nil {
		return err
	}

	// a season file must load before it is accepted
	if c.Key == constants.SettingSeasonFile && settings.SeasonFile != "" {
		loc, err := utils.LoadLocation(settings.Timezone)
		if err != nil {
			return err
		}
		if _, err := schedule.LoadFile(settings.SeasonFile, loc); err != nil {
			return err
		}
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.PerformAutomaticBackup()
	ctx.Printf("✓ %s updated\n", c.Key)
	return nil
}
