package season

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/lawnlog/internal/advisory"
	"github.com/julianstephens/lawnlog/internal/cli"
	"github.com/julianstephens/lawnlog/internal/weather"
)

// StatusCmd prints the dashboard: phase, tip, next step and today's advice.
type StatusCmd struct {
	Date string `help:"Show status as of this date (YYYY-MM-DD)."`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	now, err := ctx.Service.ParseDay(c.Date)
	if err != nil {
		return err
	}
	d, err := ctx.Service.Dashboard(context.Background(), now)
	if err != nil {
		return err
	}

	ctx.Println(headingStyle.Render(fmt.Sprintf("%s · %s", d.Date, d.Phase.Label)))
	ctx.Println(d.Phase.Description)
	ctx.Printf("Tip: %s\n\n", d.Tip)

	ctx.Println(headingStyle.Render("Next step"))
	ctx.Println(describeStep(d.NextStep))
	if d.NextStep.Found() && d.NextStep.Task.Description != "" {
		ctx.Println(mutedStyle.Render(d.NextStep.Task.Description))
	}
	ctx.Println()

	if d.LastMow.HasHistory() {
		ctx.Printf("Last mow: %s (%d days ago)\n\n", d.LastMow.Last, d.LastMow.DaysSinceLast)
	}

	ctx.Println(headingStyle.Render("Today"))
	if d.Advice == nil {
		ctx.Println(mutedStyle.Render("Weather unavailable: " + d.WeatherError))
		return nil
	}
	ctx.Println(describeWeather(*d.Weather))
	for _, a := range d.Advice.All() {
		ctx.Println(describeAdvice(a))
	}
	return nil
}

// AdviceCmd prints the advisory verdicts for the current forecast.
type AdviceCmd struct {
	Category string `arg:"" optional:"" help:"Only show one category (mow, water, fertilize)."`
	Refresh  bool   `help:"Bypass the weather cache."`
}

func (c *AdviceCmd) Validate() error {
	if c.Category == "" {
		return nil
	}
	_, err := advisory.ParseCategory(c.Category)
	return err
}

func (c *AdviceCmd) Run(ctx *cli.Context) error {
	if c.Refresh {
		if _, err := ctx.Service.RefreshForecast(context.Background()); err != nil {
			if !errors.Is(err, weather.ErrStale) {
				return fmt.Errorf("failed to refresh weather: %w", err)
			}
			ctx.Println(blockStyle.Render("⚠ " + err.Error()))
		}
	}
	w, result, err := ctx.Service.Advice(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get weather: %w", err)
	}
	ctx.Println(describeWeather(w))

	if c.Category != "" {
		cat, _ := advisory.ParseCategory(c.Category)
		a, _ := result.Get(cat)
		ctx.Println(describeAdvice(a))
		return nil
	}
	for _, a := range result.All() {
		ctx.Println(describeAdvice(a))
	}
	return nil
}
