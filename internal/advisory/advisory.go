// Package advisory turns a weather snapshot into go/no-go advice for mowing,
// watering and fertilizing.
package advisory

import (
	"fmt"

	"github.com/julianstephens/lawnlog/internal/models"
)

// Category is an activity the advisory engine gives advice on.
type Category string

const (
	Mow       Category = "mow"
	Water     Category = "water"
	Fertilize Category = "fertilize"
)

// Categories lists the advised activities in display order.
var Categories = []Category{Mow, Water, Fertilize}

func (c Category) Label() string {
	switch c {
	case Mow:
		return "Mow"
	case Water:
		return "Water"
	case Fertilize:
		return "Fertilize"
	}
	return string(c)
}

// Thresholds. Comparisons are strict.
const (
	WetGroundRainInches    = 0.25
	MaxWindMph             = 20.0
	MinTemperatureF        = 50.0
	MaxFertilizeTempF      = 95.0
	RainExpectedInches     = 0.5
	RainedTodayWaterInches = 0.3
)

// Advice is one allow/block decision with the sentence explaining it.
type Advice struct {
	Category Category `json:"category"`
	Allowed  bool     `json:"allowed"`
	Reason   string   `json:"reason"`
}

// Result holds the three independent decisions.
type Result struct {
	Mow       Advice `json:"mow"`
	Water     Advice `json:"water"`
	Fertilize Advice `json:"fertilize"`
}

// All returns the decisions in display order.
func (r Result) All() []Advice {
	return []Advice{r.Mow, r.Water, r.Fertilize}
}

// Get returns the decision for a category.
func (r Result) Get(c Category) (Advice, bool) {
	switch c {
	case Mow:
		return r.Mow, true
	case Water:
		return r.Water, true
	case Fertilize:
		return r.Fertilize, true
	}
	return Advice{}, false
}

type rule struct {
	blocks func(models.WeatherSnapshot) bool
	reason func(models.WeatherSnapshot) string
}

func fixed(s string) func(models.WeatherSnapshot) string {
	return func(models.WeatherSnapshot) string { return s }
}

func wetGround(w models.WeatherSnapshot) bool {
	return w.IsRaining || w.RainTodayInches > WetGroundRainInches
}

func tooWindy(w models.WeatherSnapshot) bool {
	return w.WindSpeedMph > MaxWindMph
}

func tooCold(w models.WeatherSnapshot) bool {
	return w.TemperatureF < MinTemperatureF
}

func raining(w models.WeatherSnapshot) bool {
	return w.IsRaining
}

func rainExpected(w models.WeatherSnapshot) bool {
	return w.RainNext48hInches > RainExpectedInches
}

// cascade is an ordered rule list; the first blocking rule wins.
type cascade struct {
	rules   []rule
	allowed string
}

var cascades = map[Category]cascade{
	Mow: {
		rules: []rule{
			{raining, fixed("🌧️ Raining — wait for dry grass")},
			{wetGround, fixed("💧 Ground is wet — let it dry first")},
			{tooWindy, fixed("💨 Too windy — clippings will scatter")},
			{tooCold, fixed("🥶 Too cold — grass isn't growing")},
		},
		allowed: "Good conditions for mowing",
	},
	Water: {
		rules: []rule{
			{raining, fixed("🌧️ It's raining — nature's got you covered")},
			{rainExpected, func(w models.WeatherSnapshot) string {
				return fmt.Sprintf("🌧️ %.1f\" rain expected — hold off", w.RainNext48hInches)
			}},
			{func(w models.WeatherSnapshot) bool {
				return w.RainTodayInches > RainedTodayWaterInches
			}, fixed("💧 Already got rain today — skip watering")},
		},
		allowed: "No rain expected — water if needed",
	},
	Fertilize: {
		rules: []rule{
			{rainExpected, fixed("🌧️ Rain coming — fertilizer will wash away")},
			{wetGround, fixed("💧 Wet ground — wait for it to dry")},
			{func(w models.WeatherSnapshot) bool {
				return w.TemperatureF > MaxFertilizeTempF
			}, fixed("🔥 Too hot — risk of burning the lawn")},
			{tooCold, fixed("🥶 Too cold — grass can't absorb nutrients")},
		},
		allowed: "Safe to fertilize today",
	},
}

// EvaluateCategory runs a single category's cascade.
func EvaluateCategory(c Category, w models.WeatherSnapshot) (Advice, error) {
	cs, ok := cascades[c]
	if !ok {
		return Advice{}, fmt.Errorf("unknown advisory category %q", c)
	}
	for _, r := range cs.rules {
		if r.blocks(w) {
			return Advice{Category: c, Allowed: false, Reason: r.reason(w)}, nil
		}
	}
	return Advice{Category: c, Allowed: true, Reason: cs.allowed}, nil
}

// Evaluate runs all three cascades against the snapshot.
func Evaluate(w models.WeatherSnapshot) Result {
	return Result{
		Mow:       mustEvaluate(Mow, w),
		Water:     mustEvaluate(Water, w),
		Fertilize: mustEvaluate(Fertilize, w),
	}
}

func mustEvaluate(c Category, w models.WeatherSnapshot) Advice {
	a, err := EvaluateCategory(c, w)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseCategory accepts a category value, case-sensitive.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := cascades[c]; !ok {
		return "", fmt.Errorf("unknown advisory category %q (expected mow, water or fertilize)", s)
	}
	return c, nil
}
