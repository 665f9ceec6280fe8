// Package growth maps calendar dates to Bermuda grass growth phases.
package growth

import "time"

type Phase string

const (
	PhaseDormant    Phase = "dormant"
	PhaseGreenUp    Phase = "green-up"
	PhasePeakGrowth Phase = "peak-growth"
	PhaseTransition Phase = "transition"
)

// Info describes a growth phase for display
type Info struct {
	Phase       Phase  `json:"phase"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var phaseInfo = map[Phase]Info{
	PhaseDormant: {
		Phase:       PhaseDormant,
		Label:       "Dormant",
		Description: "Grass is dormant — protect and prepare",
	},
	PhaseGreenUp: {
		Phase:       PhaseGreenUp,
		Label:       "Green-Up",
		Description: "Grass is waking up — light feeding time",
	},
	PhasePeakGrowth: {
		Phase:       PhasePeakGrowth,
		Label:       "Peak Growth",
		Description: "Full speed ahead — mow every 5-7 days",
	},
	PhaseTransition: {
		Phase:       PhaseTransition,
		Label:       "Transition",
		Description: "Slowing down — prepare for dormancy",
	},
}

// Phases returns every phase in seasonal order starting from dormancy.
func Phases() []Info {
	return []Info{
		phaseInfo[PhaseDormant],
		phaseInfo[PhaseGreenUp],
		phaseInfo[PhasePeakGrowth],
		phaseInfo[PhaseTransition],
	}
}

// Classify returns the growth phase for the given date. Only the month matters.
func Classify(date time.Time) Info {
	return ForMonth(date.Month())
}

// ForMonth returns the growth phase for a month.
func ForMonth(month time.Month) Info {
	switch month {
	case time.December, time.January, time.February:
		return phaseInfo[PhaseDormant]
	case time.March, time.April:
		return phaseInfo[PhaseGreenUp]
	case time.May, time.June, time.July, time.August, time.September:
		return phaseInfo[PhasePeakGrowth]
	default:
		return phaseInfo[PhaseTransition]
	}
}

var quickTips = [12]string{
	"Keep off frozen or frosty grass — dormant Bermuda is fragile.",
	"Sharpen mower blades before the Spring Scalp season.",
	"Pre-emergent window is closing — apply before soil hits 55°F.",
	"First cut of the year? Set blade to lowest setting for the scalp.",
	"Water deeply but infrequently — 1 inch per week encourages deep roots.",
	"Mow every 5-7 days. Don't remove more than 1/3 of the blade height.",
	"Watch for chinch bugs — brown patches that don't respond to water.",
	"Hold off on heavy nitrogen — avoid pushing soft growth before fall.",
	"Apply a winterizer fertilizer to strengthen roots for dormancy.",
	"Last mow of the season — cut slightly lower than normal.",
	"Leaf blower > mower. Don't mow dormant grass unnecessarily.",
	"Great time to service your mower and prepare for next season.",
}

// QuickTip returns the seasonal tip for the month of date.
func QuickTip(date time.Time) string {
	return quickTips[date.Month()-1]
}
