package schedule

import (
	"fmt"
	"time"
)

// DefaultTasks returns the built-in Bermuda grass season for year.
func DefaultTasks(year int, loc *time.Location) []Task {
	date := func(m time.Month, d int) time.Time {
		return time.Date(year, m, d, 0, 0, 0, 0, loc)
	}
	key := func(name string) string {
		return fmt.Sprintf("%s-%d", name, year)
	}

	return []Task{
		{
			Key:               key("pre-emergent"),
			Label:             "Pre-Emergent",
			Description:       "Apply Prodiamine/Barricade before soil hits 55°F",
			Start:             date(time.February, 1),
			End:               date(time.March, 15),
			UrgencyWindowDays: 21,
		},
		{
			Key:               key("spring-scalp"),
			Label:             "Spring Scalp",
			Description:       "Scalp lawn to remove dormant thatch, promote growth",
			Start:             date(time.March, 1),
			End:               date(time.March, 20),
			UrgencyWindowDays: 14,
		},
		{
			Key:               key("first-fert"),
			Label:             "First Fertilization",
			Description:       "9-0-24 or similar, 2 weeks after scalp",
			Start:             date(time.March, 15),
			End:               date(time.April, 15),
			UrgencyWindowDays: 14,
		},
		{
			Key:               key("aeration"),
			Label:             "Aeration",
			Description:       "Core aerate to reduce compaction",
			Start:             date(time.May, 1),
			End:               date(time.June, 30),
			UrgencyWindowDays: 14,
		},
		{
			Key:               key("second-fert"),
			Label:             "2nd Fertilization",
			Description:       "Continue 4-6 week cycle",
			Start:             date(time.May, 1),
			End:               date(time.May, 31),
			UrgencyWindowDays: 14,
		},
		{
			Key:               key("third-fert"),
			Label:             "3rd Fertilization",
			Description:       "Mid-summer push",
			Start:             date(time.June, 15),
			End:               date(time.July, 15),
			UrgencyWindowDays: 14,
		},
		{
			Key:               key("fourth-fert"),
			Label:             "4th Fertilization",
			Description:       "Late summer, light K-heavy formula",
			Start:             date(time.August, 1),
			End:               date(time.September, 1),
			UrgencyWindowDays: 14,
		},
	}
}

// Default builds the validated built-in season for year.
func Default(year int, loc *time.Location) *Calendar {
	c, err := NewCalendar(DefaultTasks(year, loc))
	if err != nil {
		// the built-in table is static; a failure here is a programming error
		panic(fmt.Sprintf("invalid built-in season: %v", err))
	}
	return c
}
