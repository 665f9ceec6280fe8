// Package stats summarizes how often each kind of lawn work gets done.
package stats

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/models"
)

// Cadence describes the rhythm of one activity type.
type Cadence struct {
	Type           models.ActivityType `json:"type"`
	Count          int                 `json:"count"`
	Days           int                 `json:"days"`
	Last           string              `json:"last,omitempty"`
	DaysSinceLast  int                 `json:"days_since_last"`
	MeanInterval   float64             `json:"mean_interval_days"`
	MedianInterval float64             `json:"median_interval_days"`
	StdDevInterval float64             `json:"stddev_interval_days"`
}

// HasHistory reports whether the type was logged at least once.
func (c Cadence) HasHistory() bool {
	return c.Count > 0
}

// HasRhythm reports whether there are enough distinct days to measure intervals.
func (c Cadence) HasRhythm() bool {
	return c.Days >= 2
}

// Compute returns one Cadence per known activity type, in canonical order.
// Activities dated after today are ignored. Deleted activities must be
// filtered by the caller.
func Compute(activities []models.Activity, today time.Time) []Cadence {
	loc := today.Location()
	todayDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	counts := make(map[models.ActivityType]int)
	days := make(map[models.ActivityType]map[string]time.Time)
	for _, a := range activities {
		d, err := time.ParseInLocation(constants.DateFormat, a.Day(), loc)
		if err != nil || d.After(todayDay) {
			continue
		}
		counts[a.Type]++
		if days[a.Type] == nil {
			days[a.Type] = make(map[string]time.Time)
		}
		days[a.Type][a.Day()] = d
	}

	out := make([]Cadence, 0, len(models.ActivityTypes))
	for _, typ := range models.ActivityTypes {
		c := Cadence{Type: typ, Count: counts[typ]}
		dates := sortedDates(days[typ])
		c.Days = len(dates)
		if len(dates) > 0 {
			last := dates[len(dates)-1]
			c.Last = last.Format(constants.DateFormat)
			c.DaysSinceLast = wholeDays(todayDay.Sub(last))
		}
		if intervals := intervalsInDays(dates); len(intervals) > 0 {
			c.MeanInterval, c.StdDevInterval = stat.MeanStdDev(intervals, nil)
			if len(intervals) < 2 {
				c.StdDevInterval = 0
			}
			sort.Float64s(intervals)
			c.MedianInterval = stat.Quantile(0.5, stat.Empirical, intervals, nil)
		}
		out = append(out, c)
	}
	return out
}

// CountByType tallies activities per type between start and end inclusive.
func CountByType(activities []models.Activity, start, end string) map[models.ActivityType]int {
	out := make(map[models.ActivityType]int)
	for _, a := range activities {
		d := a.Day()
		if d < start || d > end {
			continue
		}
		out[a.Type]++
	}
	return out
}

func sortedDates(set map[string]time.Time) []time.Time {
	out := make([]time.Time, 0, len(set))
	for _, d := range set {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func intervalsInDays(dates []time.Time) []float64 {
	if len(dates) < 2 {
		return nil
	}
	out := make([]float64, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		out = append(out, float64(wholeDays(dates[i].Sub(dates[i-1]))))
	}
	return out
}

// wholeDays rounds to the nearest day so DST shifts do not skew counts.
func wholeDays(d time.Duration) int {
	return int((d + 12*time.Hour) / (24 * time.Hour))
}
