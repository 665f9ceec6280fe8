// Package dayindex groups logged activities by calendar day for compact
// calendar rendering.
package dayindex

import (
	"sort"
	"time"

	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/models"
)

// Index maps a YYYY-MM-DD day to the distinct activity types logged on it.
type Index struct {
	days map[string]map[models.ActivityType]struct{}
}

// Build indexes activities by day. Repeats of a type on the same day collapse
// to one entry.
func Build(activities []models.Activity) Index {
	idx := Index{days: make(map[string]map[models.ActivityType]struct{})}
	for _, a := range activities {
		key := a.Day()
		set, ok := idx.days[key]
		if !ok {
			set = make(map[models.ActivityType]struct{})
			idx.days[key] = set
		}
		set[a.Type] = struct{}{}
	}
	return idx
}

// Key formats a date as an index key.
func Key(day time.Time) string {
	return day.Format(constants.DateFormat)
}

// Categories returns every distinct type logged on day in canonical order.
func (idx Index) Categories(day time.Time) []models.ActivityType {
	return idx.CategoriesFor(Key(day))
}

// CategoriesFor is Categories keyed by a YYYY-MM-DD string.
func (idx Index) CategoriesFor(key string) []models.ActivityType {
	set := idx.days[key]
	if len(set) == 0 {
		return nil
	}
	out := make([]models.ActivityType, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := out[i].Rank(), out[j].Rank()
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

// Sample returns at most constants.MaxDayBadges categories for day.
func (idx Index) Sample(day time.Time) []models.ActivityType {
	cats := idx.Categories(day)
	if len(cats) > constants.MaxDayBadges {
		return cats[:constants.MaxDayBadges]
	}
	return cats
}

// Has reports whether anything was logged on day.
func (idx Index) Has(day time.Time) bool {
	return len(idx.days[Key(day)]) > 0
}

// Days returns the indexed day keys in ascending order.
func (idx Index) Days() []string {
	out := make([]string, 0, len(idx.days))
	for k := range idx.days {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Len is the number of distinct days with activity.
func (idx Index) Len() int {
	return len(idx.days)
}

// MonthGrid lays out the month containing t as Sunday-first weeks. Cells
// outside the month are zero times.
func MonthGrid(t time.Time) [][]time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var weeks [][]time.Time
	week := make([]time.Time, 7)
	col := int(first.Weekday())
	for d := 1; d <= daysInMonth; d++ {
		week[col] = first.AddDate(0, 0, d-1)
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]time.Time, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}
