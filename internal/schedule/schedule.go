// Package schedule holds the yearly seasonal task calendar and selects the
// next maintenance step for a given day.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/lawnlog/internal/utils"
)

const day = 24 * time.Hour

var (
	ErrEmptyKey        = errors.New("task key is required")
	ErrDuplicateKey    = errors.New("duplicate task key")
	ErrInvertedWindow  = errors.New("task starts after it ends")
	ErrNegativeUrgency = errors.New("urgency window must not be negative")
	ErrOutOfOrder      = errors.New("tasks must be ordered by start date")
)

// Task is one maintenance action with an inclusive date window.
type Task struct {
	Key               string    `json:"key"`
	Label             string    `json:"label"`
	Description       string    `json:"description"`
	Start             time.Time `json:"start"`
	End               time.Time `json:"end"`
	UrgencyWindowDays int       `json:"urgency_window_days"`
}

// Step is the result of a next-step scan. Task is nil when every window has passed.
type Step struct {
	Task           *Task `json:"task"`
	IsUrgent       bool  `json:"is_urgent"`
	DaysUntilStart int   `json:"days_until_start"`
}

// Found reports whether the scan selected a task.
func (s Step) Found() bool {
	return s.Task != nil
}

// Calendar is a validated, ordered season of tasks. It is immutable once built.
type Calendar struct {
	tasks []Task
	index map[string]int
}

// NewCalendar validates the task list and returns a Calendar. Dates are
// truncated to midnight in their own location. The declared order is kept.
func NewCalendar(tasks []Task) (*Calendar, error) {
	c := &Calendar{
		tasks: make([]Task, 0, len(tasks)),
		index: make(map[string]int, len(tasks)),
	}

	for i, t := range tasks {
		t.Start = utils.StartOfDay(t.Start)
		t.End = utils.StartOfDay(t.End)

		if t.Key == "" {
			return nil, fmt.Errorf("task %d: %w", i, ErrEmptyKey)
		}
		if _, dup := c.index[t.Key]; dup {
			return nil, fmt.Errorf("task %q: %w", t.Key, ErrDuplicateKey)
		}
		if t.Start.After(t.End) {
			return nil, fmt.Errorf("task %q: %w", t.Key, ErrInvertedWindow)
		}
		if t.UrgencyWindowDays < 0 {
			return nil, fmt.Errorf("task %q: %w", t.Key, ErrNegativeUrgency)
		}
		if i > 0 && t.Start.Before(c.tasks[i-1].Start) {
			return nil, fmt.Errorf("task %q starts before %q: %w", t.Key, c.tasks[i-1].Key, ErrOutOfOrder)
		}

		c.index[t.Key] = i
		c.tasks = append(c.tasks, t)
	}

	return c, nil
}

// Tasks returns a copy of the tasks in declared order.
func (c *Calendar) Tasks() []Task {
	out := make([]Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Task looks up a task by key.
func (c *Calendar) Task(key string) (Task, bool) {
	i, ok := c.index[key]
	if !ok {
		return Task{}, false
	}
	return c.tasks[i], true
}

// Len returns the number of tasks in the season.
func (c *Calendar) Len() int {
	return len(c.tasks)
}

// NextStep selects the next step from this calendar.
func (c *Calendar) NextStep(now time.Time) Step {
	return NextStep(c.tasks, now)
}

// NextStep scans tasks in declared order and returns the first one that is
// active, urgent, or upcoming. The scan stops at the first upcoming task even
// when a later task would be urgent.
func NextStep(tasks []Task, now time.Time) Step {
	for i := range tasks {
		task := tasks[i]
		daysUntilStart := daysUntil(task.Start, now)
		daysUntilEnd := daysUntil(task.End, now)

		// Currently in window
		if daysUntilStart <= 0 && daysUntilEnd > 0 {
			return Step{Task: &task, IsUrgent: true, DaysUntilStart: 0}
		}
		// Upcoming within urgency window
		if daysUntilStart > 0 && daysUntilStart <= task.UrgencyWindowDays {
			return Step{Task: &task, IsUrgent: true, DaysUntilStart: daysUntilStart}
		}
		// Next upcoming, regardless of urgency
		if daysUntilStart > 0 {
			return Step{Task: &task, IsUrgent: false, DaysUntilStart: daysUntilStart}
		}
	}
	return Step{}
}

// daysUntil counts calendar days from now to target in target's location,
// rounding partial days up. Dates are compared by y/m/d so a DST shift
// inside the span does not add or drop a day.
func daysUntil(target, now time.Time) int {
	now = now.In(target.Location())
	days := int(civilDay(target).Sub(civilDay(now)) / day)
	if clock(target) > clock(now) {
		days++
	}
	return days
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// clock is the wall-clock offset of t from its local midnight.
func clock(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
}

// IsActive reports whether today falls inside the task's inclusive window,
// compared at day granularity.
func IsActive(task Task, today time.Time) bool {
	d := utils.StartOfDay(today)
	return !d.Before(utils.StartOfDay(task.Start)) && !d.After(utils.StartOfDay(task.End))
}

// CompletionSet is a lookup of task keys the user has marked done.
type CompletionSet map[string]struct{}

func NewCompletionSet(keys ...string) CompletionSet {
	s := make(CompletionSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func (s CompletionSet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Entry is a task annotated with its status on a given day.
type Entry struct {
	Task     Task `json:"task"`
	Active   bool `json:"active"`
	Done     bool `json:"done"`
	Passed   bool `json:"passed"`
	DaysAway int  `json:"days_away"`
}

// Entries annotates every task in declared order. DaysAway is zero once a
// window has started.
func (c *Calendar) Entries(now time.Time, done CompletionSet) []Entry {
	today := utils.StartOfDay(now)
	entries := make([]Entry, len(c.tasks))
	for i, t := range c.tasks {
		e := Entry{
			Task:   t,
			Active: IsActive(t, today),
			Done:   done.Has(t.Key),
			Passed: today.After(t.End),
		}
		if away := daysUntil(t.Start, now); away > 0 {
			e.DaysAway = away
		}
		entries[i] = e
	}
	return entries
}
