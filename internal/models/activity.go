package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/lawnlog/internal/constants"
)

type ActivityType string

const (
	ActivityMow         ActivityType = "mow"
	ActivityScalp       ActivityType = "scalp"
	ActivityFertilize   ActivityType = "fertilize"
	ActivityPreEmergent ActivityType = "pre-emergent"
	ActivityWater       ActivityType = "water"
	ActivityAerate      ActivityType = "aerate"
)

// ActivityTypes lists every category in canonical display order.
var ActivityTypes = []ActivityType{
	ActivityMow,
	ActivityScalp,
	ActivityFertilize,
	ActivityPreEmergent,
	ActivityWater,
	ActivityAerate,
}

var activityLabels = map[ActivityType]string{
	ActivityMow:         "Mow",
	ActivityScalp:       "Scalp",
	ActivityFertilize:   "Fertilize",
	ActivityPreEmergent: "Pre-Emergent",
	ActivityWater:       "Water",
	ActivityAerate:      "Aerate",
}

// Label returns the display name of the category.
func (t ActivityType) Label() string {
	if l, ok := activityLabels[t]; ok {
		return l
	}
	return string(t)
}

// Rank returns the canonical position of the category, or len(ActivityTypes)
// for anything outside the enumeration.
func (t ActivityType) Rank() int {
	for i, at := range ActivityTypes {
		if at == t {
			return i
		}
	}
	return len(ActivityTypes)
}

func (t ActivityType) Validate() error {
	if t.Rank() == len(ActivityTypes) {
		return fmt.Errorf("invalid activity type %q", string(t))
	}
	return nil
}

// ParseActivityType accepts the canonical value or its label, case-insensitively.
func ParseActivityType(s string) (ActivityType, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for _, t := range ActivityTypes {
		if s == string(t) || s == strings.ToLower(t.Label()) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid activity type %q (expected one of %s)", s, activityTypeList())
}

func activityTypeList() string {
	names := make([]string, len(ActivityTypes))
	for i, t := range ActivityTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// Activity is a single logged piece of lawn work
type Activity struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	Date      string       `json:"date"` // YYYY-MM-DD format
	Notes     string       `json:"notes,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	DeletedAt *time.Time   `json:"deleted_at,omitempty"`
}

// Day returns the calendar day key of the activity. Longer ISO timestamps are
// truncated to their date component.
func (a Activity) Day() string {
	if len(a.Date) > len(constants.DateFormat) {
		return a.Date[:len(constants.DateFormat)]
	}
	return a.Date
}

func (a Activity) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("activity id is required")
	}
	if err := a.Type.Validate(); err != nil {
		return err
	}
	if _, err := time.Parse(constants.DateFormat, a.Day()); err != nil {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", a.Date)
	}
	return nil
}

// TaskCompletion marks a seasonal task as done
type TaskCompletion struct {
	ID          string    `json:"id"`
	TaskKey     string    `json:"task_key"`
	CompletedAt time.Time `json:"completed_at"`
}
