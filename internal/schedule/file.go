package schedule

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/utils"
)

// seasonFile is the on-disk YAML layout of a season definition.
type seasonFile struct {
	Season int         `yaml:"season,omitempty"`
	Tasks  []taskEntry `yaml:"tasks"`
}

type taskEntry struct {
	Key         string `yaml:"key"`
	Label       string `yaml:"label"`
	Description string `yaml:"description,omitempty"`
	Start       string `yaml:"start"` // YYYY-MM-DD
	End         string `yaml:"end"`   // YYYY-MM-DD
	UrgencyDays int    `yaml:"urgency_days"`
}

// LoadFile reads a YAML season definition and validates it.
func LoadFile(path string, loc *time.Location) (*Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read season file: %w", err)
	}
	cal, err := Parse(data, loc)
	if err != nil {
		return nil, fmt.Errorf("season file %s: %w", path, err)
	}
	return cal, nil
}

// Parse decodes a YAML season definition. Dates are interpreted in loc.
func Parse(data []byte, loc *time.Location) (*Calendar, error) {
	var sf seasonFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse season: %w", err)
	}
	if len(sf.Tasks) == 0 {
		return nil, fmt.Errorf("season defines no tasks")
	}

	tasks := make([]Task, 0, len(sf.Tasks))
	for _, e := range sf.Tasks {
		start, err := utils.ParseDateInLocation(e.Start, loc)
		if err != nil {
			return nil, fmt.Errorf("task %q: invalid start date %q (expected YYYY-MM-DD)", e.Key, e.Start)
		}
		end, err := utils.ParseDateInLocation(e.End, loc)
		if err != nil {
			return nil, fmt.Errorf("task %q: invalid end date %q (expected YYYY-MM-DD)", e.Key, e.End)
		}
		tasks = append(tasks, Task{
			Key:               e.Key,
			Label:             e.Label,
			Description:       e.Description,
			Start:             start,
			End:               end,
			UrgencyWindowDays: e.UrgencyDays,
		})
	}

	return NewCalendar(tasks)
}

// Encode renders tasks as a YAML season definition that Parse accepts.
func Encode(season int, tasks []Task) ([]byte, error) {
	sf := seasonFile{Season: season}
	for _, t := range tasks {
		sf.Tasks = append(sf.Tasks, taskEntry{
			Key:         t.Key,
			Label:       t.Label,
			Description: t.Description,
			Start:       t.Start.Format(constants.DateFormat),
			End:         t.End.Format(constants.DateFormat),
			UrgencyDays: t.UrgencyWindowDays,
		})
	}
	return yaml.Marshal(&sf)
}
