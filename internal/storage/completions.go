package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lawnlog/internal/models"
)

// CompletedKeys returns the task keys marked done.
func CompletedKeys(p Provider) ([]string, error) {
	completions, err := p.GetCompletions()
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(completions))
	for i, c := range completions {
		keys[i] = c.TaskKey
	}
	return keys, nil
}

// ToggleCompletion flips the done state of a task and reports the new state.
func ToggleCompletion(p Provider, taskKey string, now time.Time) (bool, error) {
	keys, err := CompletedKeys(p)
	if err != nil {
		return false, err
	}
	for _, k := range keys {
		if k == taskKey {
			return false, p.DeleteCompletion(taskKey)
		}
	}
	err = p.AddCompletion(models.TaskCompletion{
		ID:          uuid.New().String(),
		TaskKey:     taskKey,
		CompletedAt: now,
	})
	return err == nil, err
}
