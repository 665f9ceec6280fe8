package sqlite

import (
	"fmt"

	"github.com/julianstephens/lawnlog/internal/models"
	"github.com/julianstephens/lawnlog/internal/storage"
)

func (s *Store) GetCompletions() ([]models.TaskCompletion, error) {
	rows, err := s.db.Query("SELECT id, task_key, completed_at FROM task_completions ORDER BY completed_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TaskCompletion
	for rows.Next() {
		var c models.TaskCompletion
		var completedAt string
		if err := rows.Scan(&c.ID, &c.TaskKey, &completedAt); err != nil {
			return nil, err
		}
		t, err := storage.ParseTime(completedAt)
		if err != nil {
			return nil, fmt.Errorf("completion %s: invalid completed_at: %w", c.TaskKey, err)
		}
		c.CompletedAt = t
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) AddCompletion(c models.TaskCompletion) error {
	if c.TaskKey == "" {
		return fmt.Errorf("task key is required")
	}
	_, err := s.db.Exec(
		"INSERT INTO task_completions (id, task_key, completed_at) VALUES (?, ?, ?) ON CONFLICT(task_key) DO NOTHING",
		c.ID, c.TaskKey, storage.FormatTime(c.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to add completion: %w", err)
	}
	return nil
}

func (s *Store) DeleteCompletion(taskKey string) error {
	res, err := s.db.Exec("DELETE FROM task_completions WHERE task_key = ?", taskKey)
	if err != nil {
		return fmt.Errorf("failed to delete completion: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("completion %s: %w", taskKey, storage.ErrNotFound)
	}
	return nil
}
