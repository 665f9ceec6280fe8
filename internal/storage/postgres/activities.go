package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/lawnlog/internal/models"
	"github.com/julianstephens/lawnlog/internal/storage"
)

const activityColumns = "id, type, date, notes, created_at, deleted_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (models.Activity, error) {
	var a models.Activity
	var typ, createdAt string
	var deletedAt sql.NullString

	if err := row.Scan(&a.ID, &typ, &a.Date, &a.Notes, &createdAt, &deletedAt); err != nil {
		return models.Activity{}, err
	}
	a.Type = models.ActivityType(typ)

	t, err := storage.ParseTime(createdAt)
	if err != nil {
		return models.Activity{}, fmt.Errorf("activity %s: invalid created_at: %w", a.ID, err)
	}
	a.CreatedAt = t

	if deletedAt.Valid {
		d, err := storage.ParseTime(deletedAt.String)
		if err != nil {
			return models.Activity{}, fmt.Errorf("activity %s: invalid deleted_at: %w", a.ID, err)
		}
		a.DeletedAt = &d
	}
	return a, nil
}

func (s *Store) AddActivity(a models.Activity) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(
		"INSERT INTO activities ("+activityColumns+") VALUES ($1, $2, $3, $4, $5, NULL)",
		a.ID, string(a.Type), a.Day(), a.Notes, storage.FormatTime(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to add activity: %w", err)
	}
	return nil
}

func (s *Store) GetActivity(id string) (models.Activity, error) {
	row := s.db.QueryRow("SELECT "+activityColumns+" FROM activities WHERE id = $1", id)
	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Activity{}, fmt.Errorf("activity %s: %w", id, storage.ErrNotFound)
	}
	return a, err
}

func (s *Store) queryActivities(query string, args ...any) ([]models.Activity, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) GetActivities(startDay, endDay string, includeDeleted bool) ([]models.Activity, error) {
	query := "SELECT " + activityColumns + " FROM activities WHERE date >= $1 AND date <= $2"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	query += " ORDER BY date DESC, created_at DESC"
	return s.queryActivities(query, startDay, endDay)
}

func (s *Store) GetAllActivities(includeDeleted bool) ([]models.Activity, error) {
	query := "SELECT " + activityColumns + " FROM activities"
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY date DESC, created_at DESC"
	return s.queryActivities(query)
}

func (s *Store) DeleteActivity(id string) error {
	res, err := s.db.Exec(
		"UPDATE activities SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL",
		storage.FormatTime(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return s.checkSoftDelete(res, id, storage.ErrAlreadyDeleted)
}

func (s *Store) RestoreActivity(id string) error {
	res, err := s.db.Exec(
		"UPDATE activities SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL", id,
	)
	if err != nil {
		return fmt.Errorf("failed to restore activity: %w", err)
	}
	return s.checkSoftDelete(res, id, storage.ErrNotDeleted)
}

func (s *Store) checkSoftDelete(res sql.Result, id string, stateErr error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, err := s.GetActivity(id); err != nil {
		return err
	}
	return fmt.Errorf("activity %s: %w", id, stateErr)
}
