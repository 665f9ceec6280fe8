package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/lawnlog/internal/models"
	"github.com/julianstephens/lawnlog/internal/storage"
)

func (s *Store) AddScan(scan models.Scan) error {
	body, err := json.Marshal(scan.Diagnosis)
	if err != nil {
		return fmt.Errorf("failed to encode diagnosis: %w", err)
	}
	var score sql.NullInt64
	if scan.Diagnosis.ConditionScore != nil {
		score = sql.NullInt64{Int64: int64(*scan.Diagnosis.ConditionScore), Valid: true}
	}
	_, err = s.db.Exec(
		"INSERT INTO scans (id, image_path, condition_score, diagnosis, created_at) VALUES (?, ?, ?, ?, ?)",
		scan.ID, scan.ImagePath, score, string(body), storage.FormatTime(scan.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to add scan: %w", err)
	}
	return nil
}

func scanScan(row rowScanner) (models.Scan, error) {
	var sc models.Scan
	var body, createdAt string
	if err := row.Scan(&sc.ID, &sc.ImagePath, &body, &createdAt); err != nil {
		return models.Scan{}, err
	}
	if err := json.Unmarshal([]byte(body), &sc.Diagnosis); err != nil {
		return models.Scan{}, fmt.Errorf("scan %s: invalid diagnosis: %w", sc.ID, err)
	}
	t, err := storage.ParseTime(createdAt)
	if err != nil {
		return models.Scan{}, fmt.Errorf("scan %s: invalid created_at: %w", sc.ID, err)
	}
	sc.CreatedAt = t
	return sc, nil
}

func (s *Store) GetScan(id string) (models.Scan, error) {
	row := s.db.QueryRow("SELECT id, image_path, diagnosis, created_at FROM scans WHERE id = ?", id)
	sc, err := scanScan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Scan{}, fmt.Errorf("scan %s: %w", id, storage.ErrNotFound)
	}
	return sc, err
}

// GetScans returns the newest scans first; limit <= 0 returns all.
func (s *Store) GetScans(limit int) ([]models.Scan, error) {
	query := "SELECT id, image_path, diagnosis, created_at FROM scans ORDER BY created_at DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Scan
	for rows.Next() {
		sc, err := scanScan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
