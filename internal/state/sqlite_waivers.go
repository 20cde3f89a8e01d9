package state

import (
	"fmt"
	"log/slog"
	"time"
)

const waiverColumns = `id, path, rule, start_line, end_line, reason, created_at`

// AddWaiver stores w, assigning an ID and creation time when unset.
// A zero EndLine waives the single line StartLine.
func (s *SQLiteStore) AddWaiver(w *Waiver) error {
	if s.db == nil {
		return errNotOpen
	}
	if w.Path == "" {
		return fmt.Errorf("waiver path is required")
	}
	if w.EndLine == 0 {
		w.EndLine = w.StartLine
	}
	if w.StartLine <= 0 || w.EndLine < w.StartLine {
		return fmt.Errorf("invalid waiver line range %d-%d", w.StartLine, w.EndLine)
	}
	if w.ID == "" {
		w.ID = generateID()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}

	s.logger.Debug("adding waiver",
		slog.String("id", w.ID), slog.String("path", w.Path), slog.String("rule", w.Rule))

	_, err := s.db.ExecContext(ctx(),
		`INSERT INTO waivers (`+waiverColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Path, w.Rule, w.StartLine, w.EndLine, w.Reason, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add waiver: %w", err)
	}
	return nil
}

// ListWaivers returns every stored waiver ordered by path and line.
func (s *SQLiteStore) ListWaivers() ([]*Waiver, error) {
	return s.queryWaivers(`SELECT ` + waiverColumns + ` FROM waivers ORDER BY path, start_line, id`)
}

// WaiversForPath returns the waivers recorded for one file.
func (s *SQLiteStore) WaiversForPath(path string) ([]*Waiver, error) {
	return s.queryWaivers(`SELECT `+waiverColumns+` FROM waivers WHERE path = ? ORDER BY start_line, id`, path)
}

// DeleteWaiver removes a waiver by ID.
func (s *SQLiteStore) DeleteWaiver(id string) error {
	if s.db == nil {
		return errNotOpen
	}
	res, err := s.db.ExecContext(ctx(), `DELETE FROM waivers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete waiver: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete waiver: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("waiver %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) queryWaivers(query string, args ...any) ([]*Waiver, error) {
	if s.db == nil {
		return nil, errNotOpen
	}
	rows, err := s.db.QueryContext(ctx(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query waivers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Waiver
	for rows.Next() {
		var w Waiver
		if err := rows.Scan(&w.ID, &w.Path, &w.Rule, &w.StartLine, &w.EndLine, &w.Reason, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan waiver: %w", err)
		}
		out = append(out, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query waivers: %w", err)
	}
	return out, nil
}
