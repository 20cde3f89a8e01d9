package state

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const runColumns = `id, paths, status, started_at, completed_at,
	files, findings, errors, warnings, infos, suppressed`

// CreateRun records the start of a lint run over paths.
func (s *SQLiteStore) CreateRun(paths []string) (*Run, error) {
	if s.db == nil {
		return nil, errNotOpen
	}
	if paths == nil {
		paths = []string{}
	}
	encoded, err := json.Marshal(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to encode run paths: %w", err)
	}

	run := &Run{
		ID:        generateID(),
		Paths:     paths,
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	s.logger.Debug("creating run", slog.String("id", run.ID), slog.Int("paths", len(paths)))

	_, err = s.db.ExecContext(ctx(),
		`INSERT INTO runs (id, paths, status, started_at) VALUES (?, ?, ?, ?)`,
		run.ID, string(encoded), string(run.Status), run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(id string) (*Run, error) {
	if s.db == nil {
		return nil, errNotOpen
	}

	row := s.db.QueryRowContext(ctx(), `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// CompleteRun marks a run as finished with the given status and totals.
func (s *SQLiteStore) CompleteRun(id string, status RunStatus, stats RunStats) error {
	if s.db == nil {
		return errNotOpen
	}

	res, err := s.db.ExecContext(ctx(),
		`UPDATE runs SET status = ?, completed_at = ?,
			files = ?, findings = ?, errors = ?, warnings = ?, infos = ?, suppressed = ?
		WHERE id = ?`,
		string(status), time.Now().UTC(),
		stats.Files, stats.Findings, stats.Errors, stats.Warnings, stats.Infos, stats.Suppressed,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListRuns retrieves the most recent runs up to the given limit.
func (s *SQLiteStore) ListRuns(limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, errNotOpen
	}

	rows, err := s.db.QueryContext(ctx(),
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run         Run
		paths       string
		status      string
		completedAt sql.NullTime
	)
	err := row.Scan(&run.ID, &paths, &status, &run.StartedAt, &completedAt,
		&run.Stats.Files, &run.Stats.Findings, &run.Stats.Errors,
		&run.Stats.Warnings, &run.Stats.Infos, &run.Stats.Suppressed)
	if err != nil {
		return nil, err
	}
	run.Status = RunStatus(status)
	if completedAt.Valid {
		t := completedAt.Time
		run.CompletedAt = &t
	}
	if err := json.Unmarshal([]byte(paths), &run.Paths); err != nil {
		return nil, fmt.Errorf("decode paths of run %s: %w", run.ID, err)
	}
	return &run, nil
}
