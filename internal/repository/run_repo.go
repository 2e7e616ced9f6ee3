package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/baihuihang/delivery-statements/internal/orchestrator"
)

// RunRecord is one persisted pipeline run.
type RunRecord struct {
	ID         int64
	SourceDir  string
	OutputDir  string
	Files      int
	Records    int
	Generated  int
	Skipped    int
	StartedAt  time.Time
	FinishedAt time.Time
}

// RunRepository stores run history in SQLite.
type RunRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRunRepository creates a RunRepository.
func NewRunRepository(db *sql.DB, logger *zap.Logger) *RunRepository {
	return &RunRepository{db: db, logger: logger}
}

// RecordRun persists one completed run report.
func (r *RunRepository) RecordRun(ctx context.Context, report *orchestrator.Report) error {
	const query = `
		INSERT INTO runs (source_dir, output_dir, files, records, generated, skipped, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		report.SourceDir, report.OutputDir,
		report.Files, report.Records, report.Generated, report.Skipped,
		report.StartedAt, report.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run record: %w", err)
	}

	id, _ := result.LastInsertId()
	r.logger.Debug("Run recorded", zap.Int64("run_id", id))
	return nil
}

// ListRecent returns up to limit runs, newest first.
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]*RunRecord, error) {
	const query = `
		SELECT id, source_dir, output_dir, files, records, generated, skipped, started_at, finished_at
		FROM runs ORDER BY started_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []*RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(&rec.ID, &rec.SourceDir, &rec.OutputDir,
			&rec.Files, &rec.Records, &rec.Generated, &rec.Skipped,
			&rec.StartedAt, &rec.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
