package storage

import (
	"context"
	"database/sql"
	"fmt"

	"restaurant-catalog/internal/domain"
)

const defaultRecentLoads = 20

type PostgresJournal struct {
	DB *sql.DB
}

func NewPostgresJournal(db *sql.DB) *PostgresJournal {
	return &PostgresJournal{DB: db}
}

func (j *PostgresJournal) EnsureSchema(ctx context.Context) error {
	_, err := j.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS catalog_loads (
			id          BIGSERIAL PRIMARY KEY,
			session_id  TEXT NOT NULL,
			source_url  TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL,
			restaurants INTEGER NOT NULL DEFAULT 0,
			shape_miss  BOOLEAN NOT NULL DEFAULT FALSE,
			from_cache  BOOLEAN NOT NULL DEFAULT FALSE,
			error       TEXT NOT NULL DEFAULT '',
			duration_ms BIGINT NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create catalog_loads: %w", err)
	}
	return nil
}

func (j *PostgresJournal) RecordLoad(ctx context.Context, record *domain.LoadRecord) error {
	return j.DB.QueryRowContext(ctx, `
		INSERT INTO catalog_loads (session_id, source_url, status, restaurants, shape_miss, from_cache, error, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, record.SessionID, record.SourceURL, record.Status, record.Restaurants,
		record.ShapeMiss, record.FromCache, record.Error, record.DurationMS).
		Scan(&record.ID, &record.CreatedAt)
}

func (j *PostgresJournal) RecentLoads(ctx context.Context, limit int) ([]domain.LoadRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLoads
	}
	rows, err := j.DB.QueryContext(ctx, `
		SELECT id, session_id, source_url, status, restaurants, shape_miss, from_cache, error, duration_ms, created_at
		FROM catalog_loads
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.LoadRecord{}
	for rows.Next() {
		var rec domain.LoadRecord
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.SourceURL, &rec.Status, &rec.Restaurants,
			&rec.ShapeMiss, &rec.FromCache, &rec.Error, &rec.DurationMS, &rec.CreatedAt); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
