package postgres

import (
	"context"
	"database/sql"
)

// Migrate creates the inspection schema if it does not exist yet.
func Migrate(ctx context.Context, conn *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS inspections (
    inspection_id     TEXT PRIMARY KEY,
    factory_id        TEXT NOT NULL,
    camera_id         TEXT NOT NULL,
    timestamp         TIMESTAMPTZ NOT NULL,
    image_path        TEXT NOT NULL,
    prediction        TEXT NOT NULL,
    confidence_score  DOUBLE PRECISION NOT NULL,
    defect_type       TEXT,
    inference_time_ms BIGINT NOT NULL,
    model_version     TEXT NOT NULL,
    date              DATE NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_inspections_timestamp ON inspections(timestamp);
CREATE TABLE IF NOT EXISTS factories (
    factory_id TEXT PRIMARY KEY,
    region     TEXT NOT NULL,
    cameras    TEXT[] NOT NULL
);`
	_, err := conn.ExecContext(ctx, schema)
	return err
}
