package mysql

import (
	"context"
	"database/sql"
)

// Migrate creates the inspection schema if it does not exist yet.
func Migrate(ctx context.Context, conn *sql.DB) error {
	stmts := []string{`
CREATE TABLE IF NOT EXISTS inspections (
    inspection_id     VARCHAR(64) PRIMARY KEY,
    factory_id        VARCHAR(32) NOT NULL,
    camera_id         VARCHAR(32) NOT NULL,
    timestamp         DATETIME NOT NULL,
    image_path        VARCHAR(512) NOT NULL,
    prediction        VARCHAR(8) NOT NULL,
    confidence_score  DOUBLE NOT NULL,
    defect_type       VARCHAR(64),
    inference_time_ms BIGINT NOT NULL,
    model_version     VARCHAR(32) NOT NULL,
    date              DATE NOT NULL,
    INDEX idx_inspections_timestamp (timestamp)
);`, `
CREATE TABLE IF NOT EXISTS factories (
    factory_id VARCHAR(32) PRIMARY KEY,
    region     VARCHAR(16) NOT NULL,
    cameras    VARCHAR(255) NOT NULL
);`}
	for _, q := range stmts {
		if _, err := conn.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
