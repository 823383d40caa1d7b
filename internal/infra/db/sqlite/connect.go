package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/databricks-chaima/appsOPM2025/internal/application"
	"github.com/databricks-chaima/appsOPM2025/internal/infra/db"
)

// Open a local sqlite database file. Used for demo deployments and tests.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers; one connection avoids busy errors.
	conn.SetMaxOpenConns(1)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx2); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// NewSession wraps Open in the shared refresh guard. sqlite has no
// credential to rotate, so maxAge can be generous.
func NewSession(path string, maxAge time.Duration, clock application.Clock) *db.Session {
	return db.NewSession(func(ctx context.Context) (*sql.DB, error) {
		return Open(ctx, path)
	}, maxAge, clock)
}
