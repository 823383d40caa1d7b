package mysql

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/databricks-chaima/appsOPM2025/internal/application"
	"github.com/databricks-chaima/appsOPM2025/internal/infra/db"
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(10)
	conn.SetConnMaxLifetime(30 * time.Minute)

	// test ping
	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx2); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// NewSession wraps Connect in the shared refresh guard so the warehouse
// handle is reopened once it goes stale.
func NewSession(dsn string, maxAge time.Duration, clock application.Clock) *db.Session {
	return db.NewSession(func(ctx context.Context) (*sql.DB, error) {
		return Connect(ctx, dsn)
	}, maxAge, clock)
}
