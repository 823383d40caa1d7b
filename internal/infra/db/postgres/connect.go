package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"github.com/databricks-chaima/appsOPM2025/internal/application"
	"github.com/databricks-chaima/appsOPM2025/internal/infra/db"
)

// TokenSource supplies the database password at connect time. Managed
// postgres services that authenticate with short-lived OAuth tokens return
// a fresh token on every call; static deployments return the configured
// password.
type TokenSource func(ctx context.Context) (string, error)

// StaticToken wraps a fixed password as a TokenSource.
func StaticToken(password string) TokenSource {
	return func(context.Context) (string, error) { return password, nil }
}

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(10)
	conn.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx2); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// NewSession wraps Connect in the shared refresh guard. dsnFor builds the
// connection string around whatever credential the token source currently
// yields, so every refresh reconnects with a fresh token.
func NewSession(dsnFor func(password string) string, tokens TokenSource, maxAge time.Duration, clock application.Clock) *db.Session {
	return db.NewSession(func(ctx context.Context) (*sql.DB, error) {
		token, err := tokens(ctx)
		if err != nil {
			return nil, err
		}
		return Connect(ctx, dsnFor(token))
	}, maxAge, clock)
}
