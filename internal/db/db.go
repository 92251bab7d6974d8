// Package db opens the Postgres pool, waits for the server to accept
// connections and applies the schema.
package db

import (
	"context"
	_ "embed"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/recipe-api/internal/logger"
)

//go:embed schema.sql
var schema string

// Config holds connection and readiness settings.
type Config struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	MaxOpenConns int
	MaxIdleConns int
	WaitAttempts int
	WaitInterval time.Duration
}

// DSN returns the pgx connection URL for cfg.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Pinger is anything that can check the database connection.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// WaitForDB pings p until it succeeds, at most attempts times with interval
// between tries. It gives up early when ctx is done.
func WaitForDB(ctx context.Context, p Pinger, attempts int, interval time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if err = p.PingContext(ctx); err == nil {
			logger.Log.Infow("database available", "attempt", i)
			return nil
		}
		logger.Log.Warnw("database unavailable, waiting", "attempt", i, "attempts", attempts, "error", err)

		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("database not available after %d attempts: %w", attempts, err)
}

// Connect opens the pool and waits until the database answers.
func Connect(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if err := WaitForDB(ctx, db, cfg.WaitAttempts, cfg.WaitInterval); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Statements returns the schema split into single statements.
func Statements() []string {
	var stmts []string
	for _, s := range strings.Split(schema, ";") {
		if s = strings.TrimSpace(s); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// Migrate applies the schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range Statements() {
		_, err := db.ExecContext(ctx, stmt)

		logger.Log.Infow(
			"query",
			"sql", strings.Join(strings.Fields(stmt), " "),
			"error", err,
		)

		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
