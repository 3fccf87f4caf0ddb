package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver

	"github.com/medward/medward/internal/config"
	"github.com/medward/medward/internal/logger"
)

const (
	maxOpenConns = 10
	maxIdleConns = 4
)

// DB bundles the sql connection pool with the error classifier the
// repositories consult for retry decisions.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnectPostgres opens a pgx-backed pool for cfg.DSN and verifies it with
// a ping before handing it out. A DB that cannot be pinged is never returned.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error opening database connection")
		return nil, fmt.Errorf("error opening database connection: %w", err)
	}

	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxIdleConns)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("database ping failed")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database")

	return &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}, nil
}

// postgresError returns the SQLSTATE code carried by err, or "" when err is
// not a Postgres driver error.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
