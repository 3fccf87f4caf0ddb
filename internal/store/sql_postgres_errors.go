package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification says whether a failed statement is worth retrying.
type ErrorClassification int

const (
	// NonRetryable covers constraint violations, syntax errors, data
	// exceptions and anything unrecognised. The default.
	NonRetryable ErrorClassification = iota

	// Retryable covers transient failures: lost connections, deadlock
	// rollbacks, serialization failures.
	Retryable
)

// ErrorClassificator sorts low-level database errors into retryable and
// non-retryable failures.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// PostgresErrorClassifier classifies by SQLSTATE code from the pgx driver.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify unwraps err to *pgconn.PgError and inspects its code. nil and
// non-Postgres errors come back NonRetryable.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if err != nil && errors.As(err, &pgErr) {
		return classifyPgCode(pgErr.Code)
	}

	return NonRetryable
}

// classifyPgCode maps SQLSTATE classes 08 (connection exceptions),
// 40 (transaction rollback) and 57P03 (cannot connect now) to Retryable.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
func classifyPgCode(code string) ErrorClassification {
	switch code {
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure:
		return Retryable

	case pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected:
		return Retryable

	case pgerrcode.CannotConnectNow:
		return Retryable
	}

	return NonRetryable
}
