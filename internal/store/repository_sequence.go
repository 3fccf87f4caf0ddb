package store

import (
	"context"
	"fmt"

	"github.com/medward/medward/internal/logger"
)

// sequenceRepository is the PostgreSQL-backed implementation of
// [SequenceRepository]. Counters live in the "sequences" table keyed by
// (hospital_id, kind); NextValue relies on an INSERT ... ON CONFLICT DO
// UPDATE upsert, so the increment is a single atomic statement and two
// concurrent callers can never be handed the same number.
type sequenceRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSequenceRepository constructs a [SequenceRepository] backed by the
// provided database connection and logger.
func NewSequenceRepository(db *DB, logger *logger.Logger) SequenceRepository {
	logger.Debug().Msg("creating sequence repository")
	return &sequenceRepository{
		db:     db,
		logger: logger,
	}
}

// NextValue increments and returns the counter for (hospitalID, kind),
// creating it at 1 on first use. A transient failure (connection loss,
// serialization rollback) is retried once before giving up.
func (r *sequenceRepository) NextValue(ctx context.Context, hospitalID int64, kind string) (int64, error) {
	log := logger.FromContext(ctx)

	var value int64
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		row := r.db.QueryRowContext(ctx, nextSequenceValue, hospitalID, kind)
		if err = row.Scan(&value); err == nil {
			return value, nil
		}
		if r.db.errorClassificator.Classify(err) != Retryable {
			break
		}
		log.Warn().Err(err).Str("func", "*sequenceRepository.NextValue").Msg("retrying sequence advance after transient error")
	}

	log.Err(err).Str("func", "*sequenceRepository.NextValue").Msg("error: advancing sequence")
	return 0, fmt.Errorf("unexpected DB error: %w", err)
}
