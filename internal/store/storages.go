package store

import (
	"context"

	"github.com/medward/medward/internal/config"
	"github.com/medward/medward/internal/logger"
	"github.com/medward/medward/migrations"
)

// Storages bundles every repository the service layer depends on, all backed
// by the same PostgreSQL connection pool.
type Storages struct {
	UserRepository       UserRepository
	CredentialRepository CredentialRepository
	HospitalRepository   HospitalRepository
	PatientRepository    PatientRepository
	ClinicalRepository   ClinicalRepository
	SequenceRepository   SequenceRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies pending migrations, and wires
// up all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		return nil, err
	}

	return &Storages{
		UserRepository:       NewUserRepository(db, log),
		CredentialRepository: NewCredentialRepository(db, log),
		HospitalRepository:   NewHospitalRepository(db, log),
		PatientRepository:    NewPatientRepository(db, log),
		ClinicalRepository:   NewClinicalRepository(db, log),
		SequenceRepository:   NewSequenceRepository(db, log),
		db:                   db,
	}, nil
}

// Migrate applies pending schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// Ping reports database connectivity. Used by the health endpoint.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (s *Storages) Close() error {
	return s.db.Close()
}
