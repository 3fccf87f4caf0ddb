// SPDX-License-Identifier: Apache-2.0

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDuplicateUser is returned when an INSERT into the users table
	// fails because the username or email is already registered.
	ErrDuplicateUser = errors.New("username or email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrDuplicateHospital is returned when a hospital with the same name
	// is already registered.
	ErrDuplicateHospital = errors.New("hospital already exists")

	// ErrHospitalNotFound is returned when a hospital lookup by ID matches
	// no rows.
	ErrHospitalNotFound = errors.New("hospital was not found")

	// ErrPatientNotFound is returned when a patient lookup scoped to a
	// tenant matches no rows — either the row is absent or it belongs to
	// a different hospital; the two cases are deliberately
	// indistinguishable.
	ErrPatientNotFound = errors.New("patient was not found")

	// ErrPrescriptionNotFound is the tenant-scoped miss for prescriptions.
	ErrPrescriptionNotFound = errors.New("prescription was not found")

	// ErrPrescriptionDispensed is returned when a dispense targets a
	// prescription that is no longer ACTIVE.
	ErrPrescriptionDispensed = errors.New("prescription already dispensed")

	// ErrRefreshTokenNotFound is returned when a refresh token row lookup
	// by ID matches no rows.
	ErrRefreshTokenNotFound = errors.New("refresh token was not found")

	// ErrResetTokenNotFound is returned when a reset token digest matches
	// no stored row.
	ErrResetTokenNotFound = errors.New("reset token was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
