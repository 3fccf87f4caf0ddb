// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"

	"github.com/medward/medward/internal/store"
)

// Kind tags embedded in human-readable display IDs.
const (
	kindPatient      = "PAT"
	kindPrescription = "RX"
)

// nextDisplayID allocates the next display ID for a record kind inside a
// tenant, formatted as {HOSPITAL_CODE}-{KIND}-{NNNN}. The underlying counter
// is advanced atomically in the database, so two concurrent allocations can
// never produce the same ID. Values past 9999 widen naturally
// ("SMH-PAT-10000").
func nextDisplayID(ctx context.Context, hospitals store.HospitalRepository, sequences store.SequenceRepository, hospitalID int64, kind string) (string, error) {
	hospital, err := hospitals.FindHospitalByID(ctx, hospitalID)
	if err != nil {
		return "", fmt.Errorf("hospital lookup failed: %w", err)
	}

	value, err := sequences.NextValue(ctx, hospitalID, kind)
	if err != nil {
		return "", fmt.Errorf("sequence advance failed: %w", err)
	}

	return fmt.Sprintf("%s-%s-%04d", hospital.Code, kind, value), nil
}
