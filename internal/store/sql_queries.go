// SPDX-License-Identifier: Apache-2.0

package store

// Prepared query texts shared by the repositories. Dynamic list queries
// (search, filters, pagination, sorting) are built with squirrel in the
// repository files instead.

const (
	createUser = `INSERT INTO users (hospital_id, username, email, first_name, last_name, password_hash, must_change_password)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING user_id, created_at;`

	insertUserRole = `INSERT INTO user_roles (user_id, role) VALUES ($1, $2);`

	userColumns = `user_id, hospital_id, username, email, first_name, last_name, password_hash, must_change_password, created_at`

	// Tenant-bound users are resolved through their hospital row, so an
	// account whose hospital has vanished fails the lookup instead of
	// yielding a half-valid identity. SUPER_ADMIN carries a NULL
	// hospital_id and passes the guard directly.
	findUserByID = `SELECT u.user_id, u.hospital_id, u.username, u.email, u.first_name, u.last_name, u.password_hash, u.must_change_password, u.created_at
    FROM users u
    LEFT JOIN hospitals h ON h.hospital_id = u.hospital_id
    WHERE u.user_id = $1 AND (u.hospital_id IS NULL OR h.hospital_id IS NOT NULL);`

	findUserByUsername = `SELECT ` + userColumns + `
    FROM users
    WHERE username = $1;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findRolesByUser = `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role;`

	findRolesByUsers = `SELECT user_id, role FROM user_roles WHERE user_id = ANY($1) ORDER BY user_id, role;`
)

const (
	recentPasswordHistory = `SELECT entry_id, user_id, password_hash, created_at
    FROM password_history
    WHERE user_id = $1
    ORDER BY created_at DESC, entry_id DESC
    LIMIT $2;`

	updatePasswordHash = `UPDATE users
    SET password_hash = $2, must_change_password = FALSE
    WHERE user_id = $1;`

	insertPasswordHistory = `INSERT INTO password_history (user_id, password_hash) VALUES ($1, $2);`

	setMustChangePassword = `UPDATE users SET must_change_password = TRUE WHERE user_id = $1;`

	revokeUserRefreshTokens = `UPDATE refresh_tokens
    SET revoked = TRUE, revoked_at = NOW()
    WHERE user_id = $1 AND NOT revoked;`

	insertRefreshToken = `INSERT INTO refresh_tokens (token_id, user_id, expires_at) VALUES ($1, $2, $3);`

	findRefreshToken = `SELECT token_id, user_id, revoked, revoked_at, expires_at, created_at
    FROM refresh_tokens
    WHERE token_id = $1;`

	revokeRefreshToken = `UPDATE refresh_tokens
    SET revoked = TRUE, revoked_at = NOW()
    WHERE token_id = $1 AND NOT revoked;`

	supersedeResetTokens = `UPDATE password_reset_tokens
    SET used = TRUE, used_at = NOW()
    WHERE user_id = $1 AND NOT used;`

	insertResetToken = `INSERT INTO password_reset_tokens (user_id, token_hash, expires_at)
    VALUES ($1, $2, $3)
    RETURNING token_id, created_at;`

	findResetTokenByHash = `SELECT token_id, user_id, token_hash, expires_at, used, used_at, created_at
    FROM password_reset_tokens
    WHERE token_hash = $1;`

	markResetTokenUsed = `UPDATE password_reset_tokens SET used = TRUE, used_at = NOW() WHERE token_id = $1;`

	deleteStaleRefreshTokens = `DELETE FROM refresh_tokens
    WHERE (revoked OR expires_at < NOW()) AND created_at < $1;`
)

const (
	createHospital = `INSERT INTO hospitals (name, code, address, phone)
    VALUES ($1, $2, $3, $4)
    RETURNING hospital_id, created_at;`

	findHospitalByID = `SELECT hospital_id, name, code, address, phone, created_at
    FROM hospitals
    WHERE hospital_id = $1;`
)

const (
	patientColumns = `patient_id, hospital_id, display_id, first_name, last_name, date_of_birth, gender, phone, address, photo_url, is_discharged, discharged_at, created_at`

	createPatient = `INSERT INTO patients (hospital_id, display_id, first_name, last_name, date_of_birth, gender, phone, address, photo_url)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    RETURNING patient_id, created_at;`

	findPatient = `SELECT ` + patientColumns + `
    FROM patients
    WHERE patient_id = $1 AND hospital_id = $2;`

	dischargePatient = `UPDATE patients
    SET is_discharged = TRUE, discharged_at = NOW()
    WHERE patient_id = $1 AND hospital_id = $2
    RETURNING ` + patientColumns + `;`
)

const (
	insertVital = `INSERT INTO vitals (hospital_id, patient_id, recorded_by, temperature_c, pulse_bpm, respiratory_rate, blood_pressure, oxygen_saturation)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING vital_id, recorded_at;`

	listVitals = `SELECT vital_id, hospital_id, patient_id, recorded_by, temperature_c, pulse_bpm, respiratory_rate, blood_pressure, oxygen_saturation, recorded_at
    FROM vitals
    WHERE patient_id = $1 AND hospital_id = $2
    ORDER BY recorded_at DESC;`

	insertCareNote = `INSERT INTO care_notes (hospital_id, patient_id, author_id, note)
    VALUES ($1, $2, $3, $4)
    RETURNING note_id, created_at;`

	listCareNotes = `SELECT note_id, hospital_id, patient_id, author_id, note, created_at
    FROM care_notes
    WHERE patient_id = $1 AND hospital_id = $2
    ORDER BY created_at DESC;`

	prescriptionColumns = `prescription_id, hospital_id, display_id, patient_id, doctor_id, medication, dosage, frequency, duration, notes, status, dispensed_by, dispensed_at, created_at`

	insertPrescription = `INSERT INTO prescriptions (hospital_id, display_id, patient_id, doctor_id, medication, dosage, frequency, duration, notes, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    RETURNING prescription_id, created_at;`

	findPrescription = `SELECT ` + prescriptionColumns + `
    FROM prescriptions
    WHERE prescription_id = $1 AND hospital_id = $2;`

	dispensePrescription = `UPDATE prescriptions
    SET status = 'DISPENSED', dispensed_by = $3, dispensed_at = NOW()
    WHERE prescription_id = $1 AND hospital_id = $2 AND status = 'ACTIVE'
    RETURNING ` + prescriptionColumns + `;`
)

const (
	// Atomic per-tenant counter. The upsert makes concurrent callers
	// serialize on the row, so no two generate the same value.
	nextSequenceValue = `INSERT INTO sequences (hospital_id, kind, value)
    VALUES ($1, $2, 1)
    ON CONFLICT (hospital_id, kind) DO UPDATE SET value = sequences.value + 1
    RETURNING value;`
)
