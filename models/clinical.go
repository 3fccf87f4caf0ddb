package models

import "time"

// PrescriptionStatus enumerates the lifecycle states of a prescription.
type PrescriptionStatus string

const (
	PrescriptionActive    PrescriptionStatus = "ACTIVE"
	PrescriptionDispensed PrescriptionStatus = "DISPENSED"
)

// Vital is a single vital-signs reading recorded by a nurse for a patient.
type Vital struct {
	VitalID    int64 `json:"id"`
	HospitalID int64 `json:"hospital_id"`
	PatientID  int64 `json:"patient_id"`

	// RecordedBy is the user ID of the nurse who took the reading.
	RecordedBy int64 `json:"recorded_by"`

	TemperatureC     float64 `json:"temperature_c"`
	PulseBPM         int     `json:"pulse_bpm"`
	RespiratoryRate  int     `json:"respiratory_rate"`
	BloodPressure    string  `json:"blood_pressure"`
	OxygenSaturation int     `json:"oxygen_saturation,omitempty"`

	RecordedAt time.Time `json:"recorded_at"`
}

// TableName returns the name of the database table
// associated with the Vital model.
func (v Vital) TableName() string {
	return "vitals"
}

// CareNote is a free-text nursing note attached to a patient.
type CareNote struct {
	NoteID     int64     `json:"id"`
	HospitalID int64     `json:"hospital_id"`
	PatientID  int64     `json:"patient_id"`
	AuthorID   int64     `json:"author_id"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the CareNote model.
func (n CareNote) TableName() string {
	return "care_notes"
}

// Prescription is a medication order written by a doctor and later dispensed
// by a pharmacist. DisplayID is the human-readable per-hospital identifier
// (e.g. "SMH-RX-0007"), distinct from the primary key.
type Prescription struct {
	PrescriptionID int64  `json:"id"`
	HospitalID     int64  `json:"hospital_id"`
	DisplayID      string `json:"display_id"`
	PatientID      int64  `json:"patient_id"`
	DoctorID       int64  `json:"doctor_id"`

	Medication string `json:"medication"`
	Dosage     string `json:"dosage"`
	Frequency  string `json:"frequency"`
	Duration   string `json:"duration,omitempty"`
	Notes      string `json:"notes,omitempty"`

	Status      PrescriptionStatus `json:"status"`
	DispensedBy *int64             `json:"dispensed_by,omitempty"`
	DispensedAt *time.Time         `json:"dispensed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Prescription model.
func (p Prescription) TableName() string {
	return "prescriptions"
}
