package models

import "time"

// Patient is a tenant-scoped clinical subject. DisplayID is the
// human-readable per-hospital identifier (e.g. "SMH-PAT-0042") and is
// distinct from the PatientID primary key.
type Patient struct {
	PatientID  int64  `json:"id"`
	HospitalID int64  `json:"hospital_id"`
	DisplayID  string `json:"display_id"`

	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      string    `json:"gender,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`

	// PhotoURL is an opaque reference to an externally hosted asset.
	// The server never inspects or proxies the binary content.
	PhotoURL string `json:"photo_url,omitempty"`

	// IsDischarged blocks creation of new vitals, care notes, and
	// prescriptions referencing this patient while still permitting reads.
	IsDischarged bool       `json:"is_discharged"`
	DischargedAt *time.Time `json:"discharged_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Patient model.
func (p Patient) TableName() string {
	return "patients"
}
