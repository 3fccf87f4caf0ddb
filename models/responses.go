package models

// Response DTOs written once at the HTTP boundary.

// ErrorResponse is the uniform error envelope. Message carries the
// user-facing description; internals are never included.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is returned by a successful login. MustChangePassword tells
// the client that every protected action will be rejected until the password
// is rotated.
type LoginResponse struct {
	TokenPair
	MustChangePassword bool `json:"must_change_password"`
}

// StaffCreatedResponse is returned when a hospital admin onboards a staff
// member. The temporary password is shown exactly once, alongside being
// dispatched in the welcome email.
type StaffCreatedResponse struct {
	User         User   `json:"user"`
	TempPassword string `json:"temp_password"`

	// Warning is set when the welcome email could not be delivered; the
	// account itself is already committed.
	Warning string `json:"warning,omitempty"`
}

// PatientListResponse pages tenant-scoped patients.
type PatientListResponse struct {
	Patients []Patient `json:"patients"`
	Meta     PageMeta  `json:"meta"`
}

// PrescriptionListResponse pages tenant-scoped prescriptions.
type PrescriptionListResponse struct {
	Prescriptions []Prescription `json:"prescriptions"`
	Meta          PageMeta       `json:"meta"`
}

// UserListResponse pages tenant-scoped staff accounts.
type UserListResponse struct {
	Users []User   `json:"users"`
	Meta  PageMeta `json:"meta"`
}
