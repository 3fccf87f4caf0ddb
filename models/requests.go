package models

import "time"

// Request DTOs decoded once at the HTTP boundary. Each handler validates its
// request exactly once and passes typed values to the service layer.

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type CreateHospitalRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

type CreateStaffRequest struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Roles     []string `json:"roles"`
}

type CreatePatientRequest struct {
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      string    `json:"gender,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
}

type UpdatePatientRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	PhotoURL  *string `json:"photo_url,omitempty"`
}

type CreateVitalRequest struct {
	TemperatureC     float64 `json:"temperature_c"`
	PulseBPM         int     `json:"pulse_bpm"`
	RespiratoryRate  int     `json:"respiratory_rate"`
	BloodPressure    string  `json:"blood_pressure"`
	OxygenSaturation int     `json:"oxygen_saturation,omitempty"`
}

type CreateCareNoteRequest struct {
	Note string `json:"note"`
}

type CreatePrescriptionRequest struct {
	Medication string `json:"medication"`
	Dosage     string `json:"dosage"`
	Frequency  string `json:"frequency"`
	Duration   string `json:"duration,omitempty"`
	Notes      string `json:"notes,omitempty"`
}
