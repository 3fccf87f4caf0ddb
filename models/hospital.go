package models

import (
	"strings"
	"time"
	"unicode"
)

// Hospital is a tenant: the unit of data isolation. Every patient, clinical
// record, and non-super-admin user row carries a HospitalID, and every query
// made on behalf of a tenant-bound user is filtered by it.
type Hospital struct {
	HospitalID int64  `json:"id"`
	Name       string `json:"name"`

	// Code is the short uppercase identifier derived from the hospital
	// name, used as the prefix of human-readable display IDs.
	Code string `json:"code"`

	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Hospital model.
func (h Hospital) TableName() string {
	return "hospitals"
}

// DeriveHospitalCode builds the display-ID prefix from a hospital name:
// the first letter of each word, uppercased, truncated to 4 letters.
// Truncation counts runes, not bytes, so multi-byte initials survive intact.
// Non-letter leading characters are skipped so "St. Mary's" yields "SM".
// Returns "H" for a name with no usable letters so the prefix is never empty.
func DeriveHospitalCode(name string) string {
	var b strings.Builder
	letters := 0
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			if unicode.IsLetter(r) {
				b.WriteRune(unicode.ToUpper(r))
				letters++
				break
			}
		}
		if letters >= 4 {
			break
		}
	}

	code := b.String()
	if code == "" {
		code = "H"
	}
	return code
}
