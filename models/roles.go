// SPDX-License-Identifier: Apache-2.0

package models

import "fmt"

// Role is a closed enumeration of the capability sets a user may hold.
// Roles are flat: there is no hierarchy or inheritance, and a permission
// check is a plain membership test against the user's role set.
type Role string

const (
	// RoleSuperAdmin is the platform operator. It is the only tenant-less
	// role; super admins manage hospitals, not patients.
	RoleSuperAdmin Role = "SUPER_ADMIN"

	// RoleHospitalAdmin administers a single hospital: staff accounts,
	// forced password rotation, tenant-level settings.
	RoleHospitalAdmin Role = "HOSPITAL_ADMIN"

	RoleDoctor       Role = "DOCTOR"
	RoleNurse        Role = "NURSE"
	RolePharmacist   Role = "PHARMACIST"
	RoleReceptionist Role = "RECEPTIONIST"
)

// allRoles is the exhaustive list of valid roles. Kept in sync with the
// constants above; ParseRole rejects anything not listed here.
var allRoles = map[Role]struct{}{
	RoleSuperAdmin:    {},
	RoleHospitalAdmin: {},
	RoleDoctor:        {},
	RoleNurse:         {},
	RolePharmacist:    {},
	RoleReceptionist:  {},
}

// ParseRole converts a raw string into a Role, failing on anything outside
// the closed enumeration.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := allRoles[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is a member of the closed role enumeration.
func (r Role) Valid() bool {
	_, ok := allRoles[r]
	return ok
}

// Roles is the set of roles held by a user.
type Roles []Role

// Has reports whether the set contains the required role. This is the
// entire permission model: true iff required is a member of the set.
func (rs Roles) Has(required Role) bool {
	for _, r := range rs {
		if r == required {
			return true
		}
	}
	return false
}

// HasAny reports whether the set contains at least one of the given roles.
// Used for the few route families shared between two roles (e.g. a
// prescription listing readable by doctors and pharmacists).
func (rs Roles) HasAny(required ...Role) bool {
	for _, r := range required {
		if rs.Has(r) {
			return true
		}
	}
	return false
}

// Strings returns the role set as plain strings, for persistence and JSON.
func (rs Roles) Strings() []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, string(r))
	}
	return out
}

// ParseRoles converts raw strings into a validated role set.
func ParseRoles(raw []string) (Roles, error) {
	roles := make(Roles, 0, len(raw))
	for _, s := range raw {
		r, err := ParseRole(s)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, nil
}
