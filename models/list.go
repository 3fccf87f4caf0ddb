package models

import "strings"

// Sort directions accepted by ListQuery. Anything else normalizes to ASC.
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// ListQuery carries the optional filters every "read many" gateway operation
// accepts: free-text search over an allow-listed field set, a status/type
// filter, pagination, and sorting. The acting user's tenant filter is always
// applied on top of it and is never part of the query itself.
type ListQuery struct {
	// Search is matched case-insensitively against the allow-listed
	// searchable fields of the target domain. Empty means no filter.
	Search string

	// Status filters by a domain-specific status value (e.g. prescription
	// status, discharged flag). Empty means no filter.
	Status string

	Page  int
	Limit int

	// SortBy must be one of the domain's allow-listed sortable columns;
	// unknown values fall back to the domain default at query-build time.
	SortBy string

	// SortDir is SortAsc or SortDesc.
	SortDir string
}

// Normalize clamps pagination to sane bounds and canonicalizes the sort
// direction. Call before building any query.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}

	if strings.EqualFold(q.SortDir, SortDesc) {
		q.SortDir = SortDesc
	} else {
		q.SortDir = SortAsc
	}

	return q
}

// Offset returns the row offset implied by the normalized page and limit.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// PageMeta describes the position of a returned page within the full
// tenant-scoped result set.
type PageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}
