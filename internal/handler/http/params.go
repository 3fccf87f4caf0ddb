package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/medward/medward/models"
)

// idParam parses the {id} URL parameter of the matched route.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// parseListQuery reads the optional listing parameters every "read many"
// endpoint accepts. Values are normalized later at query-build time; unknown
// sort fields fall back to the domain default there.
func parseListQuery(r *http.Request) models.ListQuery {
	values := r.URL.Query()

	page, _ := strconv.Atoi(values.Get("page"))
	limit, _ := strconv.Atoi(values.Get("limit"))

	return models.ListQuery{
		Search:  values.Get("search"),
		Status:  values.Get("status"),
		Page:    page,
		Limit:   limit,
		SortBy:  values.Get("sort_by"),
		SortDir: values.Get("sort_dir"),
	}
}

// pageMeta builds the page descriptor echoed alongside every listing.
func pageMeta(q models.ListQuery, total int64) models.PageMeta {
	q = q.Normalize()
	return models.PageMeta{
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
	}
}
