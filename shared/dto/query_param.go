package dto

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"workforce/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty,min=1"`
	Limit   int    `json:"limit"    validate:"omitempty,min=1"`
	Offset  int    `json:"offset"   validate:"omitempty,min=0"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest populates QueryParams from the HTTP request.
// With defaultRequest set, missing or invalid values fall back to page 1, limit 10 and
// the limit is capped at constant.MaxValueLimit. An explicit offset wins over page.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = limitInt
		}
	}

	offsetSet := false

	if offset := queryParams.Get(constant.RequestParamOffset); offset != "" {
		if offsetInt, err := strconv.Atoi(offset); err == nil && offsetInt >= 0 {
			q.Offset = offsetInt
			offsetSet = true
		}
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	sortDir := queryParams.Get(constant.RequestParamSortDir)
	if sortDir == "" {
		sortDir = queryParams.Get(constant.RequestParamOrder)
	}

	if dir := strings.ToUpper(sortDir); dir == SortDirAsc || dir == SortDirDesc {
		q.SortDir = dir
	}

	if !defaultRequest {
		return
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}

	if q.Limit > constant.MaxValueLimit {
		q.Limit = constant.MaxValueLimit
	}

	if offsetSet {
		q.Page = q.Offset/q.Limit + 1

		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	q.Offset = (q.Page - 1) * q.Limit
}

// Sanitize drops a sort column outside allowed and fills the default ordering.
func (q *QueryParams) Sanitize(allowed []string) {
	if q.SortBy == "" || !slices.Contains(allowed, q.SortBy) {
		q.SortBy = constant.DefaultValueSortBy
	}

	if q.SortDir == "" {
		q.SortDir = constant.DefaultValueSortDir
	}
}
