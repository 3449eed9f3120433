package dto_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"workforce/shared/constant"
	"workforce/shared/dto"
	"workforce/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{CreatedAt: createdAt, UpdatedAt: updatedAt})

	assert.Equal(t, createdAt.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, updatedAt.Format(constant.DateFormat), metadata.UpdatedAt)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          url.Values
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:           "defaults",
			query:          url.Values{},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: 1, Limit: 10, Offset: 0},
		},
		{
			name:           "no defaults",
			query:          url.Values{},
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
		{
			name:           "page and limit",
			query:          url.Values{"page": {"3"}, "limit": {"20"}, "sort_by": {"name"}, "sort_dir": {"asc"}},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: 3, Limit: 20, Offset: 40, SortBy: "name", SortDir: "ASC"},
		},
		{
			name:           "offset wins over page",
			query:          url.Values{"page": {"3"}, "limit": {"5"}, "offset": {"12"}},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: 3, Limit: 5, Offset: 12},
		},
		{
			name:           "order alias",
			query:          url.Values{"order": {"desc"}},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: 1, Limit: 10, SortDir: "DESC"},
		},
		{
			name:           "limit capped",
			query:          url.Values{"limit": {"500"}},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: 1, Limit: constant.MaxValueLimit},
		},
		{
			name:           "invalid values ignored",
			query:          url.Values{"page": {"-1"}, "limit": {"abc"}, "offset": {"-4"}, "sort_dir": {"sideways"}},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: 1, Limit: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/lodgings?"+tt.query.Encode(), nil)

			q := dto.QueryParams{}
			q.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, q)
		})
	}
}

func TestQueryParams_Sanitize(t *testing.T) {
	allowed := []string{"name", "created_at"}

	q := dto.QueryParams{SortBy: "password_hash; DROP TABLE users"}
	q.Sanitize(allowed)
	assert.Equal(t, constant.DefaultValueSortBy, q.SortBy)
	assert.Equal(t, dto.SortDirDesc, q.SortDir)

	q = dto.QueryParams{SortBy: "name", SortDir: dto.SortDirAsc}
	q.Sanitize(allowed)
	assert.Equal(t, "name", q.SortBy)
	assert.Equal(t, dto.SortDirAsc, q.SortDir)
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "location", Value: "Jakarta", Operator: dto.FilterOperatorEq, Table: "lodgings"},
			dto.Filter{Field: "name", Value: "50%_off", Operator: dto.FilterOperatorLike},
			dto.Filter{Field: "name", Value: "x", Operator: "bogus"},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, `(lodgings.location = :location AND LOWER(name) LIKE LOWER(:name) ESCAPE '\')`, where)
	assert.Equal(t, map[string]any{"location": "Jakarta", "name": `%50\%\_off%`}, args)

	empty := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}

func TestFilterGroup_Nested(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "check_in_date", Value: "2025-01-01", Operator: dto.FilterOperatorGreaterEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "status", ArgName: "status_a", Value: "pending", Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "status", ArgName: "status_b", Value: "confirmed", Operator: dto.FilterOperatorNotEq},
				},
			},
			dto.Filter{Field: "deleted_at", Operator: dto.FilterIsNull},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(check_in_date >= :check_in_date AND (status = :status_a OR status != :status_b) AND deleted_at IS NULL)", where)
	assert.Len(t, args, 3)
}

func TestFilter_In(t *testing.T) {
	filter := dto.Filter{Field: "id", Value: []string{"a", "b"}, Operator: dto.FilterOperatorIn}

	where, args := filter.GetWhereClause()
	assert.Equal(t, "id IN (:id_0, :id_1)", where)
	assert.Equal(t, map[string]any{"id_0": "a", "id_1": "b"}, args)

	filter.Value = []string{}
	where, _ = filter.GetWhereClause()
	assert.Equal(t, "FALSE", where)

	filter.Value = "a"
	where, args = filter.GetWhereClause()
	assert.Equal(t, "id = :id", where)
	assert.Equal(t, "a", args["id"])
}
