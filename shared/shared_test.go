package shared_test

import (
	"context"
	"errors"
	"testing"

	"workforce/shared"
	"workforce/shared/cache/mocks"
	"workforce/shared/dto"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "false", input: "false", expected: boolPtr(false)},
		{name: "numeric", input: "1", expected: boolPtr(true)},
		{name: "upper case", input: "FALSE", expected: boolPtr(false)},
		{name: "invalid string returns nil", input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestFilterByID(t *testing.T) {
	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: "123", Operator: dto.FilterOperatorEq, Table: "bookings"},
		},
	}

	assert.Equal(t, expected, shared.FilterByID("123", "id", "bookings"))
}

func TestAppendFilter(t *testing.T) {
	group := dto.FilterGroup{}

	shared.AppendFilter(&group, "lodgings", "location", dto.FilterOperatorEq, "")
	shared.AppendFilter(&group, "lodgings", "availability", dto.FilterOperatorEq, (*bool)(nil))
	assert.Empty(t, group.Filters)

	shared.AppendFilter(&group, "lodgings", "location", dto.FilterOperatorEq, "Bali")
	shared.AppendFilter(&group, "lodgings", "availability", dto.FilterOperatorEq, boolPtr(false))

	assert.Equal(t, dto.FilterGroupOperatorAnd, group.Operator)
	assert.Equal(t, []any{
		dto.Filter{Field: "location", Value: "Bali", Operator: dto.FilterOperatorEq, Table: "lodgings"},
		dto.Filter{Field: "availability", Value: false, Operator: dto.FilterOperatorEq, Table: "lodgings"},
	}, group.Filters)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "lodging:get:42", shared.BuildCacheKey("lodging:get", "42"))

	params := dto.QueryParams{Limit: 10, SortBy: "name"}
	first := shared.BuildCacheKeyWithQuery("lodging:gets", params, dto.FilterGroup{})
	second := shared.BuildCacheKeyWithQuery("lodging:gets", params, dto.FilterGroup{})
	third := shared.BuildCacheKeyWithQuery("lodging:gets", dto.QueryParams{Limit: 20}, dto.FilterGroup{})

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, third)
	assert.Contains(t, first, "lodging:gets:")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	cacheMock := mocks.NewMockRedisCache(ctrl)

	cacheMock.EXPECT().Clear(gomock.Any(), "booking:gets*").Return(nil)
	cacheMock.EXPECT().Clear(gomock.Any(), "booking:count*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), cacheMock, "booking:gets", "booking:count")
}

func TestVersionedPrefix(t *testing.T) {
	ctrl := gomock.NewController(t)
	cacheMock := mocks.NewMockRedisCache(ctrl)

	cacheMock.EXPECT().Version(gomock.Any(), "lodging").Return(int64(3), nil)
	cacheMock.EXPECT().Version(gomock.Any(), "booking").Return(int64(0), errors.New("redis down"))

	assert.Equal(t, "lodging:get:v3", shared.VersionedPrefix(context.Background(), cacheMock, "lodging", "lodging:get"))
	assert.Equal(t, "booking:get:v0", shared.VersionedPrefix(context.Background(), cacheMock, "booking", "booking:get"))
}

func TestInvalidateBumpsBeforeClearing(t *testing.T) {
	ctrl := gomock.NewController(t)
	cacheMock := mocks.NewMockRedisCache(ctrl)

	gomock.InOrder(
		cacheMock.EXPECT().Bump(gomock.Any(), "lodging").Return(nil),
		cacheMock.EXPECT().Clear(gomock.Any(), "lodging:get*").Return(nil),
	)

	shared.Invalidate(context.Background(), cacheMock, "lodging", "lodging:get")
}
