package shared_test

import (
	"context"
	"errors"
	"rental/shared"
	"rental/shared/cache/mocks"
	"rental/shared/constant"
	"rental/shared/dto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		input    string
		expected *bool
	}{
		{input: "", expected: nil},
		{input: "true", expected: boolPtr(true)},
		{input: "0", expected: boolPtr(false)},
		{input: "F", expected: boolPtr(false)},
		{input: "random", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToNumbers(t *testing.T) {
	seats, err := shared.ConvertStringToInt(" 4 ")
	require.NoError(t, err)
	assert.Equal(t, 4, seats)

	_, err = shared.ConvertStringToInt("four")
	assert.Error(t, err)

	rate, err := shared.ConvertStringToFloat("12.50")
	require.NoError(t, err)
	assert.InDelta(t, 12.5, rate, 0.0001)

	_, err = shared.ConvertStringToFloat("")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	assert.Equal(t, 1, shared.CalculateTotalPage(0, 10))
	assert.Equal(t, 1, shared.CalculateTotalPage(100, 0))
	assert.Equal(t, 10, shared.CalculateTotalPage(100, 10))
	assert.Equal(t, 11, shared.CalculateTotalPage(101, 10))
}

func TestTransformFields(t *testing.T) {
	type patch struct {
		Name    string   `db:"name"`
		Seats   *int     `db:"seats"`
		Rate    *float64 `db:"price_per_day"`
		NoDBTag string
	}

	seats := 0

	result := shared.TransformFields(patch{Name: "Swift", Seats: &seats, NoDBTag: "ignored"}, "admin-1")

	assert.Equal(t, "Swift", result["name"])
	assert.Equal(t, &seats, result["seats"])
	assert.NotContains(t, result, "price_per_day")
	assert.Equal(t, "admin-1", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
	assert.Len(t, result, 4)
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("123", "id", "bookings")

	require.Len(t, result.Filters, 1)
	assert.Equal(t, dto.Filter{Field: "id", Value: "123", Operator: dto.FilterOperatorEq, Table: "bookings"}, result.Filters[0])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "car:get:abc", shared.BuildCacheKey("car:get", "abc"))
	assert.Equal(t, "limiter", shared.BuildCacheKey("limiter"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	available := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  []any{dto.Filter{Field: "availability", Operator: dto.FilterOperatorEq, Value: true}},
	}
	booked := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  []any{dto.Filter{Field: "availability", Operator: dto.FilterOperatorEq, Value: false}},
	}

	first := shared.BuildCacheKeyWithQuery("car:gets", params, available)

	assert.True(t, strings.HasPrefix(first, "car:gets:1:10:"))
	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("car:gets", params, available))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("car:gets", params, booked))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("car:gets", dto.QueryParams{Page: 2, Limit: 10}, available))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := mocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "car:gets:*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "car:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "bike:gets:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "bike:gets")
}

func boolPtr(b bool) *bool {
	return &b
}
