package shared_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roombooker/shared"
	cacheMocks "roombooker/shared/cache/mocks"
	"roombooker/shared/constant"
	"roombooker/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		input    string
		expected *bool
	}{
		{input: "", expected: nil},
		{input: "true", expected: boolPtr(true)},
		{input: "1", expected: boolPtr(true)},
		{input: "F", expected: boolPtr(false)},
		{input: "yes", expected: nil},
	}

	for _, tt := range tests {
		t.Run("input_"+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	got, err := shared.ConvertStringToInt(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = shared.ConvertStringToInt("forty")
	assert.ErrorContains(t, err, `failed to convert "forty" to int`)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total, limit, expected int
	}{
		{total: 0, limit: 10, expected: 1},
		{total: 10, limit: 0, expected: 1},
		{total: 10, limit: 10, expected: 1},
		{total: 11, limit: 10, expected: 2},
		{total: 95, limit: 20, expected: 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestTransformFields(t *testing.T) {
	type updateRoom struct {
		Name      string   `db:"name"`
		Capacity  int      `db:"capacity"`
		IsBlocked *bool    `db:"is_blocked"`
		Equipment []string `db:"equipment"`
		Internal  string   `db:"-"`
		NoTag     string
	}

	blocked := false
	result := shared.TransformFields(updateRoom{
		Name:      "Sala Azul",
		IsBlocked: &blocked,
		Internal:  "ignored",
		NoTag:     "ignored",
	}, "admin")

	assert.Equal(t, "Sala Azul", result["name"])
	assert.Equal(t, &blocked, result["is_blocked"])
	assert.NotContains(t, result, "capacity")
	assert.NotContains(t, result, "equipment")
	assert.NotContains(t, result, "-")
	assert.NotContains(t, result, "NoTag")
	assert.Equal(t, "admin", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
	assert.Len(t, result, 4)
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("r-1", "id", "rooms")

	where, args := group.GetWhereClause()

	assert.Equal(t, dto.FilterGroupOperatorAnd, group.Operator)
	assert.Equal(t, "(rooms.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "r-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "rooms", shared.BuildCacheKey("rooms"))
	assert.Equal(t, "rooms:r-1", shared.BuildCacheKey("rooms", "r-1"))
	assert.Equal(t, "bookings:r-1:2025-03-10", shared.BuildCacheKey("bookings", "r-1", "2025-03-10"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "name", SortDir: dto.SortDirAsc}
	filter := dto.NewFilterGroup(
		dto.Filter{Field: "name", Value: "sala", Operator: dto.FilterOperatorLike},
		dto.Filter{Field: "capacity", Value: 6, Operator: dto.FilterOperatorGreaterEq},
	)

	first := shared.BuildCacheKeyWithQuery("rooms", params, filter)
	second := shared.BuildCacheKeyWithQuery("rooms", params, filter)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "rooms:"))
	assert.Len(t, strings.TrimPrefix(first, "rooms:"), 24)

	params.Page = 2
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("rooms", params, filter))

	params.Page = 1
	other := dto.NewFilterGroup(
		dto.Filter{Field: "name", Value: "vip", Operator: dto.FilterOperatorLike},
		dto.Filter{Field: "capacity", Value: 6, Operator: dto.FilterOperatorGreaterEq},
	)
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("rooms", params, other))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "rooms*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "rooms")

	mockCache.EXPECT().Clear(gomock.Any(), "bookings*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "bookings")
}

func boolPtr(b bool) *bool {
	return &b
}
