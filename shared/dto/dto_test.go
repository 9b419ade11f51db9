package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"roombooker/shared/constant"
	"roombooker/shared/dto"
	"roombooker/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	var metadata dto.Metadata
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: createdAt.Add(time.Hour),
		CreatedBy:  "admin",
		ModifiedBy: "system",
	})

	assert.NotEmpty(t, metadata.CreatedAt)
	assert.NotEqual(t, metadata.CreatedAt, metadata.ModifiedAt)
	assert.Equal(t, "admin", metadata.CreatedBy)
	assert.Equal(t, "system", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=name&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults applied",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "invalid numbers ignored",
			query:          "page=-1&limit=abc&sort_dir=sideways",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults",
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/rooms?"+tt.query, nil)

			var params dto.QueryParams
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Sortable(t *testing.T) {
	params := dto.QueryParams{SortBy: "name; DROP TABLE rooms"}
	params.Sortable("created_at", "name", "capacity")

	assert.Equal(t, "created_at", params.SortBy)
	assert.Equal(t, dto.SortDirDesc, params.SortDir)

	params = dto.QueryParams{SortBy: "capacity", SortDir: dto.SortDirAsc}
	params.Sortable("created_at", "name", "capacity")

	assert.Equal(t, "capacity", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "room_id", Value: "r-1", Operator: dto.FilterOperatorEq, Table: "bookings"},
			wantWhere: "bookings.room_id = :room_id",
			wantArgs:  map[string]any{"room_id": "r-1"},
		},
		{
			name:      "like",
			filter:    dto.Filter{Field: "name", Value: "vip", Operator: dto.FilterOperatorLike},
			wantWhere: "LOWER(name) LIKE LOWER(:name)",
			wantArgs:  map[string]any{"name": "%vip%"},
		},
		{
			name:      "in slice",
			filter:    dto.Filter{Field: "status", Value: []string{"pending", "approved"}, Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "pending", "status_1": "approved"},
		},
		{
			name:      "less with arg name",
			filter:    dto.Filter{ArgName: "date_to", Field: "date", Value: "2025-03-17", Operator: dto.FilterOperatorLess},
			wantWhere: "date < :date_to",
			wantArgs:  map[string]any{"date_to": "2025-03-17"},
		},
		{
			name:      "greater eq",
			filter:    dto.Filter{ArgName: "date_from", Field: "date", Value: "2025-03-10", Operator: dto.FilterOperatorGreaterEq},
			wantWhere: "date >= :date_from",
			wantArgs:  map[string]any{"date_from": "2025-03-10"},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "block_reason", Operator: dto.FilterIsNull},
			wantWhere: "block_reason IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "name", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.NewFilterGroup(
		dto.Filter{Field: "room_id", Value: "r-1", Operator: dto.FilterOperatorEq},
		dto.Filter{Field: "name", Operator: "unsupported"},
	)
	group.Filters = append(group.Filters, dto.FilterGroup{
		Operator: dto.FilterGroupOperatorOr,
		Filters: []any{
			dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq},
			dto.Filter{ArgName: "status_alt", Field: "status", Value: "approved", Operator: dto.FilterOperatorEq},
		},
	})

	where, args := group.GetWhereClause()

	assert.Equal(t, "(room_id = :room_id AND (status = :status OR status = :status_alt))", where)
	assert.Equal(t, map[string]any{"room_id": "r-1", "status": "pending", "status_alt": "approved"}, args)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
