package dto_test

import (
	"net/http/httptest"
	"schedly/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterGetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name: "eq with table",
			filter: dto.Filter{
				Field:    "status",
				Value:    "confirmed",
				Operator: dto.FilterOperatorEq,
				Table:    "bookings",
			},
			wantWhere: "bookings.status = :status",
			wantArgs:  map[string]any{"status": "confirmed"},
		},
		{
			name: "less with arg name",
			filter: dto.Filter{
				ArgName:  "new_end",
				Field:    "start_time",
				Value:    "10:45",
				Operator: dto.FilterOperatorLess,
				Table:    "bookings",
			},
			wantWhere: "bookings.start_time < :new_end",
			wantArgs:  map[string]any{"new_end": "10:45"},
		},
		{
			name: "greater with arg name",
			filter: dto.Filter{
				ArgName:  "new_start",
				Field:    "end_time",
				Value:    "10:15",
				Operator: dto.FilterOperatorGreater,
				Table:    "bookings",
			},
			wantWhere: "bookings.end_time > :new_start",
			wantArgs:  map[string]any{"new_start": "10:15"},
		},
		{
			name: "unknown operator is dropped",
			filter: dto.Filter{
				Field:    "status",
				Value:    "x",
				Operator: "bogus",
			},
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

func TestFilterGroupGetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    "event_type_id",
				Value:    "abc",
				Operator: dto.FilterOperatorEq,
				Table:    "bookings",
			},
			dto.Filter{
				ArgName:  "new_end",
				Field:    "start_time",
				Value:    "10:45",
				Operator: dto.FilterOperatorLess,
				Table:    "bookings",
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.event_type_id = :event_type_id AND bookings.start_time < :new_end)", where)
	assert.Equal(t, map[string]any{
		"event_type_id": "abc",
		"new_end":       "10:45",
	}, args)
}

func TestFilterGroupEmpty(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestQueryParamsFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/bookings?page=2&limit=25&sort_by=booking_date&sort_dir=asc", nil)

	q := dto.QueryParams{}
	q.FromRequest(r, false)

	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 25, q.Limit)
	assert.Equal(t, "booking_date", q.SortBy)
	assert.Equal(t, dto.SortDirAsc, q.SortDir)
}

func TestQueryParamsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/bookings", nil)

	q := dto.QueryParams{}
	q.FromRequest(r, true)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, "created_at", q.SortBy, "listings without sort params must still get a stable order")
	assert.Equal(t, dto.SortDirDesc, q.SortDir)
}

func TestQueryParamsIgnoresInvalid(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/bookings?page=-1&limit=zero&sort_dir=sideways", nil)

	q := dto.QueryParams{}
	q.FromRequest(r, false)

	assert.Zero(t, q.Page)
	assert.Zero(t, q.Limit)
	assert.Empty(t, q.SortDir)
}
