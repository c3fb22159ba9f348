package shared_test

import (
	"schedly/shared"
	"schedly/shared/constant"
	"schedly/shared/dto"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{
			name:     "empty string returns nil",
			input:    "",
			expected: nil,
		},
		{
			name:     "valid true string",
			input:    "true",
			expected: boolPtr(true),
		},
		{
			name:     "valid false string",
			input:    "false",
			expected: boolPtr(false),
		},
		{
			name:     "valid 1 string",
			input:    "1",
			expected: boolPtr(true),
		},
		{
			name:     "valid 0 string",
			input:    "0",
			expected: boolPtr(false),
		},
		{
			name:     "invalid string returns nil",
			input:    "invalid",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}
			} else {
				if result == nil {
					t.Errorf("expected %v, got nil", *tt.expected)
				} else if *result != *tt.expected {
					t.Errorf("expected %v, got %v", *tt.expected, *result)
				}
			}
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
		{
			name:     "zero total returns 1",
			total:    0,
			limit:    10,
			expected: 1,
		},
		{
			name:     "zero limit returns 1",
			total:    100,
			limit:    0,
			expected: 1,
		},
		{
			name:     "exact division",
			total:    100,
			limit:    10,
			expected: 10,
		},
		{
			name:     "division with remainder",
			total:    101,
			limit:    10,
			expected: 11,
		},
		{
			name:     "limit greater than total",
			total:    5,
			limit:    10,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CalculateTotalPage(tt.total, tt.limit)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type eventPatch struct {
		Title           string `db:"title"`
		Description     string `db:"description"`
		DurationMinutes int    `db:"duration_minutes"`
		NoDBTag         string
	}

	data := eventPatch{
		Title:           "Intro Call",
		DurationMinutes: 30,
		NoDBTag:         "ignored",
	}

	result := shared.TransformFields(data, "api")

	if result["title"] != "Intro Call" {
		t.Errorf("expected title to be Intro Call, got %v", result["title"])
	}

	if result["duration_minutes"] != 30 {
		t.Errorf("expected duration_minutes to be 30, got %v", result["duration_minutes"])
	}

	if _, exists := result["description"]; exists {
		t.Error("expected zero-value description to be omitted")
	}

	if _, ok := result[constant.FieldModifiedAt].(time.Time); !ok {
		t.Error("expected modified_at to be a time.Time")
	}

	if result[constant.FieldModifiedBy] != "api" {
		t.Errorf("expected modified_by to be api, got %v", result[constant.FieldModifiedBy])
	}
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("123", "id", "event_types")

	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    "id",
				Value:    "123",
				Operator: dto.FilterOperatorEq,
				Table:    "event_types",
			},
		},
	}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("expected %+v, got %+v", expected, result)
	}
}

func TestBuildCacheKey(t *testing.T) {
	key := shared.BuildCacheKey("slots", "abc", "2026-01-05")
	if key != "slots:abc:2026-01-05" {
		t.Errorf("expected slots:abc:2026-01-05, got %s", key)
	}

	if shared.BuildCacheKey("rules") != "rules" {
		t.Error("expected bare prefix when no parts given")
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	filter := shared.FilterByID("abc", "event_type_id", "bookings")

	first := shared.BuildCacheKeyWithQuery("bookings", dto.QueryParams{Page: 1, Limit: 10}, filter)
	second := shared.BuildCacheKeyWithQuery("bookings", dto.QueryParams{Page: 2, Limit: 10}, filter)

	if !strings.HasPrefix(first, "bookings:") {
		t.Errorf("expected prefix bookings:, got %s", first)
	}

	if first == second {
		t.Error("expected distinct keys for distinct pages")
	}
}

func boolPtr(b bool) *bool {
	return &b
}
