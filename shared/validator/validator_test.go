package validator_test

import (
	"schedly/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type ruleRequest struct {
	DayOfWeek *int   `json:"day_of_week" validate:"required,gte=0,lte=6"`
	StartTime string `json:"start_time"  validate:"required,wallclock"`
	EndTime   string `json:"end_time"    validate:"required,wallclock"`
	Timezone  string `json:"timezone"    validate:"required,iana_tz"`
}

type slotQuery struct {
	Date string `json:"date" validate:"required,calendardate"`
}

func TestValidateDecodesAndValidates(t *testing.T) {
	body := `{"day_of_week":1,"start_time":"09:00","end_time":"17:00","timezone":"UTC"}`

	req := ruleRequest{}
	err := validator.Validate(strings.NewReader(body), &req)

	assert.NoError(t, err)
	assert.Equal(t, "09:00", req.StartTime)
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	req := ruleRequest{}
	err := validator.Validate(strings.NewReader("{not json"), &req)

	assert.Error(t, err)
}

func TestValidateStruct(t *testing.T) {
	day := 1
	badDay := 7

	tests := []struct {
		name    string
		req     ruleRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  ruleRequest{DayOfWeek: &day, StartTime: "09:00", EndTime: "17:00", Timezone: "Asia/Jakarta"},
		},
		{
			name:    "day out of range",
			req:     ruleRequest{DayOfWeek: &badDay, StartTime: "09:00", EndTime: "17:00", Timezone: "UTC"},
			wantErr: "DayOfWeek must be less than or equal to 6",
		},
		{
			name:    "bad wall clock",
			req:     ruleRequest{DayOfWeek: &day, StartTime: "9am", EndTime: "17:00", Timezone: "UTC"},
			wantErr: "StartTime must be a valid HH:MM time",
		},
		{
			name:    "bad timezone",
			req:     ruleRequest{DayOfWeek: &day, StartTime: "09:00", EndTime: "17:00", Timezone: "Mars/Olympus"},
			wantErr: "Timezone must be a valid IANA timezone identifier",
		},
		{
			name:    "missing timezone",
			req:     ruleRequest{DayOfWeek: &day, StartTime: "09:00", EndTime: "17:00"},
			wantErr: "Timezone is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestCalendarDateValidation(t *testing.T) {
	valid := slotQuery{Date: "2026-01-05"}
	assert.NoError(t, validator.ValidateStruct(&valid))

	invalid := slotQuery{Date: "05/01/2026"}
	err := validator.ValidateStruct(&invalid)
	assert.Error(t, err)
	assert.Equal(t, "Date must be a valid YYYY-MM-DD date", err.Error())
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("16:30", "wallclock"))
	assert.Error(t, validator.ValidateVar("25:00", "wallclock"))
	assert.Error(t, validator.ValidateVar("9:30", "wallclock"), "unpadded hours would break lexical time comparison")
}
