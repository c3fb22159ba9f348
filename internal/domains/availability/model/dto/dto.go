package dto

import (
	"schedly/internal/domains/availability/model"
	gDto "schedly/shared/dto"
	gModel "schedly/shared/model"
	"schedly/shared/timezone"

	"github.com/google/uuid"
)

type CreateRuleRequest struct {
	DayOfWeek *int   `json:"day_of_week" validate:"required,gte=0,lte=6"`
	StartTime string `json:"start_time"  validate:"required,wallclock"`
	EndTime   string `json:"end_time"    validate:"required,wallclock"`
	Timezone  string `json:"timezone"    validate:"required,iana_tz"`
}

func (c *CreateRuleRequest) ToModel(actor string) model.AvailabilityRule {
	return model.AvailabilityRule{
		ID:        uuid.NewString(),
		DayOfWeek: *c.DayOfWeek,
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		Timezone:  c.Timezone,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type RuleResponse struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Timezone  string `json:"timezone"`
	gDto.Metadata
}

func (r *RuleResponse) FromModel(model model.AvailabilityRule) {
	r.ID = model.ID
	r.DayOfWeek = model.DayOfWeek
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.Timezone = model.Timezone
	r.Metadata.FromModel(model.Metadata)
}

type GetRulesResponse struct {
	Rules     []RuleResponse `json:"rules"`
	TotalData int            `json:"total_data"`
}

func (r *GetRulesResponse) FromModels(models []model.AvailabilityRule) {
	r.TotalData = len(models)

	r.Rules = make([]RuleResponse, len(models))
	for i, mod := range models {
		r.Rules[i].FromModel(mod)
	}
}
