package dto

import (
	"strings"
	"unicode"

	"schedly/internal/domains/event/model"
	"schedly/shared"
	gDto "schedly/shared/dto"
	gModel "schedly/shared/model"
	"schedly/shared/timezone"

	"github.com/google/uuid"
)

type CreateEventTypeRequest struct {
	Title           string `json:"title"            validate:"required,max=150"`
	Description     string `json:"description"      validate:"omitempty,max=500"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=1,max=1440"`
	BufferMinutes   int    `json:"buffer_minutes"   validate:"omitempty,min=0,max=1440"`
	Slug            string `json:"slug"             validate:"omitempty,max=150"`
	IsActive        *bool  `json:"is_active"        validate:"omitempty"`
}

func (c *CreateEventTypeRequest) ToModel(actor string) model.EventType {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	slug := c.Slug
	if slug == "" {
		slug = Slugify(c.Title)
	}

	return model.EventType{
		ID:              uuid.NewString(),
		Title:           c.Title,
		Description:     c.Description,
		DurationMinutes: c.DurationMinutes,
		BufferMinutes:   c.BufferMinutes,
		Slug:            slug,
		IsActive:        active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateEventTypeRequest struct {
	Title           string `db:"title"            json:"title"            validate:"omitempty,max=150"`
	Description     string `db:"description"      json:"description"      validate:"omitempty,max=500"`
	DurationMinutes *int   `db:"duration_minutes" json:"duration_minutes" validate:"omitempty,min=1,max=1440"`
	BufferMinutes   *int   `db:"buffer_minutes"   json:"buffer_minutes"   validate:"omitempty,min=0,max=1440"`
	Slug            string `db:"slug"             json:"slug"             validate:"omitempty,max=150"`
	IsActive        *bool  `db:"is_active"        json:"is_active"        validate:"omitempty"`
}

type EventTypeResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	BufferMinutes   int    `json:"buffer_minutes"`
	Slug            string `json:"slug"`
	IsActive        bool   `json:"is_active"`
	gDto.Metadata
}

func (r *EventTypeResponse) FromModel(model model.EventType) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.DurationMinutes = model.DurationMinutes
	r.BufferMinutes = model.BufferMinutes
	r.Slug = model.Slug
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetEventTypesResponse struct {
	EventTypes []EventTypeResponse `json:"event_types"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetEventTypesResponse) FromModels(models []model.EventType, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.EventTypes = make([]EventTypeResponse, len(models))
	for i, mod := range models {
		r.EventTypes[i].FromModel(mod)
	}
}

// Slugify lowercases the title and collapses every non-alphanumeric run into
// a single hyphen, "Intro Call (30m)" becomes "intro-call-30m".
func Slugify(title string) string {
	var builder strings.Builder

	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
			lastHyphen = false

			continue
		}

		if !lastHyphen {
			builder.WriteRune('-')
			lastHyphen = true
		}
	}

	return strings.Trim(builder.String(), "-")
}
