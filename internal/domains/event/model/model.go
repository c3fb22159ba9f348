package model

import "schedly/shared/model"

const (
	TableName  = "event_types"
	EntityName = "event_type"

	FieldID              = "id"
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldDurationMinutes = "duration_minutes"
	FieldBufferMinutes   = "buffer_minutes"
	FieldSlug            = "slug"
	FieldIsActive        = "is_active"
)

// EventType is a bookable meeting template. DurationMinutes is the meeting
// length, BufferMinutes is dead time appended after each slot before the next
// one may start.
type EventType struct {
	ID              string `db:"id"`
	Title           string `db:"title"`
	Description     string `db:"description"`
	DurationMinutes int    `db:"duration_minutes"`
	BufferMinutes   int    `db:"buffer_minutes"`
	Slug            string `db:"slug"`
	IsActive        bool   `db:"is_active"`
	model.Metadata
}
