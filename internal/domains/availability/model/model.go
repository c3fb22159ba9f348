package model

import "schedly/shared/model"

const (
	TableName  = "availability"
	EntityName = "availability_rule"

	FieldID        = "id"
	FieldDayOfWeek = "day_of_week"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldTimezone  = "timezone"
)

// AvailabilityRule is one recurring weekly window of bookable time.
// StartTime and EndTime are zero-padded "HH:MM" wall clock strings, which
// compare correctly both lexically and in SQL. DayOfWeek follows time.Weekday
// numbering, 0 is Sunday.
type AvailabilityRule struct {
	ID        string `db:"id"`
	DayOfWeek int    `db:"day_of_week"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
	Timezone  string `db:"timezone"`
	model.Metadata
}
