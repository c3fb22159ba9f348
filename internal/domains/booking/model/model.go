package model

import (
	"time"

	"schedly/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldEventTypeID = "event_type_id"
	FieldBookingDate = "booking_date"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
	FieldBookerName  = "booker_name"
	FieldBookerEmail = "booker_email"
	FieldStatus      = "status"
)

// Booking is one reserved interval on a calendar day. StartTime and EndTime
// are "HH:MM" wall clock strings in the schedule's local day; only bookings
// with status confirmed block other bookings. Rows are never deleted,
// cancellation flips Status.
type Booking struct {
	ID          string    `db:"id"`
	EventTypeID string    `db:"event_type_id"`
	BookingDate time.Time `db:"booking_date"`
	StartTime   string    `db:"start_time"`
	EndTime     string    `db:"end_time"`
	BookerName  string    `db:"booker_name"`
	BookerEmail string    `db:"booker_email"`
	Status      string    `db:"status"`
	model.Metadata
}
