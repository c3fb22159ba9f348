package dto

import (
	"time"

	"schedly/internal/domains/booking/model"
	"schedly/shared"
	"schedly/shared/constant"
	gDto "schedly/shared/dto"
	gModel "schedly/shared/model"
	"schedly/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	EventTypeID string `json:"event_type_id" validate:"required,uuid4"`
	Date        string `json:"date"          validate:"required,calendardate"`
	StartTime   string `json:"start_time"    validate:"required,wallclock"`
	EndTime     string `json:"end_time"      validate:"required,wallclock"`
	BookerName  string `json:"booker_name"   validate:"required,max=150"`
	BookerEmail string `json:"booker_email"  validate:"required,email"`
}

func (c *CreateBookingRequest) ToModel(actor string) (model.Booking, error) {
	date, err := time.Parse(constant.CalendarDayFormat, c.Date)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	return model.Booking{
		ID:          uuid.NewString(),
		EventTypeID: c.EventTypeID,
		BookingDate: date,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		BookerName:  c.BookerName,
		BookerEmail: c.BookerEmail,
		Status:      constant.BookingStatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}, nil
}

type BookingResponse struct {
	ID          string `json:"id"`
	EventTypeID string `json:"event_type_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	BookerName  string `json:"booker_name"`
	BookerEmail string `json:"booker_email"`
	Status      string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.EventTypeID = model.EventTypeID
	r.Date = model.BookingDate.Format(constant.CalendarDayFormat)
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.BookerName = model.BookerName
	r.BookerEmail = model.BookerEmail
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// GetFreeSlotsResponse lists bookable start times for one event type on one
// calendar date, ascending "HH:MM".
type GetFreeSlotsResponse struct {
	EventTypeID     string   `json:"event_type_id"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"duration_minutes"`
	Slots           []string `json:"slots"`
}

// BookingEvent is the payload published to kafka on booking lifecycle
// transitions; the notification pipeline consumes it downstream.
type BookingEvent struct {
	BookingID   string `json:"booking_id"`
	EventTypeID string `json:"event_type_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	BookerEmail string `json:"booker_email"`
	Status      string `json:"status"`
}

func (e *BookingEvent) FromModel(model model.Booking) {
	e.BookingID = model.ID
	e.EventTypeID = model.EventTypeID
	e.Date = model.BookingDate.Format(constant.CalendarDayFormat)
	e.StartTime = model.StartTime
	e.EndTime = model.EndTime
	e.BookerEmail = model.BookerEmail
	e.Status = model.Status
}
