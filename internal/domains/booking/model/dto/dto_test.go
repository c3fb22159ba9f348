package dto_test

import (
	"testing"
	"time"

	"schedly/internal/domains/booking/model"
	"schedly/internal/domains/booking/model/dto"
	"schedly/shared/constant"
	gModel "schedly/shared/model"
	"schedly/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		EventTypeID: "2b3a0f64-26a5-4f86-9c1f-0d2f5ad3e111",
		Date:        "2026-01-05",
		StartTime:   "10:00",
		EndTime:     "10:30",
		BookerName:  "Jordan Lee",
		BookerEmail: "jordan@example.com",
	}

	booking, err := req.ToModel("")
	assert.NoError(t, err)

	assert.NotEmpty(t, booking.ID, "expected ID to be generated")
	assert.Equal(t, req.EventTypeID, booking.EventTypeID)
	assert.Equal(t, "2026-01-05", booking.BookingDate.Format(constant.CalendarDayFormat))
	assert.Equal(t, req.StartTime, booking.StartTime)
	assert.Equal(t, req.EndTime, booking.EndTime)
	assert.Equal(t, req.BookerName, booking.BookerName)
	assert.Equal(t, req.BookerEmail, booking.BookerEmail)
	assert.Equal(t, constant.BookingStatusConfirmed, booking.Status)
	assert.False(t, booking.CreatedAt.IsZero(), "expected CreatedAt to be set")
}

func TestCreateBookingRequest_ToModel_InvalidDate(t *testing.T) {
	req := dto.CreateBookingRequest{
		EventTypeID: "2b3a0f64-26a5-4f86-9c1f-0d2f5ad3e111",
		Date:        "05-01-2026",
		StartTime:   "10:00",
		EndTime:     "10:30",
		BookerName:  "Jordan Lee",
		BookerEmail: "jordan@example.com",
	}

	_, err := req.ToModel("")
	assert.Error(t, err)
}

func TestBookingResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	booking := model.Booking{
		ID:          "test-id",
		EventTypeID: "event-type-id",
		BookingDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "10:30",
		BookerName:  "Jordan Lee",
		BookerEmail: "jordan@example.com",
		Status:      constant.BookingStatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}

	var response dto.BookingResponse
	response.FromModel(booking)

	assert.Equal(t, booking.ID, response.ID)
	assert.Equal(t, booking.EventTypeID, response.EventTypeID)
	assert.Equal(t, "2026-01-05", response.Date)
	assert.Equal(t, booking.StartTime, response.StartTime)
	assert.Equal(t, booking.EndTime, response.EndTime)
	assert.Equal(t, booking.BookerName, response.BookerName)
	assert.Equal(t, booking.BookerEmail, response.BookerEmail)
	assert.Equal(t, booking.Status, response.Status)
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	bookings := []model.Booking{
		{ID: "booking-1", BookingDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "booking-2", BookingDate: time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)},
	}

	var response dto.GetBookingsResponse
	response.FromModels(bookings, 25, 10)

	assert.Equal(t, 25, response.TotalData)
	assert.Equal(t, 3, response.TotalPage)
	assert.Len(t, response.Bookings, 2)
	assert.Equal(t, "booking-1", response.Bookings[0].ID)
}

func TestBookingEvent_FromModel(t *testing.T) {
	booking := model.Booking{
		ID:          "booking-id",
		EventTypeID: "event-type-id",
		BookingDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "10:30",
		BookerEmail: "jordan@example.com",
		Status:      constant.BookingStatusCancelled,
	}

	var event dto.BookingEvent
	event.FromModel(booking)

	assert.Equal(t, booking.ID, event.BookingID)
	assert.Equal(t, booking.EventTypeID, event.EventTypeID)
	assert.Equal(t, "2026-01-05", event.Date)
	assert.Equal(t, booking.StartTime, event.StartTime)
	assert.Equal(t, booking.EndTime, event.EndTime)
	assert.Equal(t, booking.BookerEmail, event.BookerEmail)
	assert.Equal(t, constant.BookingStatusCancelled, event.Status)
}
