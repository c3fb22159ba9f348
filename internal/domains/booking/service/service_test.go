package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"schedly/config"
	kafkaMocks "schedly/infras/kafka/mocks"
	"schedly/infras/otel/mocks"
	availabilityMocks "schedly/internal/domains/availability/mocks"
	availabilityModel "schedly/internal/domains/availability/model"
	bookingMocks "schedly/internal/domains/booking/mocks"
	"schedly/internal/domains/booking/model"
	"schedly/internal/domains/booking/model/dto"
	"schedly/internal/domains/booking/service"
	eventMocks "schedly/internal/domains/event/mocks"
	eventModel "schedly/internal/domains/event/model"
	cacheMocks "schedly/shared/cache/mocks"
	"schedly/shared/constant"
	gDto "schedly/shared/dto"
	"schedly/shared/failure"
)

// mondayDate falls on a Monday in every fixed-offset and most civil zones.
const mondayDate = "2026-01-05"

type fixture struct {
	svc              service.Booking
	repo             *bookingMocks.MockBooking
	availabilityRepo *availabilityMocks.MockAvailability
	eventRepo        *eventMocks.MockEventType
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := bookingMocks.NewMockBooking(ctrl)
	availabilityRepo := availabilityMocks.NewMockAvailability(ctrl)
	eventRepo := eventMocks.NewMockEventType(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(repo, availabilityRepo, eventRepo, cfg, cacheMocks.NewInertCache(), mocks.NewOtel(), kafkaMocks.NewInertClient())

	return fixture{svc: svc, repo: repo, availabilityRepo: availabilityRepo, eventRepo: eventRepo}
}

func activeEventType(duration, buffer int) eventModel.EventType {
	return eventModel.EventType{
		ID:              "et-1",
		Title:           "Intro Call",
		Slug:            "intro-call",
		DurationMinutes: duration,
		BufferMinutes:   buffer,
		IsActive:        true,
	}
}

func mondayRule(start, end, zone string) availabilityModel.AvailabilityRule {
	return availabilityModel.AvailabilityRule{
		ID:        "r-1",
		DayOfWeek: 1,
		StartTime: start,
		EndTime:   end,
		Timezone:  zone,
	}
}

func confirmedBooking(start, end string) model.Booking {
	date, _ := time.Parse(constant.CalendarDayFormat, mondayDate)

	return model.Booking{
		ID:          "b-1",
		EventTypeID: "et-1",
		BookingDate: date,
		StartTime:   start,
		EndTime:     end,
		Status:      constant.BookingStatusConfirmed,
	}
}

func TestBookingService_FreeSlots(t *testing.T) {
	t.Run("full day generation with duration and buffer", func(t *testing.T) {
		f := newFixture(t)

		f.eventRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeEventType(30, 5), nil)
		f.availabilityRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]availabilityModel.AvailabilityRule{mondayRule("09:00", "17:00", "UTC")}, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.FreeSlots(context.Background(), "et-1", mondayDate)

		assert.NoError(t, err)
		assert.Equal(t, 30, res.DurationMinutes)
		assert.Len(t, res.Slots, 13)
		assert.Equal(t, "09:00", res.Slots[0])
		assert.Equal(t, "09:35", res.Slots[1])
		assert.Equal(t, "16:00", res.Slots[len(res.Slots)-1])
	})

	t.Run("no rule matches the weekday", func(t *testing.T) {
		f := newFixture(t)

		f.eventRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeEventType(30, 0), nil)
		f.availabilityRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]availabilityModel.AvailabilityRule{
				{ID: "r-2", DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00", Timezone: "UTC"},
			}, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.FreeSlots(context.Background(), "et-1", mondayDate)

		assert.NoError(t, err)
		assert.Empty(t, res.Slots)
	})

	t.Run("confirmed booking blocks overlapping candidates", func(t *testing.T) {
		f := newFixture(t)

		f.eventRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeEventType(30, 0), nil)
		f.availabilityRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]availabilityModel.AvailabilityRule{mondayRule("09:00", "11:00", "UTC")}, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{confirmedBooking("09:30", "10:00")}, nil)

		res, err := f.svc.FreeSlots(context.Background(), "et-1", mondayDate)

		assert.NoError(t, err)
		assert.Equal(t, []string{"09:00", "10:00", "10:30"}, res.Slots)
	})

	t.Run("overlapping rules union without duplicates", func(t *testing.T) {
		f := newFixture(t)

		f.eventRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeEventType(60, 0), nil)
		f.availabilityRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]availabilityModel.AvailabilityRule{
				mondayRule("09:00", "12:00", "UTC"),
				mondayRule("10:00", "13:00", "UTC"),
			}, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.FreeSlots(context.Background(), "et-1", mondayDate)

		assert.NoError(t, err)
		assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00"}, res.Slots)
	})

	t.Run("inactive event type reads as not found", func(t *testing.T) {
		f := newFixture(t)

		inactive := activeEventType(30, 0)
		inactive.IsActive = false

		f.eventRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)

		_, err := f.svc.FreeSlots(context.Background(), "et-1", mondayDate)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("corrupt stored rule surfaces as internal error", func(t *testing.T) {
		f := newFixture(t)

		f.eventRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeEventType(30, 0), nil)
		f.availabilityRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]availabilityModel.AvailabilityRule{mondayRule("09:00", "17:00", "Mars/Olympus")}, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.svc.FreeSlots(context.Background(), "et-1", mondayDate)

		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func validCreateRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		EventTypeID: "et-1",
		Date:        mondayDate,
		StartTime:   "10:00",
		EndTime:     "10:30",
		BookerName:  "Ada Lovelace",
		BookerEmail: "ada@example.com",
	}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("successful booking", func(t *testing.T) {
		f := newFixture(t)

		f.eventRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeEventType(30, 0), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.Equal(t, constant.BookingStatusConfirmed, booking.Status)
				assert.Equal(t, "10:00", booking.StartTime)

				return nil
			})

		res, err := f.svc.Create(context.Background(), validCreateRequest())

		assert.NoError(t, err)
		assert.Equal(t, constant.BookingStatusConfirmed, res.Status)
		assert.Equal(t, mondayDate, res.Date)
	})

	t.Run("overlapping interval is rejected before insert", func(t *testing.T) {
		f := newFixture(t)

		f.eventRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeEventType(30, 0), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		req := validCreateRequest()
		req.StartTime = "10:15"
		req.EndTime = "10:45"

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.True(t, failure.IsConflict(err))
	})

	t.Run("unique violation from the race window reads as conflict", func(t *testing.T) {
		f := newFixture(t)

		f.eventRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeEventType(30, 0), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("failed to insert data (booking): %w", &pq.Error{Code: "23505"}))

		_, err := f.svc.Create(context.Background(), validCreateRequest())

		assert.Error(t, err)
		assert.True(t, failure.IsConflict(err))
	})

	t.Run("concurrent requests for one slot yield one confirmation", func(t *testing.T) {
		f := newFixture(t)

		const contenders = 5

		f.eventRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeEventType(30, 0), nil).Times(contenders)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(contenders)

		// The store admits exactly one row; everyone else trips the unique
		// index the way a lost race does.
		won := false
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ model.Booking) error {
				if won {
					return fmt.Errorf("failed to insert data (booking): %w", &pq.Error{Code: "23505"})
				}
				won = true

				return nil
			}).Times(contenders)

		confirmed, conflicts := 0, 0
		for range contenders {
			_, err := f.svc.Create(context.Background(), validCreateRequest())

			switch {
			case err == nil:
				confirmed++
			case failure.IsConflict(err):
				conflicts++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}

		assert.Equal(t, 1, confirmed)
		assert.Equal(t, contenders-1, conflicts)
	})

	t.Run("inverted interval is rejected", func(t *testing.T) {
		f := newFixture(t)

		req := validCreateRequest()
		req.StartTime = "10:30"
		req.EndTime = "10:00"

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unpadded times are rejected before the store is touched", func(t *testing.T) {
		f := newFixture(t)

		// "9:30" sorts after "10:00" lexically, so letting it through would
		// blind the SQL overlap check and sidestep the slot unique index.
		req := validCreateRequest()
		req.StartTime = "9:30"
		req.EndTime = "9:55"

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("inactive event type is rejected", func(t *testing.T) {
		f := newFixture(t)

		inactive := activeEventType(30, 0)
		inactive.IsActive = false

		f.eventRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)

		_, err := f.svc.Create(context.Background(), validCreateRequest())

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	bookingID := "b4f7a3c2-1d9e-4a6b-8c0f-5e2d7a9b1c33"
	absentID := "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"

	t.Run("cancel flips status", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking("10:00", "10:30"), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, constant.BookingStatusCancelled, fields[model.FieldStatus])

				return nil
			})

		assert.NoError(t, f.svc.Cancel(context.Background(), bookingID))
	})

	t.Run("cancel is idempotent for unknown ids", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Cancel(context.Background(), absentID))
	})

	t.Run("malformed id is acknowledged without touching the store", func(t *testing.T) {
		f := newFixture(t)

		assert.NoError(t, f.svc.Cancel(context.Background(), "not-a-uuid"))
	})

	t.Run("store error surfaces", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking("10:00", "10:30"), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		assert.Error(t, f.svc.Cancel(context.Background(), bookingID))
	})
}

// A cancelled booking no longer appears in the confirmed set, so its slot is
// immediately offered again.
func TestBookingService_CancelFreesSlot(t *testing.T) {
	f := newFixture(t)

	f.eventRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeEventType(30, 0), nil)
	f.availabilityRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]availabilityModel.AvailabilityRule{mondayRule("10:00", "11:00", "UTC")}, nil)

	// The store reports no confirmed rows once the booking is cancelled.
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	res, err := f.svc.FreeSlots(context.Background(), "et-1", mondayDate)

	assert.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:30"}, res.Slots)
}

func TestBookingService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Booking{confirmedBooking("10:00", "10:30")}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Bookings, 1)
	assert.Equal(t, mondayDate, res.Bookings[0].Date)
}

func TestBookingService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking("10:00", "10:30"), nil)

		res, err := f.svc.Get(context.Background(), "b-1")

		assert.NoError(t, err)
		assert.Equal(t, "b-1", res.ID)
	})

	t.Run("missing booking returns not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
