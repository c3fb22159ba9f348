package service

import (
	"context"
	"fmt"
	"sort"

	"schedly/config"
	"schedly/infras/kafka"
	"schedly/infras/otel"
	availabilityRepo "schedly/internal/domains/availability/repository"
	"schedly/internal/domains/booking/model"
	"schedly/internal/domains/booking/model/dto"
	"schedly/internal/domains/booking/repository"
	eventModel "schedly/internal/domains/event/model"
	eventRepo "schedly/internal/domains/event/repository"
	"schedly/shared"
	"schedly/shared/cache"
	"schedly/shared/constant"
	gDto "schedly/shared/dto"
	"schedly/shared/failure"
	gRepo "schedly/shared/repository"
	"schedly/shared/timeslot"
	"schedly/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheFreeSlots     = "slots:free"
)

type Booking interface {
	FreeSlots(ctx context.Context, eventTypeID, date string) (dto.GetFreeSlotsResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
}

type serviceImpl struct {
	repo             repository.Booking
	availabilityRepo availabilityRepo.Availability
	eventRepo        eventRepo.EventType
	cfg              *config.Config
	cache            cache.RedisCache
	otel             otel.Otel
	kafka            kafka.Client
}

func New(
	repo repository.Booking,
	availabilityRepo availabilityRepo.Availability,
	eventRepo eventRepo.EventType,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafkaClient kafka.Client,
) Booking {
	return &serviceImpl{
		repo:             repo,
		availabilityRepo: availabilityRepo,
		eventRepo:        eventRepo,
		cfg:              cfg,
		cache:            cache,
		otel:             otel,
		kafka:            kafkaClient,
	}
}

// interval is a half-open [start, end) window in minutes since midnight.
type interval struct {
	start int
	end   int
}

// FreeSlots resolves the bookable start times for an event type on one
// calendar date. Every rule whose weekday matches the date in the rule's own
// timezone contributes candidates; candidates colliding with a confirmed
// booking are dropped; the union is returned sorted and deduplicated.
func (s *serviceImpl) FreeSlots(ctx context.Context, eventTypeID, date string) (res dto.GetFreeSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FreeSlots")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheFreeSlots, eventTypeID, date)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for free slots")

		return res, nil
	}

	eventType, err := s.eventRepo.Get(ctx, shared.FilterByID(eventTypeID, eventModel.FieldID, eventModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get event type for slot query")

		return res, fmt.Errorf("failed to get event type: %w", err)
	}

	if eventType.ID == constant.Empty || !eventType.IsActive {
		return res, failure.NotFound("event type not found") //nolint:wrapcheck
	}

	rules, err := s.availabilityRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability rules for slot query")

		return res, fmt.Errorf("failed to get availability rules: %w", err)
	}

	busy, err := s.confirmedIntervals(ctx, eventTypeID, date)
	if err != nil {
		return res, err
	}

	candidates := map[int]struct{}{}

	for _, rule := range rules {
		weekday, err := timeslot.WeekdayInZone(date, rule.Timezone)
		if err != nil {
			log.Error().Err(err).Str("ruleID", rule.ID).Str("timezone", rule.Timezone).Msg("stored rule has unresolvable timezone")

			return res, failure.InternalError(fmt.Errorf("resolving rule timezone: %w", err)) //nolint:wrapcheck
		}

		if weekday != rule.DayOfWeek {
			continue
		}

		window, err := parseInterval(rule.StartTime, rule.EndTime)
		if err != nil {
			log.Error().Err(err).Str("ruleID", rule.ID).Msg("stored rule has malformed window")

			return res, failure.InternalError(fmt.Errorf("parsing rule window: %w", err)) //nolint:wrapcheck
		}

		for _, start := range timeslot.Generate(window.start, window.end, eventType.DurationMinutes, eventType.BufferMinutes) {
			if collides(start, start+eventType.DurationMinutes, busy) {
				continue
			}

			candidates[start] = struct{}{}
		}
	}

	starts := make([]int, 0, len(candidates))
	for start := range candidates {
		starts = append(starts, start)
	}

	sort.Ints(starts)

	slots := make([]string, len(starts))
	for i, start := range starts {
		slot, err := timeslot.FormatMinutes(start)
		if err != nil {
			return res, failure.InternalError(fmt.Errorf("formatting slot: %w", err)) //nolint:wrapcheck
		}

		slots[i] = slot
	}

	res = dto.GetFreeSlotsResponse{
		EventTypeID:     eventTypeID,
		Date:            date,
		DurationMinutes: eventType.DurationMinutes,
		Slots:           slots,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save free slots to cache")
		}
	}()

	return res, nil
}

// Create reserves an interval. A precheck rejects requests overlapping any
// confirmed booking; the unique index on (event_type_id, booking_date,
// start_time) settles races that slip through, and its violation reads as the
// same conflict to the caller.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = parseInterval(req.StartTime, req.EndTime); err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid booking window: %v", err)) //nolint:wrapcheck
	}

	eventType, err := s.eventRepo.Get(ctx, shared.FilterByID(req.EventTypeID, eventModel.FieldID, eventModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check event type for booking")

		return res, fmt.Errorf("failed to check event type: %w", err)
	}

	if eventType.ID == constant.Empty || !eventType.IsActive {
		return res, failure.BadRequestFromString("event type does not exist or is not active") //nolint:wrapcheck
	}

	taken, err := s.repo.Exist(ctx, overlapFilter(req.EventTypeID, req.Date, req.StartTime, req.EndTime))
	if err != nil {
		log.Error().Err(err).Msg("failed to run booking overlap check")

		return res, fmt.Errorf("failed to run overlap check: %w", err)
	}

	if taken {
		return res, failure.SlotOverlap //nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(actor)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		if gRepo.IsUniqueViolation(err) {
			log.Warn().
				Str("eventTypeID", req.EventTypeID).
				Str("date", req.Date).
				Str("startTime", req.StartTime).
				Msg("booking lost the race for a slot")

			return res, failure.SlotTaken //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)

	s.publishAndInvalidate(ctx, constant.KafkaTopicBookingCreated, booking)

	return res, nil
}

// Cancel flips the booking to cancelled. The transition is unconditional and
// idempotent; cancelling an already cancelled or unknown id is acknowledged.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	// An id that is not a UUID cannot name a booking; acknowledge it like
	// any other unknown id instead of letting the uuid column reject the
	// cast.
	if uuid.Validate(id) != nil {
		log.Warn().Str("bookingID", id).Msg("cancel acknowledged for malformed booking id")

		return nil
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking for cancel")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	fields := map[string]any{
		model.FieldStatus:        constant.BookingStatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	if booking.ID != constant.Empty {
		booking.Status = constant.BookingStatusCancelled
		s.publishAndInvalidate(ctx, constant.KafkaTopicBookingCancelled, booking)
	}

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

// confirmedIntervals loads the confirmed bookings for (eventTypeID, date) as
// minute intervals.
func (s *serviceImpl) confirmedIntervals(ctx context.Context, eventTypeID, date string) ([]interval, error) {
	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, confirmedDayFilter(eventTypeID, date))
	if err != nil {
		log.Error().Err(err).Msg("failed to get confirmed bookings for slot query")

		return nil, fmt.Errorf("failed to get confirmed bookings: %w", err)
	}

	busy := make([]interval, len(bookings))

	for i, booking := range bookings {
		window, err := parseInterval(booking.StartTime, booking.EndTime)
		if err != nil {
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("stored booking has malformed interval")

			return nil, failure.InternalError(fmt.Errorf("parsing booking interval: %w", err)) //nolint:wrapcheck
		}

		busy[i] = window
	}

	return busy, nil
}

func (s *serviceImpl) publishAndInvalidate(ctx context.Context, topic string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		if s.cfg.Kafka.Enable {
			event := dto.BookingEvent{}
			event.FromModel(booking)

			message := kafka.Message{Key: booking.ID, Value: event}
			if err := s.kafka.SendMessages(c, topic, message); err != nil {
				log.Error().Err(err).Str("topic", topic).Msg("failed to publish booking event")
			}
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, booking.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheFreeSlots, booking.EventTypeID))
	}()
}

// parseInterval parses an "HH:MM" pair and rejects empty or inverted windows.
func parseInterval(startTime, endTime string) (interval, error) {
	start, err := timeslot.Minutes(startTime)
	if err != nil {
		return interval{}, err //nolint:wrapcheck
	}

	end, err := timeslot.Minutes(endTime)
	if err != nil {
		return interval{}, err //nolint:wrapcheck
	}

	if end <= start {
		return interval{}, fmt.Errorf("window %s-%s is empty or inverted", startTime, endTime)
	}

	return interval{start: start, end: end}, nil
}

func collides(start, end int, busy []interval) bool {
	for _, window := range busy {
		if timeslot.Overlaps(start, end, window.start, window.end) {
			return true
		}
	}

	return false
}

// confirmedDayFilter matches the confirmed bookings of one event type on one
// calendar date.
func confirmedDayFilter(eventTypeID, date string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEventTypeID,
				Value:    eventTypeID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldBookingDate,
				Value:    date,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    constant.BookingStatusConfirmed,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

// overlapFilter implements the half-open interval test in SQL:
// a confirmed booking collides when existing.start < new.end AND
// existing.end > new.start. "HH:MM" strings order the same way their minute
// values do, so plain string comparison is sound.
func overlapFilter(eventTypeID, date, startTime, endTime string) gDto.FilterGroup {
	group := confirmedDayFilter(eventTypeID, date)

	group.Filters = append(group.Filters,
		gDto.Filter{
			ArgName:  "new_end",
			Field:    model.FieldStartTime,
			Value:    endTime,
			Operator: gDto.FilterOperatorLess,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "new_start",
			Field:    model.FieldEndTime,
			Value:    startTime,
			Operator: gDto.FilterOperatorGreater,
			Table:    model.TableName,
		},
	)

	return group
}
