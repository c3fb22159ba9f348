package service

import (
	"context"
	"fmt"

	"schedly/config"
	"schedly/infras/otel"
	"schedly/internal/domains/event/model"
	"schedly/internal/domains/event/model/dto"
	"schedly/internal/domains/event/repository"
	"schedly/shared"
	"schedly/shared/cache"
	"schedly/shared/constant"
	gDto "schedly/shared/dto"
	"schedly/shared/failure"
	gRepo "schedly/shared/repository"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetEventType    = "event:get"
	cacheGetAllEventType = "event:gets"
	cacheCountEventType  = "event:count"

	// Duration or buffer changes shift every computed slot boundary.
	cacheFreeSlots = "slots:free"
)

type EventType interface {
	Create(ctx context.Context, req dto.CreateEventTypeRequest) (dto.EventTypeResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetEventTypesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.EventTypeResponse, error)
	GetBySlug(ctx context.Context, slug string) (dto.EventTypeResponse, error)
	Update(ctx context.Context, req dto.UpdateEventTypeRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.EventType
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.EventType, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) EventType {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateEventTypeRequest) (res dto.EventTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	eventType := req.ToModel(actor)

	if err = s.repo.Insert(ctx, eventType); err != nil {
		if gRepo.IsUniqueViolation(err) {
			log.Warn().Str("slug", eventType.Slug).Msg("event type slug already in use")

			return res, failure.Conflict("event type slug already in use") //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create event type")

		return res, err
	}

	res.FromModel(eventType)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllEventType)
		shared.InvalidateCaches(c, s.cache, cacheCountEventType)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetEventTypesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllEventType, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for event types")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count event types")

		return res, fmt.Errorf("failed to count event types: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get event types")

		return res, fmt.Errorf("failed to get event types: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event types to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountEventType, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for event type count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count event types")

		return res, fmt.Errorf("failed to count event types: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event type count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.EventTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetEventType, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for event type")

		return res, nil
	}

	eventType, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get event type")

		return res, fmt.Errorf("failed to get event type: %w", err)
	}

	if eventType.ID == constant.Empty {
		return res, failure.NotFound("event type not found") //nolint:wrapcheck
	}

	res.FromModel(eventType)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event type to cache")
		}
	}()

	return res, nil
}

// GetBySlug serves the public booking page lookup. Inactive event types are
// indistinguishable from missing ones on purpose.
func (s *serviceImpl) GetBySlug(ctx context.Context, slug string) (res dto.EventTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBySlug")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetEventType, "slug", slug)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for event type by slug")

		return res, nil
	}

	eventType, err := s.repo.Get(ctx, shared.FilterByID(slug, model.FieldSlug, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get event type by slug")

		return res, fmt.Errorf("failed to get event type by slug: %w", err)
	}

	if eventType.ID == constant.Empty || !eventType.IsActive {
		return res, failure.NotFound("event type not found") //nolint:wrapcheck
	}

	res.FromModel(eventType)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event type to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateEventTypeRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check event type existence")

		return err
	}

	if current.ID == constant.Empty {
		log.Error().Msg("event type not found")

		return failure.NotFound("event type not found") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, actor)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		if gRepo.IsUniqueViolation(err) {
			log.Warn().Str("slug", req.Slug).Msg("event type slug already in use")

			return failure.Conflict("event type slug already in use") //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update event type")

		return fmt.Errorf("failed to update event type: %w", err)
	}

	s.invalidate(ctx, current)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check event type existence")

		return err
	}

	if current.ID == constant.Empty {
		log.Error().Msg("event type not found")

		return failure.NotFound("event type not found") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete event type")

		return fmt.Errorf("failed to delete event type: %w", err)
	}

	s.invalidate(ctx, current)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, eventType model.EventType) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetEventType, eventType.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete event type cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetEventType, "slug", eventType.Slug)); err != nil {
			log.Error().Err(err).Msg("failed to delete event type slug cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllEventType)
		shared.InvalidateCaches(c, s.cache, cacheCountEventType)
		shared.InvalidateCaches(c, s.cache, cacheFreeSlots)
	}()
}
