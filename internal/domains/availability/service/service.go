package service

import (
	"context"
	"fmt"

	"schedly/config"
	"schedly/infras/otel"
	"schedly/internal/domains/availability/model"
	"schedly/internal/domains/availability/model/dto"
	"schedly/internal/domains/availability/repository"
	"schedly/shared"
	"schedly/shared/cache"
	"schedly/shared/constant"
	gDto "schedly/shared/dto"
	"schedly/shared/failure"
	"schedly/shared/timeslot"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllRules = "availability:gets"

	// Any schedule change invalidates previously computed free slots.
	cacheFreeSlots = "slots:free"
)

type Availability interface {
	Create(ctx context.Context, req dto.CreateRuleRequest) (dto.RuleResponse, error)
	List(ctx context.Context) (dto.GetRulesResponse, error)
	Replace(ctx context.Context, req dto.CreateRuleRequest, id string) (dto.RuleResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Availability
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Availability, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Availability {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// validateWindow rejects rules whose window is empty or inverted. Field-level
// validation already guarantees both values parse.
func validateWindow(req dto.CreateRuleRequest) error {
	startMinutes, err := timeslot.Minutes(req.StartTime)
	if err != nil {
		return failure.BadRequest(err) //nolint:wrapcheck
	}

	endMinutes, err := timeslot.Minutes(req.EndTime)
	if err != nil {
		return failure.BadRequest(err) //nolint:wrapcheck
	}

	if endMinutes <= startMinutes {
		return failure.BadRequestFromString("end_time must be after start_time") //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRuleRequest) (res dto.RuleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validateWindow(req); err != nil {
		return res, err
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	rule := req.ToModel(actor)

	if err = s.repo.Insert(ctx, rule); err != nil {
		log.Error().Err(err).Msg("failed to create availability rule")

		return res, err
	}

	res.FromModel(rule)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRules)
		shared.InvalidateCaches(c, s.cache, cacheFreeSlots)
	}()

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context) (res dto.GetRulesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllRules)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for availability rules")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, ruleOrdering(), gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability rules")

		return res, fmt.Errorf("failed to get availability rules: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability rules to cache")
		}
	}()

	return res, nil
}

// Replace atomically swaps the rule behind id for the requested one. Slot
// queries running concurrently see either the old window or the new one,
// never a schedule with the rule missing.
func (s *serviceImpl) Replace(ctx context.Context, req dto.CreateRuleRequest, id string) (res dto.RuleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Replace")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validateWindow(req); err != nil {
		return res, err
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if availability rule exists")

		return res, fmt.Errorf("failed to check if availability rule exists: %w", err)
	}

	if !exist {
		log.Error().Msg("availability rule not found")

		return res, failure.NotFound("availability rule not found") //nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	rule := req.ToModel(actor)
	rule.ID = id

	if err = s.repo.Replace(ctx, id, rule); err != nil {
		log.Error().Err(err).Msg("failed to replace availability rule")

		return res, err
	}

	res.FromModel(rule)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRules)
		shared.InvalidateCaches(c, s.cache, cacheFreeSlots)
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	// An id that is not a UUID cannot name a rule; acknowledge it like any
	// other unknown id instead of letting the uuid column reject the cast.
	if uuid.Validate(id) != nil {
		log.Warn().Str("ruleID", id).Msg("delete acknowledged for malformed rule id")

		return nil
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	// Deleting an absent rule is acknowledged, repeated deletes are no-ops.
	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete availability rule")

		return fmt.Errorf("failed to delete availability rule: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRules)
		shared.InvalidateCaches(c, s.cache, cacheFreeSlots)
	}()

	return nil
}

// ruleOrdering keeps list output deterministic across requests.
func ruleOrdering() gDto.QueryParams {
	return gDto.QueryParams{
		SortBy:  model.FieldDayOfWeek + ", " + model.FieldStartTime,
		SortDir: gDto.SortDirAsc,
	}
}
