package availability

import (
	"net/http"
	"schedly/infras/otel"
	"schedly/internal/domains/availability/model/dto"
	"schedly/internal/domains/availability/service"
	"schedly/shared/constant"
	"schedly/shared/validator"
	"schedly/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRules)
		routerGroup.Post("/", handler.CreateRule)
		routerGroup.Put("/{id}", handler.ReplaceRule)
		routerGroup.Delete("/{id}", handler.DeleteRule)
	})
}

// GetRules lists the full weekly schedule.
// @Summary Get all availability rules
// @Description Retrieve every availability rule, ordered by weekday and start time.
// @Tags Availability
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetRulesResponse] "List of availability rules"
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
// @Security ApiKeyAuth
func (handler *Handler) GetRules(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRules")
	defer scope.End()

	rules, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability rules")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Availability rules retrieved successfully")

	response.WithJSON(writer, http.StatusOK, rules)
}

// CreateRule adds one recurring weekly window.
// @Summary Create an availability rule
// @Description Create a recurring weekly availability window in its own IANA timezone.
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.CreateRuleRequest true "Create Rule Request"
// @Success 201 {object} response.Data[dto.RuleResponse] "Availability rule created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [post]
// @Security ApiKeyAuth
func (handler *Handler) CreateRule(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRule")
	defer scope.End()

	req := dto.CreateRuleRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	rule, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create availability rule")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Availability rule created successfully")

	response.WithJSON(writer, http.StatusCreated, rule)
}

// ReplaceRule atomically swaps a rule for a new definition.
// @Summary Replace an availability rule
// @Description Replace the rule behind the given id in one transaction; slot queries never observe a gap.
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param request body dto.CreateRuleRequest true "Replacement Rule"
// @Success 200 {object} response.Data[dto.RuleResponse] "Availability rule replaced successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/{id} [put]
// @Security ApiKeyAuth
func (handler *Handler) ReplaceRule(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReplaceRule")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.CreateRuleRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	rule, err := handler.service.Replace(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to replace availability rule")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Availability rule replaced successfully")

	response.WithJSON(writer, http.StatusOK, rule)
}

// DeleteRule removes a rule; deleting an absent rule is acknowledged.
// @Summary Delete an availability rule
// @Description Delete the rule behind the given id. The operation is idempotent.
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} response.Message "Availability rule deleted successfully"
// @Failure 500 {object} response.Error
// @Router /v1/availability/{id} [delete]
// @Security ApiKeyAuth
func (handler *Handler) DeleteRule(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRule")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete availability rule")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Availability rule deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Availability rule deleted successfully")
}
