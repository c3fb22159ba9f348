package event

import (
	"net/http"
	"schedly/infras/otel"
	"schedly/internal/domains/event/model"
	"schedly/internal/domains/event/model/dto"
	"schedly/internal/domains/event/service"
	"schedly/shared"
	"schedly/shared/constant"
	gDto "schedly/shared/dto"
	"schedly/shared/validator"
	"schedly/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.EventType
	otel    otel.Otel
}

func New(service service.EventType, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router, publicRouter chi.Router) {
	router.Route("/events", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateEventType)
		routerGroup.Get("/", handler.GetEventTypes)
		routerGroup.Get("/{id}", handler.GetEventTypeByID)
		routerGroup.Patch("/{id}", handler.UpdateEventType)
		routerGroup.Delete("/{id}", handler.DeleteEventType)
	})

	publicRouter.Get("/events/slug/{slug}", handler.GetEventTypeBySlug)
}

// CreateEventType handles the creation of a new event type.
// @Summary Create a new event type
// @Description Create a bookable meeting template with duration and buffer.
// @Tags EventType
// @Accept json
// @Produce json
// @Param request body dto.CreateEventTypeRequest true "Create Event Type Request"
// @Success 201 {object} response.Data[dto.EventTypeResponse] "Event type created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events [post]
// @Security ApiKeyAuth
func (handler *Handler) CreateEventType(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEventType")
	defer scope.End()

	req := dto.CreateEventTypeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	eventType, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create event type")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Event type created successfully")

	response.WithJSON(writer, http.StatusCreated, eventType)
}

// GetEventTypes retrieves all event types based on query parameters.
// @Summary Get all event types
// @Description Retrieve all event types with optional filtering and pagination.
// @Tags EventType
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param is_active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetEventTypesResponse] "List of event types"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events [get]
// @Security ApiKeyAuth
func (handler *Handler) GetEventTypes(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEventTypes")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	eventTypes, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get event types")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Event types retrieved successfully")

	response.WithJSON(w, http.StatusOK, eventTypes)
}

// GetEventTypeByID retrieves an event type by its ID.
// @Summary Get an event type by ID
// @Description Retrieve an event type by its unique identifier.
// @Tags EventType
// @Accept json
// @Produce json
// @Param id path string true "Event Type ID"
// @Success 200 {object} response.Data[dto.EventTypeResponse] "Event type details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id} [get]
// @Security ApiKeyAuth
func (handler *Handler) GetEventTypeByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEventTypeByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	eventType, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get event type by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Event type retrieved successfully")

	response.WithJSON(w, http.StatusOK, eventType)
}

// GetEventTypeBySlug serves the public booking page lookup.
// @Summary Get an event type by slug
// @Description Retrieve an active event type by its public slug.
// @Tags EventType
// @Accept json
// @Produce json
// @Param slug path string true "Event Type Slug"
// @Success 200 {object} response.Data[dto.EventTypeResponse] "Event type details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/slug/{slug} [get]
func (handler *Handler) GetEventTypeBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEventTypeBySlug")
	defer scope.End()

	slug := chi.URLParam(r, constant.RequestParamSlug)

	eventType, err := handler.service.GetBySlug(ctx, slug)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get event type by slug")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Event type retrieved successfully")

	response.WithJSON(w, http.StatusOK, eventType)
}

// UpdateEventType updates an existing event type by its ID.
// @Summary Update an event type by ID
// @Description Update the details of an existing event type. Changing the slug to one already in use returns 409.
// @Tags EventType
// @Accept json
// @Produce json
// @Param id path string true "Event Type ID"
// @Param request body dto.UpdateEventTypeRequest true "Update Event Type Request"
// @Success 200 {object} response.Message "Event type updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id} [patch]
// @Security ApiKeyAuth
func (handler *Handler) UpdateEventType(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEventType")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateEventTypeRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update event type")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Event type updated successfully")

	response.WithMessage(w, http.StatusOK, "Event type updated successfully")
}

// DeleteEventType deletes an event type by its ID.
// @Summary Delete an event type by ID
// @Description Delete the event type behind the given id.
// @Tags EventType
// @Accept json
// @Produce json
// @Param id path string true "Event Type ID"
// @Success 200 {object} response.Message "Event type deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id} [delete]
// @Security ApiKeyAuth
func (handler *Handler) DeleteEventType(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEventType")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete event type")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Event type deleted successfully")

	response.WithMessage(w, http.StatusOK, "Event type deleted successfully")
}
