package slot

import (
	"net/http"
	"schedly/infras/otel"
	"schedly/internal/domains/booking/service"
	"schedly/shared/constant"
	"schedly/shared/failure"
	"schedly/shared/validator"
	"schedly/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(publicRouter chi.Router) {
	publicRouter.Get("/slots", handler.GetFreeSlots)
}

// GetFreeSlots resolves the bookable start times for an event type on a date.
// @Summary Get free slots
// @Description Resolve the free slot start times for an event type on one calendar date.
// @Tags Slot
// @Accept json
// @Produce json
// @Param event_type_id query string true "Event Type ID"
// @Param date query string true "Calendar date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetFreeSlotsResponse] "Free slots for the date"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/slots [get]
func (handler *Handler) GetFreeSlots(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFreeSlots")
	defer scope.End()

	eventTypeID := request.URL.Query().Get(constant.RequestParamEventTypeID)
	date := request.URL.Query().Get(constant.RequestParamDate)

	if err := validator.ValidateVar(eventTypeID, "required,uuid4"); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid event_type_id query parameter")

		response.WithError(writer, failure.BadRequestFromString("event_type_id must be a valid UUID"))

		return
	}

	if err := validator.ValidateVar(date, "required,calendardate"); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid date query parameter")

		response.WithError(writer, failure.BadRequestFromString("date must be formatted as YYYY-MM-DD"))

		return
	}

	slots, err := handler.service.FreeSlots(ctx, eventTypeID, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get free slots")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Free slots resolved successfully")

	response.WithJSON(writer, http.StatusOK, slots)
}
