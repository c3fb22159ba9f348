package router

import (
	"schedly/internal/handlers/availability"
	"schedly/internal/handlers/booking"
	"schedly/internal/handlers/event"
	"schedly/internal/handlers/slot"
	"schedly/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Availability availability.Handler
	Event        event.Handler
	Booking      booking.Handler
	Slot         slot.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Auth           middleware.Auth
}

// SetupRoutes mounts the v1 API. Operator endpoints sit behind the API key;
// the booking-page endpoints (slug lookup, slot query, booking creation) stay
// public.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		operatorGroup := routerGroup.With(r.Auth.APIKey)

		r.DomainHandlers.Availability.Router(operatorGroup)
		r.DomainHandlers.Event.Router(operatorGroup, routerGroup)
		r.DomainHandlers.Booking.Router(operatorGroup, routerGroup)
		r.DomainHandlers.Slot.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, auth middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Auth:           auth,
	}
}
