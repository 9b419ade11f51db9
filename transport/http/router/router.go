package router

import (
	"github.com/go-chi/chi/v5"

	"roombooker/internal/handlers/auth"
	"roombooker/internal/handlers/booking"
	"roombooker/internal/handlers/calendar"
	"roombooker/internal/handlers/history"
	"roombooker/internal/handlers/room"
	"roombooker/internal/handlers/upload"
)

type DomainHandlers struct {
	Auth     auth.Handler
	Room     room.Handler
	Booking  booking.Handler
	Calendar calendar.Handler
	History  history.Handler
	Upload   upload.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Calendar.Router(routerGroup)
		r.DomainHandlers.History.Router(routerGroup)
		r.DomainHandlers.Upload.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
