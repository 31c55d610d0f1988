package router

import (
	"agenda/internal/handlers/auth"
	"agenda/internal/handlers/booking"
	"agenda/internal/handlers/business"
	"agenda/internal/handlers/catalog"
	"agenda/internal/handlers/customer"
	"agenda/internal/handlers/public"
	"agenda/internal/handlers/team"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	Business business.Handler
	Catalog  catalog.Handler
	Team     team.Handler
	Customer customer.Handler
	Booking  booking.Handler
	Public   public.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Business.Router(routerGroup)
		r.DomainHandlers.Catalog.Router(routerGroup)
		r.DomainHandlers.Team.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Public.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
