package public

import (
	"net/http"

	"agenda/infras/otel"
	availabilityService "agenda/internal/domains/availability/service"
	bookingDto "agenda/internal/domains/booking/model/dto"
	bookingService "agenda/internal/domains/booking/service"
	catalogService "agenda/internal/domains/catalog/service"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/validator"
	"agenda/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

// Handler serves the unauthenticated booking funnel: customers browse a
// business's services, pick a slot and book, all without an account. The
// tenant therefore travels in the URL or the request body instead of a token.
type Handler struct {
	booking      bookingService.Booking
	availability availabilityService.Availability
	catalog      catalogService.Catalog
	otel         otel.Otel
}

func New(booking bookingService.Booking, availability availabilityService.Availability, catalog catalogService.Catalog, otel otel.Otel) Handler {
	return Handler{
		booking:      booking,
		availability: availability,
		catalog:      catalog,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/public", func(routerGroup chi.Router) {
		routerGroup.Post("/bookings", handler.CreateBooking)
		routerGroup.Get("/businesses/{id}/slots", handler.GetSlots)
		routerGroup.Get("/businesses/{id}/services", handler.GetServices)
	})
}

// CreateBooking handles the creation of a booking through the public funnel.
// @Summary Create a booking as a customer
// @Description Book a slot without an account. The customer record is created or refreshed by email.
// @Tags Public
// @Accept json
// @Produce json
// @Param request body bookingDto.PublicCreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[bookingDto.BookingResponse] "Booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/public/bookings [post]
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PublicCreateBooking")
	defer scope.End()

	req := bookingDto.PublicCreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.booking.Create(ctx, req.CreateBookingRequest, req.BusinessID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking created successfully by customer " + req.Customer.Email)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetSlots returns the slot sheet of one service for one day.
// @Summary Get day slots
// @Description Retrieve the bookable slots of a service for a given date. Closed days yield an empty list.
// @Tags Public
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param service_id query string true "Service ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.GetSlotsResponse "Slot sheet"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/public/businesses/{id}/slots [get]
func (handler *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlots")
	defer scope.End()

	businessID := chi.URLParam(r, constant.RequestParamID)
	serviceID := r.URL.Query().Get(constant.RequestParamServiceID)
	date := r.URL.Query().Get(constant.RequestParamDate)

	if err := validator.ValidateVar(serviceID, "required,uuid"); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid service_id query parameter")

		response.WithError(w, err)

		return
	}

	if err := validator.ValidateVar(date, "required,civildate"); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid date query parameter")

		response.WithError(w, err)

		return
	}

	slots, err := handler.availability.Slots(ctx, businessID, serviceID, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get slots")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Slots retrieved successfully")

	response.WithJSON(w, http.StatusOK, slots)
}

// GetServices lists the bookable services of a business for the funnel.
// @Summary Get business services
// @Description Retrieve the services a customer can book with this business.
// @Tags Public
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} dto.GetServicesResponse "List of services"
// @Failure 404 {object} response.Error
// @Router /v1/public/businesses/{id}/services [get]
func (handler *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServices")
	defer scope.End()

	businessID := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	services, err := handler.catalog.GetAll(ctx, queryParams, businessID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get services")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Services retrieved successfully")

	response.WithJSON(w, http.StatusOK, services)
}
