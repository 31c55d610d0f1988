package business

import (
	"net/http"

	"agenda/infras/otel"
	"agenda/internal/domains/business/model"
	"agenda/internal/domains/business/model/dto"
	"agenda/internal/domains/business/service"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	"agenda/shared/validator"
	"agenda/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Business
	otel    otel.Otel
}

func New(service service.Business, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/businesses", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBusiness)
		routerGroup.Get("/", handler.GetBusinesses)
		routerGroup.Delete("/{id}", handler.DeleteBusiness)
	})

	// The dashboard manages the business the token is scoped to, so these
	// routes take no {id} segment.
	router.Route("/business", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMyBusiness)
		routerGroup.Patch("/", handler.UpdateBusiness)
		routerGroup.Get("/opening-hours", handler.GetOpeningHours)
		routerGroup.Put("/opening-hours", handler.SetOpeningHours)
		routerGroup.Post("/logo", handler.UploadLogo)
	})
}

// CreateBusiness provisions a business without an owner account.
// @Summary Create a new business
// @Description Create a business directly, without going through owner registration.
// @Tags Business
// @Accept json
// @Produce json
// @Param request body dto.CreateBusinessRequest true "Create Business Request"
// @Success 201 {object} response.Data[dto.BusinessResponse] "Business created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/businesses [post]
// @Security BearerAuth
func (handler *Handler) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBusiness")
	defer scope.End()

	req := dto.CreateBusinessRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create business")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Business created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetBusinesses retrieves all businesses based on query parameters.
// @Summary Get all businesses
// @Description Retrieve all registered businesses with optional filtering and pagination.
// @Tags Business
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Success 200 {object} dto.GetBusinessesResponse "List of businesses"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/businesses [get]
// @Security BearerAuth
func (handler *Handler) GetBusinesses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusinesses")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	name := r.URL.Query().Get(model.FieldName)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	businesses, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get businesses")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Businesses retrieved successfully")

	response.WithJSON(w, http.StatusOK, businesses)
}

// DeleteBusiness deletes a business by its ID.
// @Summary Delete a business by ID
// @Description Delete a business and everything scoped under it.
// @Tags Business
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} response.Message "Business deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/businesses/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBusiness(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBusiness")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete business")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Business deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Business deleted successfully")
}

// GetMyBusiness retrieves the business the current token is scoped to.
// @Summary Get my business
// @Description Retrieve the profile and booking settings of the authenticated business.
// @Tags Business
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.BusinessResponse] "Business details"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/business [get]
// @Security BearerAuth
func (handler *Handler) GetMyBusiness(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBusiness")
	defer scope.End()

	businessID, ok := ctx.Value(constant.ContextKeyBusinessID).(string)
	if !ok || businessID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get business ID from context")
		response.WithError(w, err)

		return
	}

	business, err := handler.service.Get(ctx, businessID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get business")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Business retrieved successfully")

	response.WithJSON(w, http.StatusOK, business)
}

// UpdateBusiness updates the authenticated business profile and settings.
// @Summary Update my business
// @Description Update business profile fields and booking settings such as slot size and double booking.
// @Tags Business
// @Accept json
// @Produce json
// @Param request body dto.UpdateBusinessRequest true "Update Business Request"
// @Success 200 {object} response.Message "Business updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/business [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBusiness")
	defer scope.End()

	businessID, ok := ctx.Value(constant.ContextKeyBusinessID).(string)
	if !ok || businessID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get business ID from context")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateBusinessRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, businessID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update business")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Business updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Business updated successfully")
}

// GetOpeningHours retrieves the weekly opening hours of the authenticated business.
// @Summary Get opening hours
// @Description Retrieve the weekly opening hours. Weekdays without an entry are closed.
// @Tags Business
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetOpeningHoursResponse "Weekly opening hours"
// @Failure 401 {object} response.Error
// @Router /v1/business/opening-hours [get]
// @Security BearerAuth
func (handler *Handler) GetOpeningHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOpeningHours")
	defer scope.End()

	businessID, ok := ctx.Value(constant.ContextKeyBusinessID).(string)
	if !ok || businessID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get business ID from context")
		response.WithError(w, err)

		return
	}

	hours, err := handler.service.GetOpeningHours(ctx, businessID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get opening hours")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Opening hours retrieved successfully")

	response.WithJSON(w, http.StatusOK, hours)
}

// SetOpeningHours replaces the weekly opening hours of the authenticated business.
// @Summary Set opening hours
// @Description Replace the full weekly schedule in one operation.
// @Tags Business
// @Accept json
// @Produce json
// @Param request body dto.SetOpeningHoursRequest true "Set Opening Hours Request"
// @Success 200 {object} response.Message "Opening hours updated successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/business/opening-hours [put]
// @Security BearerAuth
func (handler *Handler) SetOpeningHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetOpeningHours")
	defer scope.End()

	businessID, ok := ctx.Value(constant.ContextKeyBusinessID).(string)
	if !ok || businessID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get business ID from context")
		response.WithError(w, err)

		return
	}

	req := dto.SetOpeningHoursRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetOpeningHours(ctx, req, businessID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set opening hours")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Opening hours updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Opening hours updated successfully")
}

// UploadLogo uploads a new logo for the authenticated business.
// @Summary Upload business logo
// @Description Upload a logo image to object storage and attach it to the business.
// @Tags Business
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Logo image"
// @Success 200 {object} response.Data[dto.UploadLogoResponse] "Logo uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/business/logo [post]
// @Security BearerAuth
func (handler *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadLogo")
	defer scope.End()

	businessID, ok := ctx.Value(constant.ContextKeyBusinessID).(string)
	if !ok || businessID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get business ID from context")
		response.WithError(w, err)

		return
	}

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	req := dto.UploadLogoRequest{
		Logo:     fileHeader,
		LogoFile: file,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate uploaded file")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadLogo(ctx, req, businessID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload logo")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Logo uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}
