package team

import (
	"net/http"

	"agenda/infras/otel"
	"agenda/internal/domains/team/model/dto"
	"agenda/internal/domains/team/service"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	"agenda/shared/validator"
	"agenda/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Team
	otel    otel.Otel
}

func New(service service.Team, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/team-members", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTeamMember)
		routerGroup.Get("/", handler.GetTeamMembers)
		routerGroup.Get("/{id}", handler.GetTeamMemberByID)
		routerGroup.Patch("/{id}", handler.UpdateTeamMember)
		routerGroup.Delete("/{id}", handler.DeleteTeamMember)
	})
}

func businessIDFromContext(w http.ResponseWriter, r *http.Request) (string, bool) {
	businessID, ok := r.Context().Value(constant.ContextKeyBusinessID).(string)
	if !ok || businessID == "" {
		log.Error().Msg("failed to get business ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return "", false
	}

	return businessID, true
}

// CreateTeamMember handles the creation of a new team member.
// @Summary Create a new team member
// @Description Add a staff member to the authenticated business.
// @Tags Team
// @Accept json
// @Produce json
// @Param request body dto.CreateTeamMemberRequest true "Create Team Member Request"
// @Success 201 {object} response.Data[dto.TeamMemberResponse] "Team member created successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/team-members [post]
// @Security BearerAuth
func (handler *Handler) CreateTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTeamMember")
	defer scope.End()

	businessID, ok := businessIDFromContext(w, r)
	if !ok {
		return
	}

	req := dto.CreateTeamMemberRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req, businessID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create team member")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Team member created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetTeamMembers retrieves all team members of the authenticated business.
// @Summary Get all team members
// @Description Retrieve all staff members with pagination.
// @Tags Team
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} dto.GetTeamMembersResponse "List of team members"
// @Failure 401 {object} response.Error
// @Router /v1/team-members [get]
// @Security BearerAuth
func (handler *Handler) GetTeamMembers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTeamMembers")
	defer scope.End()

	businessID, ok := businessIDFromContext(w, r)
	if !ok {
		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	members, err := handler.service.GetAll(ctx, queryParams, businessID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get team members")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Team members retrieved successfully")

	response.WithJSON(w, http.StatusOK, members)
}

// GetTeamMemberByID retrieves a team member by their ID.
// @Summary Get a team member by ID
// @Description Retrieve a team member by their unique identifier.
// @Tags Team
// @Accept json
// @Produce json
// @Param id path string true "Team Member ID"
// @Success 200 {object} response.Data[dto.TeamMemberResponse] "Team member details"
// @Failure 404 {object} response.Error
// @Router /v1/team-members/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetTeamMemberByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTeamMemberByID")
	defer scope.End()

	businessID, ok := businessIDFromContext(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	member, err := handler.service.Get(ctx, businessID, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get team member by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Team member retrieved successfully")

	response.WithJSON(w, http.StatusOK, member)
}

// UpdateTeamMember updates an existing team member by their ID.
// @Summary Update a team member by ID
// @Description Update the details of an existing team member.
// @Tags Team
// @Accept json
// @Produce json
// @Param id path string true "Team Member ID"
// @Param request body dto.UpdateTeamMemberRequest true "Update Team Member Request"
// @Success 200 {object} response.Message "Team member updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/team-members/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTeamMember")
	defer scope.End()

	businessID, ok := businessIDFromContext(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTeamMemberRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, businessID, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update team member")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Team member updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Team member updated successfully")
}

// DeleteTeamMember deletes a team member by their ID.
// @Summary Delete a team member by ID
// @Description Remove a staff member from the business.
// @Tags Team
// @Accept json
// @Produce json
// @Param id path string true "Team Member ID"
// @Success 200 {object} response.Message "Team member deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/team-members/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTeamMember")
	defer scope.End()

	businessID, ok := businessIDFromContext(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, businessID, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete team member")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Team member deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Team member deleted successfully")
}
