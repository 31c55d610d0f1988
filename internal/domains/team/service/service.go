package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"agenda/config"
	"agenda/infras/otel"
	"agenda/internal/domains/team/model"
	"agenda/internal/domains/team/model/dto"
	"agenda/internal/domains/team/repository"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
)

const (
	cacheGetTeamMember    = "team_member:get"
	cacheGetAllTeamMember = "team_member:gets"
	cacheCountTeamMember  = "team_member:count"
)

type Team interface {
	Create(ctx context.Context, req dto.CreateTeamMemberRequest, businessID string) (dto.TeamMemberResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, businessID string) (dto.GetTeamMembersResponse, error)
	Get(ctx context.Context, businessID, id string) (dto.TeamMemberResponse, error)
	Update(ctx context.Context, req dto.UpdateTeamMemberRequest, businessID, id string) error
	Delete(ctx context.Context, businessID, id string) error
}

type serviceImpl struct {
	repo  repository.Team
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Team, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Team {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTeamMemberRequest, businessID string) (res dto.TeamMemberResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	member := req.ToModel(businessID, user)

	if err = s.repo.Insert(ctx, member); err != nil {
		log.Error().Err(err).Msg("failed to create team member")

		return res, fmt.Errorf("failed to create team member: %w", err)
	}

	res.FromModel(member)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTeamMember)
		shared.InvalidateCaches(c, s.cache, cacheCountTeamMember)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, businessID string) (res dto.GetTeamMembersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(businessID, model.FieldBusinessID, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTeamMember, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for team members")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count team members")

		return res, fmt.Errorf("failed to count team members: %w", err)
	}

	members, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get team members")

		return res, fmt.Errorf("failed to get team members: %w", err)
	}

	res.FromModels(members, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save team members to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, businessID, id string) (res dto.TeamMemberResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetTeamMember, businessID, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for team member")

		return res, nil
	}

	member, err := s.repo.Get(ctx, shared.FilterByBusinessID(id, businessID, model.FieldID, model.FieldBusinessID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get team member")

		return res, fmt.Errorf("failed to get team member: %w", err)
	}

	if member.ID == constant.Empty {
		return res, failure.NotFound("team member not found") // nolint:wrapcheck
	}

	res.FromModel(member)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save team member to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTeamMemberRequest, businessID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateTeamMemberRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByBusinessID(id, businessID, model.FieldID, model.FieldBusinessID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if team member exists")

		return fmt.Errorf("failed to check if team member exists: %w", err)
	}

	if !exist {
		log.Error().Msg("team member not found")

		return failure.NotFound("team member not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update team member")

		return fmt.Errorf("failed to update team member: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTeamMember, businessID, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete team member from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTeamMember)
		shared.InvalidateCaches(c, s.cache, cacheCountTeamMember)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, businessID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByBusinessID(id, businessID, model.FieldID, model.FieldBusinessID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if team member exists")

		return fmt.Errorf("failed to check if team member exists: %w", err)
	}

	if !exist {
		log.Error().Msg("team member not found")

		return failure.NotFound("team member not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete team member")

		return fmt.Errorf("failed to delete team member: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTeamMember, businessID, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete team member from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTeamMember)
		shared.InvalidateCaches(c, s.cache, cacheCountTeamMember)
	}()

	return nil
}
