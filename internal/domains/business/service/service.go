package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"agenda/config"
	"agenda/infras/otel"
	"agenda/infras/s3"
	"agenda/internal/domains/business/model"
	"agenda/internal/domains/business/model/dto"
	"agenda/internal/domains/business/repository"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	"agenda/shared/timezone"
)

const (
	cacheGetBusiness    = "business:get"
	cacheGetAllBusiness = "business:gets"
	cacheCountBusiness  = "business:count"
	cacheGetHours       = "business:hours"
)

type Business interface {
	Create(ctx context.Context, req dto.CreateBusinessRequest) (dto.BusinessResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBusinessesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BusinessResponse, error)
	Update(ctx context.Context, req dto.UpdateBusinessRequest, id string) error
	Delete(ctx context.Context, id string) error
	GetOpeningHours(ctx context.Context, id string) (dto.GetOpeningHoursResponse, error)
	SetOpeningHours(ctx context.Context, req dto.SetOpeningHoursRequest, id string) error
	UploadLogo(ctx context.Context, req dto.UploadLogoRequest, id string) (dto.UploadLogoResponse, error)
}

type serviceImpl struct {
	repo  repository.Business
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Business, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Business {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBusinessRequest) (res dto.BusinessResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	business := req.ToModel(user)

	if err = s.repo.Insert(ctx, business); err != nil {
		log.Error().Err(err).Msg("failed to create business")

		return res, fmt.Errorf("failed to create business: %w", err)
	}

	res.FromModel(business)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBusiness)
		shared.InvalidateCaches(c, s.cache, cacheCountBusiness)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBusinessesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBusiness, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for businesses")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count businesses")

		return res, err
	}

	businesses, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get businesses")

		return res, fmt.Errorf("failed to get businesses: %w", err)
	}

	res.FromModels(businesses, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save businesses to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBusiness, req, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for business count")

		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count businesses")

		return total, fmt.Errorf("failed to count businesses: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save business count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BusinessResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBusiness, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for business")

		return res, nil
	}

	business, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get business")

		return res, fmt.Errorf("failed to get business: %w", err)
	}

	if business.ID == constant.Empty {
		return res, failure.NotFound("business not found") // nolint:wrapcheck
	}

	res.FromModel(business)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save business to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBusinessRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBusinessRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if business exists")

		return fmt.Errorf("failed to check if business exists: %w", err)
	}

	if !exist {
		log.Error().Msg("business not found")

		return failure.NotFound("business not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update business")

		return fmt.Errorf("failed to update business: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBusiness, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete business from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBusiness)
		shared.InvalidateCaches(c, s.cache, cacheCountBusiness)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if business exists")

		return fmt.Errorf("failed to check if business exists: %w", err)
	}

	if !exist {
		log.Error().Msg("business not found")

		return failure.NotFound("business not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete business")

		return fmt.Errorf("failed to delete business: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBusiness, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete business from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBusiness)
		shared.InvalidateCaches(c, s.cache, cacheCountBusiness)
		shared.InvalidateCaches(c, s.cache, cacheGetHours)
	}()

	return nil
}

func (s *serviceImpl) GetOpeningHours(ctx context.Context, id string) (res dto.GetOpeningHoursResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetOpeningHours")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetHours, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for opening hours")

		return res, nil
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if business exists")

		return res, fmt.Errorf("failed to check if business exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("business not found") // nolint:wrapcheck
	}

	hours, err := s.repo.GetOpeningHours(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get opening hours")

		return res, fmt.Errorf("failed to get opening hours: %w", err)
	}

	res.FromModels(hours)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save opening hours to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) SetOpeningHours(ctx context.Context, req dto.SetOpeningHoursRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetOpeningHours")
	defer scope.End()
	defer scope.TraceIfError(err)

	seen := make(map[int]bool, len(req.Hours))
	for _, hour := range req.Hours {
		if hour.OpenTime >= hour.CloseTime {
			return failure.BadRequestFromString("open_time must be before close_time") // nolint:wrapcheck
		}

		if seen[hour.DayOfWeek] {
			return failure.BadRequestFromString("duplicate day_of_week in hours") // nolint:wrapcheck
		}
		seen[hour.DayOfWeek] = true
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if business exists")

		return fmt.Errorf("failed to check if business exists: %w", err)
	}

	if !exist {
		log.Error().Msg("business not found")

		return failure.NotFound("business not found") // nolint:wrapcheck
	}

	if err = s.repo.ReplaceOpeningHours(ctx, id, req.ToModels(id, user)); err != nil {
		log.Error().Err(err).Msg("failed to set opening hours")

		return fmt.Errorf("failed to set opening hours: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetHours, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete opening hours from cache")
		}
	}()

	return nil
}

func (s *serviceImpl) UploadLogo(ctx context.Context, req dto.UploadLogoRequest, id string) (res dto.UploadLogoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadLogo")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	business, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get business")

		return res, fmt.Errorf("failed to get business: %w", err)
	}

	if business.ID == constant.Empty {
		return res, failure.NotFound("business not found") // nolint:wrapcheck
	}

	bucketName := s.cfg.External.S3.BucketName

	url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.LogoFile, req.Logo, req.Logo.Filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload logo to S3")

		return res, fmt.Errorf("failed to upload logo to S3: %w", err)
	}

	updatedFields := map[string]any{
		model.FieldLogoURL:       url,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to save logo url")

		return res, fmt.Errorf("failed to save logo url: %w", err)
	}

	if business.LogoURL != constant.Empty {
		go func() {
			c := context.WithoutCancel(ctx)

			objectName := s.s3.GetObjectNameFromURL(bucketName, business.LogoURL)
			if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
				log.Error().Err(err).Msg("failed to delete old logo from S3")
			}
		}()
	}

	res.FromModel(url)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBusiness, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete business from cache")
		}
	}()

	return res, nil
}
