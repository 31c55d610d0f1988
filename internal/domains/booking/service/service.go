package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"agenda/config"
	"agenda/infras/kafka"
	"agenda/infras/otel"
	"agenda/internal/domains/booking/model"
	"agenda/internal/domains/booking/model/dto"
	"agenda/internal/domains/booking/repository"
	businessModel "agenda/internal/domains/business/model"
	businessRepo "agenda/internal/domains/business/repository"
	catalogModel "agenda/internal/domains/catalog/model"
	catalogRepo "agenda/internal/domains/catalog/repository"
	customerRepo "agenda/internal/domains/customer/repository"
	teamModel "agenda/internal/domains/team/model"
	teamRepo "agenda/internal/domains/team/repository"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheSlots         = "availability:slots"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest, businessID string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, businessID string) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, businessID, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, businessID, id string) error
	Delete(ctx context.Context, businessID, id string) error
}

type serviceImpl struct {
	repo       repository.Booking
	businesses businessRepo.Business
	catalog    catalogRepo.Catalog
	team       teamRepo.Team
	customers  customerRepo.Customer
	cfg        *config.Config
	cache      cache.RedisCache
	events     kafka.Client
	otel       otel.Otel
}

func New(repo repository.Booking, businesses businessRepo.Business, catalog catalogRepo.Catalog, team teamRepo.Team, customers customerRepo.Customer, cfg *config.Config, cache cache.RedisCache, events kafka.Client, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:       repo,
		businesses: businesses,
		catalog:    catalog,
		team:       team,
		customers:  customers,
		cfg:        cfg,
		cache:      cache,
		events:     events,
		otel:       otel,
	}
}

// publishEvent emits a booking lifecycle event. The write has already
// committed, so a broker hiccup is logged and absorbed rather than turned
// into a client-facing error.
func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, booking model.Booking) {
	event := dto.BookingEvent{}
	event.FromModel(eventType, booking)

	err := s.events.SendMessages(ctx, s.cfg.Kafka.Topics.BookingEvents, kafka.Message{
		Key:   booking.ID,
		Value: event,
	})
	if err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Str("booking_id", booking.ID).Msg("failed to publish booking event")
	}
}

// Create books an appointment for a customer. The slot is validated inside
// the repository transaction rather than here, so a concurrent request for
// the same interval cannot slip between the check and the insert.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest, businessID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	business, err := s.businesses.Get(ctx, shared.FilterByID(businessID, businessModel.FieldID, businessModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get business")

		return res, fmt.Errorf("failed to get business: %w", err)
	}

	if business.ID == constant.Empty {
		return res, failure.NotFound("business not found") // nolint:wrapcheck
	}

	service, err := s.catalog.Get(ctx, shared.FilterByBusinessID(req.ServiceID, businessID, catalogModel.FieldID, catalogModel.FieldBusinessID, catalogModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty {
		return res, failure.NotFound("service not found") // nolint:wrapcheck
	}

	if req.TeamMemberID != constant.Empty {
		memberExists, err := s.team.Exist(ctx, shared.FilterByBusinessID(req.TeamMemberID, businessID, teamModel.FieldID, teamModel.FieldBusinessID, teamModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if team member exists")

			return res, fmt.Errorf("failed to check if team member exists: %w", err)
		}

		if !memberExists {
			return res, failure.NotFound("team member not found") // nolint:wrapcheck
		}
	}

	customer, err := s.customers.Upsert(ctx, req.Customer.ToModel(businessID))
	if err != nil {
		log.Error().Err(err).Msg("failed to upsert customer")

		return res, fmt.Errorf("failed to upsert customer: %w", err)
	}

	booking, err := req.ToModel(businessID, customer.ID, service.DurationMin)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString("invalid date/time format") // nolint:wrapcheck
	}

	if business.AllowDoubleBooking {
		err = s.repo.Insert(ctx, booking)
	} else {
		err = s.repo.CreateWithGuard(ctx, booking)
	}

	if err != nil {
		if failure.IsConflict(err) {
			return res, err
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)
	res.ServiceName = service.Name
	res.CustomerName = customer.Name

	s.publishEvent(ctx, model.EventCreated, booking)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheSlots)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, businessID string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(businessID, model.FieldBusinessID, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, businessID, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, businessID, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByBusinessID(id, businessID, model.FieldID, model.FieldBusinessID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, businessID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByBusinessID(id, businessID, model.FieldID, model.FieldBusinessID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, businessID, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheSlots)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, businessID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByBusinessID(id, businessID, model.FieldID, model.FieldBusinessID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.publishEvent(ctx, model.EventCancelled, booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, businessID, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheSlots)
	}()

	return nil
}
