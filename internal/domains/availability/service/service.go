package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"agenda/config"
	"agenda/infras/otel"
	"agenda/internal/domains/availability/model/dto"
	"agenda/internal/domains/availability/slot"
	bookingModel "agenda/internal/domains/booking/model"
	bookingRepo "agenda/internal/domains/booking/repository"
	businessModel "agenda/internal/domains/business/model"
	businessRepo "agenda/internal/domains/business/repository"
	catalogModel "agenda/internal/domains/catalog/model"
	catalogRepo "agenda/internal/domains/catalog/repository"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	"agenda/shared/failure"
	"agenda/shared/timezone"
)

const (
	cacheGetSlots = "availability:slots"
)

type Availability interface {
	Check(ctx context.Context, req dto.CheckAvailabilityRequest) (dto.CheckAvailabilityResponse, error)
	Slots(ctx context.Context, businessID, serviceID, date string) (dto.GetSlotsResponse, error)
}

type serviceImpl struct {
	bookings   bookingRepo.Booking
	businesses businessRepo.Business
	catalog    catalogRepo.Catalog
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(bookings bookingRepo.Booking, businesses businessRepo.Business, catalog catalogRepo.Catalog, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Availability {
	return &serviceImpl{
		bookings:   bookings,
		businesses: businesses,
		catalog:    catalog,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// Check decides whether a candidate interval can be booked. The interval is
// [start, start + service duration); a business with double booking enabled
// short-circuits to available without touching stored bookings.
func (s *serviceImpl) Check(ctx context.Context, req dto.CheckAvailabilityRequest) (res dto.CheckAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Check")
	defer scope.End()
	defer scope.TraceIfError(err)

	business, service, err := s.resolve(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		return res, err
	}

	start, err := timezone.Parse(constant.CivilDateFormat+" "+constant.ClockFormat, req.Date+" "+req.Time)
	if err != nil {
		return res, failure.BadRequestFromString("invalid date/time format") // nolint:wrapcheck
	}

	res.OverlappingBookings = []dto.OverlappingBooking{}

	if business.AllowDoubleBooking {
		res.Available = true

		return res, nil
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	overlapping, err := s.overlapping(ctx, req.ServiceID, start, end)
	if err != nil {
		return res, err
	}

	res.FromModels(overlapping)

	return res, nil
}

// Slots renders one day's grid for a service. The sheet is advisory: a slot
// shown available can still lose to a concurrent writer, which is why the
// booking path re-checks inside its transaction.
func (s *serviceImpl) Slots(ctx context.Context, businessID, serviceID, date string) (res dto.GetSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Slots")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSlots, businessID, serviceID, date)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for slots")

		return res, nil
	}

	business, service, err := s.resolve(ctx, businessID, serviceID)
	if err != nil {
		return res, err
	}

	day, err := timezone.Parse(constant.CivilDateFormat, date)
	if err != nil {
		return res, failure.BadRequestFromString("invalid date format") // nolint:wrapcheck
	}

	hours, err := s.businesses.GetOpeningHours(ctx, businessID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get opening hours")

		return res, fmt.Errorf("failed to get opening hours: %w", err)
	}

	var window slot.Window

	open := false

	for _, hour := range hours {
		if hour.DayOfWeek != int(day.Weekday()) {
			continue
		}

		window, err = slot.ParseWindow(hour.OpenTime, hour.CloseTime)
		if err != nil {
			log.Error().Err(err).Str("businessID", businessID).Msg("stored opening hours are malformed")

			return res, fmt.Errorf("failed to parse opening hours: %w", err)
		}

		open = true

		break
	}

	if !open {
		res.FromSlots(date, serviceID, nil)

		return res, nil
	}

	now := timezone.Now()
	isToday := timezone.StartOfDay(now).Equal(timezone.StartOfDay(day))
	nowMinute := now.Hour()*constant.MinutesPerHour + now.Minute()

	grid := slot.Generate(window, business.SlotSizeMinutes(), isToday, nowMinute)

	if !business.AllowDoubleBooking {
		if err = s.markBooked(ctx, grid, serviceID, day, service.DurationMin); err != nil {
			return res, err
		}
	}

	res.FromSlots(date, serviceID, grid)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save slots to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) resolve(ctx context.Context, businessID, serviceID string) (businessModel.Business, catalogModel.Service, error) {
	business, err := s.businesses.Get(ctx, shared.FilterByID(businessID, businessModel.FieldID, businessModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get business")

		return business, catalogModel.Service{}, fmt.Errorf("failed to get business: %w", err)
	}

	if business.ID == constant.Empty {
		return business, catalogModel.Service{}, failure.NotFound("business not found") // nolint:wrapcheck
	}

	service, err := s.catalog.Get(ctx, shared.FilterByBusinessID(serviceID, businessID, catalogModel.FieldID, catalogModel.FieldBusinessID, catalogModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return business, service, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty {
		return business, service, failure.NotFound("service not found") // nolint:wrapcheck
	}

	return business, service, nil
}

func (s *serviceImpl) overlapping(ctx context.Context, serviceID string, start, end time.Time) ([]bookingModel.Booking, error) {
	bookings, err := s.bookings.ListForServiceDay(ctx, serviceID, start)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	overlapping := make([]bookingModel.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if slot.Overlaps(start, end, booking.StartTime, booking.EndTime) {
			overlapping = append(overlapping, booking)
		}
	}

	return overlapping, nil
}

func (s *serviceImpl) markBooked(ctx context.Context, grid []slot.Slot, serviceID string, day time.Time, durationMin int) error {
	bookings, err := s.bookings.ListForServiceDay(ctx, serviceID, day)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return fmt.Errorf("failed to list bookings: %w", err)
	}

	duration := time.Duration(durationMin) * time.Minute

	for i := range grid {
		if !grid[i].Available {
			continue
		}

		start := timezone.At(day, grid[i].Minute)
		end := start.Add(duration)

		for _, booking := range bookings {
			if slot.Overlaps(start, end, booking.StartTime, booking.EndTime) {
				grid[i].Available = false

				break
			}
		}
	}

	return nil
}
