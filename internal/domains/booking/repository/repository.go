package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/internal/domains/booking/model"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	"agenda/shared/logger"
	gRepo "agenda/shared/repository"
	"agenda/shared/timezone"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ListForServiceDay(ctx context.Context, serviceID string, day time.Time) ([]model.Booking, error)
	CreateWithGuard(ctx context.Context, booking model.Booking) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ListForServiceDay returns the confirmed bookings of one service inside the
// half-open day window, ordered by start time. Conflicts are scoped to the
// service alone, so no team member column appears in the predicate.
func (r *repositoryImpl) ListForServiceDay(ctx context.Context, serviceID string, day time.Time) (res []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListForServiceDay")
	defer scope.End()

	dayStart := timezone.StartOfDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `SELECT * FROM bookings
		WHERE service_id = :service_id AND status = :status
		AND start_time >= :day_start AND start_time < :day_end
		ORDER BY start_time ASC`

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"service_id": serviceID,
		"status":     model.StatusConfirmed,
		"day_start":  dayStart,
		"day_end":    dayEnd,
	}

	prepare, err := r.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &res, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to list bookings for service day: %w", err)
	}

	return res, nil
}

// CreateWithGuard inserts a booking after re-checking the slot inside one
// transaction. An advisory lock on (service, date) serializes concurrent
// writers so the check-then-insert window cannot be raced; losers get
// failure.SlotTaken.
func (r *repositoryImpl) CreateWithGuard(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateWithGuard")
	defer scope.End()
	defer scope.TraceIfError(err)

	lockKey := booking.ServiceID + ":" + timezone.Format(booking.BookingDate, constant.CivilDateFormat)

	err = r.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", lockKey); err != nil {
			return fmt.Errorf("failed to acquire booking lock: %w", err)
		}

		var conflicts int

		query := `SELECT COUNT(id) FROM bookings
			WHERE service_id = $1 AND status = $2
			AND start_time < $3 AND end_time > $4`

		if err := tx.GetContext(ctx, &conflicts, query, booking.ServiceID, model.StatusConfirmed, booking.EndTime, booking.StartTime); err != nil {
			return fmt.Errorf("failed to count conflicting bookings: %w", err)
		}

		if conflicts > 0 {
			return failure.SlotTaken // nolint:wrapcheck
		}

		return r.InsertTx(ctx, tx, booking) // nolint:wrapcheck
	})
	if err != nil {
		return err
	}

	return nil
}
