package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/internal/domains/business/model"
	"agenda/shared"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	gRepo "agenda/shared/repository"
)

type Business interface {
	Insert(ctx context.Context, model model.Business) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Business, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Business, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetOpeningHours(ctx context.Context, businessID string) ([]model.OpeningHour, error)
	ReplaceOpeningHours(ctx context.Context, businessID string, hours []model.OpeningHour) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Business]
	hours gRepo.Repository[model.OpeningHour]
	db    *postgres.Connection
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Business {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Business](model.EntityName, model.TableName, model.FieldID, db, otel),
		hours:      gRepo.NewRepository[model.OpeningHour](model.HoursEntityName, model.HoursTableName, model.FieldHoursID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) GetOpeningHours(ctx context.Context, businessID string) (res []model.OpeningHour, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetOpeningHours")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{SortBy: model.FieldDayOfWeek, SortDir: gDto.SortDirAsc}
	filter := shared.FilterByID(businessID, model.FieldHoursBusinessID, model.HoursTableName)

	res, err = r.hours.GetAll(ctx, params, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get opening hours: %w", err)
	}

	return res, nil
}

// ReplaceOpeningHours swaps the full weekly schedule in one transaction so a
// reader never observes a half-written week.
func (r *repositoryImpl) ReplaceOpeningHours(ctx context.Context, businessID string, hours []model.OpeningHour) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ReplaceOpeningHours")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(businessID, model.FieldHoursBusinessID, model.HoursTableName)

	err = r.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.hours.DeleteTx(ctx, tx, filter); err != nil {
			return fmt.Errorf("failed to clear opening hours: %w", err)
		}

		for _, hour := range hours {
			if err := r.hours.InsertTx(ctx, tx, hour); err != nil {
				return fmt.Errorf("failed to insert opening hour: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace opening hours: %w", err)
	}

	return nil
}
