package repository

import (
	"context"
	"fmt"

	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/internal/domains/customer/model"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/logger"
	gRepo "agenda/shared/repository"
)

type Customer interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Customer, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Customer, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Upsert(ctx context.Context, model model.Customer) (model.Customer, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Customer]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Customer {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Customer](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Upsert inserts the customer or, when (business_id, email) already exists,
// refreshes the contact details. Returns the stored row either way.
func (r *repositoryImpl) Upsert(ctx context.Context, customer model.Customer) (res model.Customer, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".customer.Upsert")
	defer scope.End()

	query := `INSERT INTO customers (id, business_id, name, email, phone, created_at, modified_at, created_by, modified_by)
		VALUES (:id, :business_id, :name, :email, :phone, :created_at, :modified_at, :created_by, :modified_by)
		ON CONFLICT (business_id, email) DO UPDATE
		SET name = EXCLUDED.name, phone = EXCLUDED.phone, modified_at = EXCLUDED.modified_at, modified_by = EXCLUDED.modified_by
		RETURNING *`

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := r.db.Write.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &res, customer); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to upsert data (%s): %w", model.EntityName, err)
	}

	return res, nil
}
