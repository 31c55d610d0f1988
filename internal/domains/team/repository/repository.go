package repository

import (
	"context"

	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/internal/domains/team/model"
	gDto "agenda/shared/dto"
	gRepo "agenda/shared/repository"
)

type Team interface {
	Insert(ctx context.Context, model model.TeamMember) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.TeamMember, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.TeamMember, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.TeamMember]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Team {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.TeamMember](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
