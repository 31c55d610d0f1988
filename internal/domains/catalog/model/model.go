package model

import (
	"agenda/shared/model"
)

const (
	TableName  = "services"
	EntityName = "service"

	FieldID          = "id"
	FieldBusinessID  = "business_id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldDurationMin = "duration_min"
	FieldPriceCents  = "price_cents"
)

type Service struct {
	ID          string `db:"id"`
	BusinessID  string `db:"business_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	DurationMin int    `db:"duration_min"`
	PriceCents  int64  `db:"price_cents"`
	model.Metadata
}
