package model

import (
	"agenda/shared/model"
)

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID         = "id"
	FieldBusinessID = "business_id"
	FieldName       = "name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
)

// Customer identity is (business_id, email); the same person booking with two
// businesses is two separate rows.
type Customer struct {
	ID         string `db:"id"`
	BusinessID string `db:"business_id"`
	Name       string `db:"name"`
	Email      string `db:"email"`
	Phone      string `db:"phone"`
	model.Metadata
}
