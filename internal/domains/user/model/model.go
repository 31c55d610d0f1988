package model

import (
	"time"

	"agenda/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID         = "id"
	FieldBusinessID = "business_id"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldRole       = "role"
	FieldFullName   = "full_name"
	FieldLastLogin  = "last_login"
	FieldActive     = "active"
)

// User is a dashboard account. Every user belongs to exactly one business;
// customers booking appointments never get a row here.
type User struct {
	ID         string     `db:"id"`
	BusinessID string     `db:"business_id"`
	Email      string     `db:"email"`
	Password   string     `db:"password"`
	Role       string     `db:"role"`
	FullName   *string    `db:"full_name"`
	LastLogin  *time.Time `db:"last_login"`
	Active     bool       `db:"active"`
	model.Metadata
}
