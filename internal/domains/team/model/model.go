package model

import (
	"agenda/shared/model"
)

const (
	TableName  = "team_members"
	EntityName = "team_member"

	FieldID         = "id"
	FieldBusinessID = "business_id"
	FieldName       = "name"
	FieldEmail      = "email"
	FieldRole       = "role"
)

type TeamMember struct {
	ID         string `db:"id"`
	BusinessID string `db:"business_id"`
	Name       string `db:"name"`
	Email      string `db:"email"`
	Role       string `db:"role"`
	model.Metadata
}
