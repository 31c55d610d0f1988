package dto

import (
	"agenda/internal/domains/user/model"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/timezone"
)

type UserResponse struct {
	ID         string  `json:"id"`
	BusinessID string  `json:"business_id"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	FullName   *string `json:"full_name,omitempty"`
	LastLogin  *string `json:"last_login,omitempty"`
	Active     bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.BusinessID = model.BusinessID
	r.Email = model.Email
	r.Role = model.Role
	r.FullName = model.FullName
	r.Active = model.Active

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(model.Metadata)
}
