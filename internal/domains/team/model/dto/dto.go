package dto

import (
	"github.com/google/uuid"

	"agenda/internal/domains/team/model"
	"agenda/shared"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"
)

type CreateTeamMemberRequest struct {
	Name  string `json:"name"  validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
	Role  string `json:"role"  validate:"omitempty,oneof=owner staff"`
}

func (c *CreateTeamMemberRequest) ToModel(businessID, user string) model.TeamMember {
	role := c.Role
	if role == constant.Empty {
		role = constant.RoleStaff
	}

	return model.TeamMember{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		Name:       c.Name,
		Email:      c.Email,
		Role:       role,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTeamMemberRequest struct {
	Name  string `db:"name"  json:"name"  validate:"omitempty,max=255"`
	Email string `db:"email" json:"email" validate:"omitempty,email,max=255"`
	Role  string `db:"role"  json:"role"  validate:"omitempty,oneof=owner staff"`
}

type TeamMemberResponse struct {
	ID         string `json:"id"`
	BusinessID string `json:"business_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	gDto.Metadata
}

func (r *TeamMemberResponse) FromModel(model model.TeamMember) {
	r.ID = model.ID
	r.BusinessID = model.BusinessID
	r.Name = model.Name
	r.Email = model.Email
	r.Role = model.Role
	r.Metadata.FromModel(model.Metadata)
}

type GetTeamMembersResponse struct {
	TeamMembers []TeamMemberResponse `json:"team_members"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetTeamMembersResponse) FromModels(models []model.TeamMember, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.TeamMembers = make([]TeamMemberResponse, len(models))
	for i, mod := range models {
		r.TeamMembers[i].FromModel(mod)
	}
}
