package dto

import (
	"github.com/google/uuid"

	"agenda/internal/domains/catalog/model"
	"agenda/shared"
	gDto "agenda/shared/dto"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"
)

type CreateServiceRequest struct {
	Name        string `json:"name"         validate:"required,max=255"`
	Description string `json:"description"  validate:"omitempty,max=1000"`
	DurationMin int    `json:"duration_min" validate:"required,min=1,max=1440"`
	PriceCents  int64  `json:"price_cents"  validate:"min=0"`
}

func (c *CreateServiceRequest) ToModel(businessID, user string) model.Service {
	return model.Service{
		ID:          uuid.NewString(),
		BusinessID:  businessID,
		Name:        c.Name,
		Description: c.Description,
		DurationMin: c.DurationMin,
		PriceCents:  c.PriceCents,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateServiceRequest struct {
	Name        string `db:"name"         json:"name"         validate:"omitempty,max=255"`
	Description string `db:"description"  json:"description"  validate:"omitempty,max=1000"`
	DurationMin int    `db:"duration_min" json:"duration_min" validate:"omitempty,min=1,max=1440"`
	PriceCents  int64  `db:"price_cents"  json:"price_cents"  validate:"omitempty,min=0"`
}

type ServiceResponse struct {
	ID          string `json:"id"`
	BusinessID  string `json:"business_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	DurationMin int    `json:"duration_min"`
	PriceCents  int64  `json:"price_cents"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(model model.Service) {
	r.ID = model.ID
	r.BusinessID = model.BusinessID
	r.Name = model.Name
	r.Description = model.Description
	r.DurationMin = model.DurationMin
	r.PriceCents = model.PriceCents
	r.Metadata.FromModel(model.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}
