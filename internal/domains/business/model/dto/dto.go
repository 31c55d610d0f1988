package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"agenda/internal/domains/business/model"
	"agenda/shared"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"
)

type SlotSize struct {
	Value int    `json:"value" validate:"required,min=1"`
	Unit  string `json:"unit"  validate:"required,oneof=minutes hours"`
}

type CreateBusinessRequest struct {
	Name               string   `json:"name" validate:"required,max=255"`
	AllowDoubleBooking bool     `json:"allow_double_booking"`
	SlotSize           SlotSize `json:"slot_size" validate:"required"`
}

func (c *CreateBusinessRequest) ToModel(user string) model.Business {
	return model.Business{
		ID:                 uuid.NewString(),
		Name:               c.Name,
		AllowDoubleBooking: c.AllowDoubleBooking,
		SlotSizeValue:      c.SlotSize.Value,
		SlotSizeUnit:       c.SlotSize.Unit,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateBusinessRequest struct {
	Name               string `db:"name"                 json:"name"                 validate:"omitempty,max=255"`
	AllowDoubleBooking *bool  `db:"allow_double_booking" json:"allow_double_booking" validate:"omitempty"`
	SlotSizeValue      int    `db:"slot_size_value"      json:"slot_size_value"      validate:"omitempty,min=1"`
	SlotSizeUnit       string `db:"slot_size_unit"       json:"slot_size_unit"       validate:"omitempty,oneof=minutes hours"`
}

type OpeningHourPayload struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	OpenTime  string `json:"open_time"   validate:"required,clock"`
	CloseTime string `json:"close_time"  validate:"required,clock"`
}

type SetOpeningHoursRequest struct {
	Hours []OpeningHourPayload `json:"hours" validate:"required,dive"`
}

func (s *SetOpeningHoursRequest) ToModels(businessID, user string) []model.OpeningHour {
	hours := make([]model.OpeningHour, len(s.Hours))
	for i, payload := range s.Hours {
		hours[i] = model.OpeningHour{
			ID:         uuid.NewString(),
			BusinessID: businessID,
			DayOfWeek:  payload.DayOfWeek,
			OpenTime:   payload.OpenTime,
			CloseTime:  payload.CloseTime,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}
	}

	return hours
}

type BusinessResponse struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	LogoURL            string   `json:"logo_url,omitempty"`
	AllowDoubleBooking bool     `json:"allow_double_booking"`
	SlotSize           SlotSize `json:"slot_size"`
	gDto.Metadata
}

func (r *BusinessResponse) FromModel(model model.Business) {
	unit := model.SlotSizeUnit
	if unit == constant.Empty {
		unit = constant.SlotUnitMinutes
	}

	r.ID = model.ID
	r.Name = model.Name
	r.LogoURL = model.LogoURL
	r.AllowDoubleBooking = model.AllowDoubleBooking
	r.SlotSize = SlotSize{Value: model.SlotSizeValue, Unit: unit}
	if model.SlotSizeValue <= 0 {
		r.SlotSize = SlotSize{Value: constant.DefaultSlotSizeMinutes, Unit: constant.SlotUnitMinutes}
	}
	r.Metadata.FromModel(model.Metadata)
}

type GetBusinessesResponse struct {
	Businesses []BusinessResponse `json:"businesses"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetBusinessesResponse) FromModels(models []model.Business, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Businesses = make([]BusinessResponse, len(models))
	for i, mod := range models {
		r.Businesses[i].FromModel(mod)
	}
}

type OpeningHourResponse struct {
	DayOfWeek int    `json:"day_of_week"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

type GetOpeningHoursResponse struct {
	Hours []OpeningHourResponse `json:"hours"`
}

func (r *GetOpeningHoursResponse) FromModels(models []model.OpeningHour) {
	r.Hours = make([]OpeningHourResponse, len(models))
	for i, mod := range models {
		r.Hours[i] = OpeningHourResponse{
			DayOfWeek: mod.DayOfWeek,
			OpenTime:  mod.OpenTime,
			CloseTime: mod.CloseTime,
		}
	}
}

type UploadLogoRequest struct {
	Logo     *multipart.FileHeader `json:"logo" validate:"required,mimetypes=image/png image/jpg image/jpeg"`
	LogoFile multipart.File        `json:"-"`
}

type UploadLogoResponse struct {
	LogoURL string `json:"logo_url"`
}

func (r *UploadLogoResponse) FromModel(url string) {
	r.LogoURL = url
}
