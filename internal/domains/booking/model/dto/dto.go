package dto

import (
	"time"

	"github.com/google/uuid"

	"agenda/internal/domains/booking/model"
	customerModel "agenda/internal/domains/customer/model"
	"agenda/shared"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"
)

type CustomerDetails struct {
	Name  string `json:"name"  validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
	Phone string `json:"phone" validate:"omitempty,max=20"`
}

func (c CustomerDetails) ToModel(businessID string) customerModel.Customer {
	return customerModel.Customer{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  c.Email,
			ModifiedBy: c.Email,
		},
	}
}

type CreateBookingRequest struct {
	ServiceID    string          `json:"service_id"     validate:"required,uuid"`
	TeamMemberID string          `json:"team_member_id" validate:"omitempty,uuid"`
	Date         string          `json:"date"           validate:"required,civildate"`
	Time         string          `json:"time"           validate:"required,clock"`
	Customer     CustomerDetails `json:"customer"       validate:"required"`
	Notes        string          `json:"notes"          validate:"omitempty,max=1000"`
}

// PublicCreateBookingRequest is the unauthenticated funnel variant of
// CreateBookingRequest; the tenant arrives in the body instead of the token.
type PublicCreateBookingRequest struct {
	BusinessID string `json:"business_id" validate:"required,uuid"`
	CreateBookingRequest
}

// ToModel anchors the requested date and wall-clock time in the application
// timezone and derives the end of the interval from the service duration.
func (c *CreateBookingRequest) ToModel(businessID, customerID string, durationMin int) (model.Booking, error) {
	bookingDate, err := timezone.Parse(constant.CivilDateFormat, c.Date)
	if err != nil {
		return model.Booking{}, err
	}

	startTime, err := timezone.Parse(constant.CivilDateFormat+" "+constant.ClockFormat, c.Date+" "+c.Time)
	if err != nil {
		return model.Booking{}, err
	}

	var teamMemberID *string
	if c.TeamMemberID != constant.Empty {
		teamMemberID = &c.TeamMemberID
	}

	return model.Booking{
		ID:           uuid.NewString(),
		BusinessID:   businessID,
		ServiceID:    c.ServiceID,
		TeamMemberID: teamMemberID,
		CustomerID:   customerID,
		BookingDate:  bookingDate,
		StartTime:    startTime,
		EndTime:      startTime.Add(time.Duration(durationMin) * time.Minute),
		Status:       model.StatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  c.Customer.Email,
			ModifiedBy: c.Customer.Email,
		},
		Notes: c.Notes,
	}, nil
}

type UpdateBookingRequest struct {
	Status string `db:"status" json:"status" validate:"omitempty,oneof=confirmed cancelled"`
	Notes  string `db:"notes"  json:"notes"  validate:"omitempty,max=1000"`
}

type BookingResponse struct {
	ID           string `json:"id"`
	BusinessID   string `json:"business_id"`
	ServiceID    string `json:"service_id"`
	ServiceName  string `json:"service_name,omitempty"`
	TeamMemberID string `json:"team_member_id,omitempty"`
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name,omitempty"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Status       string `json:"status"`
	Notes        string `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.BusinessID = model.BusinessID
	r.ServiceID = model.ServiceID
	r.CustomerID = model.CustomerID
	r.Date = timezone.Format(model.BookingDate, constant.CivilDateFormat)
	r.StartTime = timezone.Format(model.StartTime, constant.ClockFormat)
	r.EndTime = timezone.Format(model.EndTime, constant.ClockFormat)
	r.Status = model.Status
	r.Notes = model.Notes

	if model.TeamMemberID != nil {
		r.TeamMemberID = *model.TeamMemberID
	}

	r.Metadata.FromModel(model.Metadata)
}

// BookingEvent is the payload published to the booking events topic on
// every write. Consumers key reminders and analytics off BookingID.
type BookingEvent struct {
	EventType  string `json:"event_type"`
	BookingID  string `json:"booking_id"`
	BusinessID string `json:"business_id"`
	ServiceID  string `json:"service_id"`
	CustomerID string `json:"customer_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	OccurredAt string `json:"occurred_at"`
}

func (e *BookingEvent) FromModel(eventType string, model model.Booking) {
	e.EventType = eventType
	e.BookingID = model.ID
	e.BusinessID = model.BusinessID
	e.ServiceID = model.ServiceID
	e.CustomerID = model.CustomerID
	e.Date = timezone.Format(model.BookingDate, constant.CivilDateFormat)
	e.StartTime = timezone.Format(model.StartTime, constant.ClockFormat)
	e.EndTime = timezone.Format(model.EndTime, constant.ClockFormat)
	e.OccurredAt = timezone.Format(timezone.Now(), constant.DateFormat)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
