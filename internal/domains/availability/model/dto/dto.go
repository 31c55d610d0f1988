package dto

import (
	"agenda/internal/domains/availability/slot"
	bookingModel "agenda/internal/domains/booking/model"
	"agenda/shared/constant"
	"agenda/shared/timezone"
)

type CheckAvailabilityRequest struct {
	BusinessID string `json:"business_id" validate:"required,uuid"`
	ServiceID  string `json:"service_id"  validate:"required,uuid"`
	Date       string `json:"date"        validate:"required,civildate"`
	Time       string `json:"time"        validate:"required,clock"`
}

type OverlappingBooking struct {
	ID        string `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type CheckAvailabilityResponse struct {
	Available           bool                 `json:"available"`
	OverlappingBookings []OverlappingBooking `json:"overlapping_bookings"`
}

func (r *CheckAvailabilityResponse) FromModels(models []bookingModel.Booking) {
	r.Available = len(models) == 0

	r.OverlappingBookings = make([]OverlappingBooking, len(models))
	for i, mod := range models {
		r.OverlappingBookings[i] = OverlappingBooking{
			ID:        mod.ID,
			StartTime: timezone.Format(mod.StartTime, constant.ClockFormat),
			EndTime:   timezone.Format(mod.EndTime, constant.ClockFormat),
		}
	}
}

type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type GetSlotsResponse struct {
	Date      string         `json:"date"`
	ServiceID string         `json:"service_id"`
	Slots     []SlotResponse `json:"slots"`
}

func (r *GetSlotsResponse) FromSlots(date, serviceID string, slots []slot.Slot) {
	r.Date = date
	r.ServiceID = serviceID

	r.Slots = make([]SlotResponse, len(slots))
	for i, s := range slots {
		r.Slots[i] = SlotResponse{Time: s.Time, Available: s.Available}
	}
}
