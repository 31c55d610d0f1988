package model

import (
	"time"

	"agenda/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldBusinessID   = "business_id"
	FieldServiceID    = "service_id"
	FieldTeamMemberID = "team_member_id"
	FieldCustomerID   = "customer_id"
	FieldBookingDate  = "booking_date"
	FieldStartTime    = "start_time"
	FieldEndTime      = "end_time"
	FieldStatus       = "status"
	FieldNotes        = "notes"

	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"

	EventCreated   = "booking.created.v1"
	EventCancelled = "booking.cancelled.v1"
)

// Booking holds its interval as [StartTime, EndTime) so two appointments may
// legally touch end-to-start. Conflicts are judged per service, regardless of
// which team member takes the appointment.
type Booking struct {
	ID           string    `db:"id"`
	BusinessID   string    `db:"business_id"`
	ServiceID    string    `db:"service_id"`
	TeamMemberID *string   `db:"team_member_id"`
	CustomerID   string    `db:"customer_id"`
	BookingDate  time.Time `db:"booking_date"`
	StartTime    time.Time `db:"start_time"`
	EndTime      time.Time `db:"end_time"`
	Status       string    `db:"status"`
	Notes        string    `db:"notes"`
	model.Metadata
}
