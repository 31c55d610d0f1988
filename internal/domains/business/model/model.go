package model

import (
	"agenda/shared/constant"
	"agenda/shared/model"
)

const (
	TableName  = "businesses"
	EntityName = "business"

	FieldID                 = "id"
	FieldName               = "name"
	FieldLogoURL            = "logo_url"
	FieldAllowDoubleBooking = "allow_double_booking"
	FieldSlotSizeValue      = "slot_size_value"
	FieldSlotSizeUnit       = "slot_size_unit"
)

const (
	HoursTableName  = "opening_hours"
	HoursEntityName = "opening_hour"

	FieldHoursID         = "id"
	FieldHoursBusinessID = "business_id"
	FieldDayOfWeek       = "day_of_week"
	FieldOpenTime        = "open_time"
	FieldCloseTime       = "close_time"
)

type Business struct {
	ID                 string `db:"id"`
	Name               string `db:"name"`
	LogoURL            string `db:"logo_url"`
	AllowDoubleBooking bool   `db:"allow_double_booking"`
	SlotSizeValue      int    `db:"slot_size_value"`
	SlotSizeUnit       string `db:"slot_size_unit"`
	model.Metadata
}

// SlotSizeMinutes normalizes the configured granularity to minutes, falling
// back to the default when the business never configured one.
func (b *Business) SlotSizeMinutes() int {
	if b.SlotSizeValue <= 0 {
		return constant.DefaultSlotSizeMinutes
	}

	if b.SlotSizeUnit == constant.SlotUnitHours {
		return b.SlotSizeValue * constant.MinutesPerHour
	}

	return b.SlotSizeValue
}

// OpeningHour is one weekday's window in local wall-clock "HH:MM" strings.
// At most one row exists per (business, day of week); a missing row means
// the business is closed that day.
type OpeningHour struct {
	ID         string `db:"id"`
	BusinessID string `db:"business_id"`
	DayOfWeek  int    `db:"day_of_week"`
	OpenTime   string `db:"open_time"`
	CloseTime  string `db:"close_time"`
	model.Metadata
}
