package validator_test

import (
	"strings"
	"testing"

	"agenda/shared/validator"
)

type bookingRequest struct {
	BusinessID string `json:"business_id" validate:"required"`
	ServiceID  string `json:"service_id"  validate:"required"`
	Date       string `json:"date"        validate:"required,civildate"`
	Time       string `json:"time"        validate:"required,clock"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name:    "valid body",
			body:    `{"business_id":"b1","service_id":"s1","date":"2024-06-10","time":"09:30"}`,
			wantErr: false,
		},
		{
			name:    "missing required field",
			body:    `{"service_id":"s1","date":"2024-06-10","time":"09:30"}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{"business_id":`,
			wantErr: true,
		},
		{
			name:    "bad clock value",
			body:    `{"business_id":"b1","service_id":"s1","date":"2024-06-10","time":"25:99"}`,
			wantErr: true,
		},
		{
			name:    "bad date value",
			body:    `{"business_id":"b1","service_id":"s1","date":"10-06-2024","time":"09:30"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := bookingRequest{}

			err := validator.Validate(strings.NewReader(tt.body), &req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar("09:00", "clock"); err != nil {
		t.Errorf("expected 09:00 to be a valid clock value, got %v", err)
	}

	if err := validator.ValidateVar("9:00", "clock"); err == nil {
		t.Error("expected 9:00 to be rejected (not zero padded)")
	}

	if err := validator.ValidateVar("2024-06-10", "civildate"); err != nil {
		t.Errorf("expected 2024-06-10 to be a valid civil date, got %v", err)
	}
}
