package validator_test

import (
	"mime/multipart"
	"net/textproto"
	"rental/shared/validator"
	"strings"
	"testing"
)

type bookingRequest struct {
	VehicleID   string  `json:"vehicleId"   validate:"required"`
	VehicleType string  `json:"vehicleType" validate:"required,oneof=car bike"`
	PickupDate  string  `json:"pickupDate"  validate:"required,date"`
	PickupTime  string  `json:"pickupTime"  validate:"required,clock"`
	TotalCost   float64 `json:"totalCost"   validate:"gte=0"`
}

type uploadRequest struct {
	Image multipart.FileHeader `validate:"mimetypes=image/jpeg image/png,maxfilesize=1"`
}

func validBooking() bookingRequest {
	return bookingRequest{
		VehicleID:   "car-1",
		VehicleType: "car",
		PickupDate:  "2026-03-01",
		PickupTime:  "09:30",
		TotalCost:   2000,
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(r *bookingRequest)
		expectError bool
	}{
		{name: "valid request", mutate: func(_ *bookingRequest) {}},
		{name: "missing vehicle", mutate: func(r *bookingRequest) { r.VehicleID = "" }, expectError: true},
		{name: "unknown vehicle type", mutate: func(r *bookingRequest) { r.VehicleType = "truck" }, expectError: true},
		{name: "malformed date", mutate: func(r *bookingRequest) { r.PickupDate = "01/03/2026" }, expectError: true},
		{name: "malformed time", mutate: func(r *bookingRequest) { r.PickupTime = "9am" }, expectError: true},
		{name: "negative cost", mutate: func(r *bookingRequest) { r.TotalCost = -1 }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBooking()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	req := validBooking()
	req.PickupDate = "tomorrow"

	err := validator.ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected validation error")
	}

	if got, want := err.Error(), "pickupDate must be a date formatted as YYYY-MM-DD"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"vehicleId":"bike-1","vehicleType":"bike","pickupDate":"2026-03-01","pickupTime":"08:00","totalCost":120}`,
		},
		{
			name:        "rule violation",
			jsonBody:    `{"vehicleId":"bike-1","vehicleType":"boat","pickupDate":"2026-03-01","pickupTime":"08:00"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"vehicleId":}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data bookingRequest

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestFileValidation(t *testing.T) {
	header := func(contentType string, size int64) multipart.FileHeader {
		return multipart.FileHeader{
			Header: textproto.MIMEHeader{"Content-Type": {contentType}},
			Size:   size,
		}
	}

	tests := []struct {
		name        string
		image       multipart.FileHeader
		expectError bool
	}{
		{name: "small png", image: header("image/png", 512)},
		{name: "pdf", image: header("application/pdf", 512), expectError: true},
		{name: "too large", image: header("image/jpeg", 2*1024*1024), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&uploadRequest{Image: tt.image})

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar("pending_return", "oneof=active pending_return"); err != nil {
		t.Errorf("expected no validation error, got: %v", err)
	}

	if err := validator.ValidateVar("returned", "oneof=active pending_return"); err == nil {
		t.Error("expected validation error, got nil")
	}
}
