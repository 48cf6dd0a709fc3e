package dto_test

import (
	"net/http"
	"testing"
	"time"

	"rental/internal/domains/booking/model"
	"rental/internal/domains/booking/model/dto"
	vModel "rental/internal/domains/vehicle/model"
	"rental/shared/failure"
	"rental/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() dto.CreateBookingRequest {
	total := 2000.0

	return dto.CreateBookingRequest{
		VehicleID:   "C1",
		VehicleType: "car",
		PickupDate:  "2025-01-01",
		PickupTime:  "10:00",
		DropoffDate: "2025-01-03",
		DropoffTime: "10:00",
		TotalCost:   &total,
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	req := validRequest()

	booking, err := req.ToModel("customer-1", now)

	require.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, model.StatusConfirmed, booking.Status)
	assert.Equal(t, model.PenaltyNone, booking.PenaltyStatus)
	assert.Equal(t, vModel.Ref{Type: vModel.TypeCar, ID: "C1"}, booking.Vehicle())
	assert.Equal(t, 48*time.Hour, booking.DropoffAt.Sub(booking.PickupAt))
	assert.InDelta(t, 2000, booking.TotalCost, 0.001)
	assert.Equal(t, "customer-1", booking.CreatedBy)
	assert.Regexp(t, `^BK1735718400000[0-9A-Z]{5}$`, booking.Code)
}

func TestCreateBookingRequest_ToModel_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *dto.CreateBookingRequest)
	}{
		{name: "same instant", mutate: func(req *dto.CreateBookingRequest) { req.DropoffDate = req.PickupDate }},
		{name: "dropoff before pickup", mutate: func(req *dto.CreateBookingRequest) { req.DropoffDate = "2024-12-31" }},
		{name: "unknown vehicle type", mutate: func(req *dto.CreateBookingRequest) { req.VehicleType = "truck" }},
		{name: "malformed time", mutate: func(req *dto.CreateBookingRequest) { req.PickupTime = "25:99" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := req.ToModel("customer-1", time.Now())

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestCreateBookingRequest_Validation(t *testing.T) {
	req := validRequest()
	assert.NoError(t, validator.ValidateStruct(&req))

	req.PickupDate = "01/01/2025"
	assert.Error(t, validator.ValidateStruct(&req))

	req = validRequest()
	req.VehicleType = "truck"
	assert.Error(t, validator.ValidateStruct(&req))

	req = validRequest()
	req.TotalCost = nil
	assert.Error(t, validator.ValidateStruct(&req))
}

func TestTransitionRequest_Validation(t *testing.T) {
	assert.NoError(t, validator.ValidateStruct(&dto.TransitionRequest{Status: "pending_return"}))
	assert.Error(t, validator.ValidateStruct(&dto.TransitionRequest{Status: "lost"}))
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	res := dto.GetBookingsResponse{}
	res.FromModels([]model.Booking{{ID: "bk-1", Code: "BK1", Status: model.StatusActive, VehicleType: vModel.TypeBike}}, 21, 10)

	assert.Equal(t, 3, res.TotalPage)
	assert.Equal(t, 21, res.TotalData)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, "BK1", res.Bookings[0].Code)
	assert.Equal(t, "bike", res.Bookings[0].VehicleType)
}
