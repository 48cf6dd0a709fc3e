package dto

import (
	"rental/internal/domains/booking/model"
	vModel "rental/internal/domains/vehicle/model"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	gModel "rental/shared/model"
	"rental/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	VehicleID   string   `json:"vehicleId"   validate:"required,uuid"`
	VehicleType string   `json:"vehicleType" validate:"required,oneof=car bike"`
	PickupDate  string   `json:"pickupDate"  validate:"required,date"`
	PickupTime  string   `json:"pickupTime"  validate:"required,clock"`
	DropoffDate string   `json:"dropoffDate" validate:"required,date"`
	DropoffTime string   `json:"dropoffTime" validate:"required,clock"`
	TotalCost   *float64 `json:"totalCost"   validate:"required,gte=0"`
}

// ToModel builds a confirmed booking for customerID. It rejects an unknown
// vehicle type and a pickup that does not precede the dropoff.
func (c *CreateBookingRequest) ToModel(customerID string, now time.Time) (model.Booking, error) {
	ref, err := vModel.NewRef(c.VehicleType, c.VehicleID)
	if err != nil {
		return model.Booking{}, err
	}

	pickupAt, err := model.Schedule(c.PickupDate, c.PickupTime)
	if err != nil {
		return model.Booking{}, err
	}

	dropoffAt, err := model.Schedule(c.DropoffDate, c.DropoffTime)
	if err != nil {
		return model.Booking{}, err
	}

	if !pickupAt.Before(dropoffAt) {
		return model.Booking{}, model.ErrInvalidSchedule
	}

	var totalCost float64
	if c.TotalCost != nil {
		totalCost = *c.TotalCost
	}

	return model.Booking{
		ID:            uuid.NewString(),
		Code:          model.NewCode(now),
		CustomerID:    customerID,
		VehicleID:     ref.ID,
		VehicleType:   ref.Type,
		PickupAt:      pickupAt,
		DropoffAt:     dropoffAt,
		TotalCost:     totalCost,
		Status:        model.StatusConfirmed,
		PenaltyStatus: model.PenaltyNone,
		Metadata:      gModel.NewMetadata(customerID, now),
	}, nil
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed active pending_return returned completed cancelled"`
}

type BookingResponse struct {
	ID                     string  `json:"id"`
	Code                   string  `json:"bookingId"`
	CustomerID             string  `json:"customerId"`
	VehicleID              string  `json:"vehicleId"`
	VehicleType            string  `json:"vehicleType"`
	PickupAt               string  `json:"pickupAt"`
	DropoffAt              string  `json:"dropoffAt"`
	TotalCost              float64 `json:"totalCost"`
	Status                 string  `json:"status"`
	PreRentalInspectionID  *string `json:"preRentalInspectionId,omitempty"`
	PostRentalInspectionID *string `json:"postRentalInspectionId,omitempty"`
	PenaltyAmount          float64 `json:"penaltyAmount"`
	PenaltyStatus          string  `json:"penaltyStatus"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Code = model.Code
	r.CustomerID = model.CustomerID
	r.VehicleID = model.VehicleID
	r.VehicleType = string(model.VehicleType)
	r.PickupAt = timezone.Format(model.PickupAt, constant.DateFormat)
	r.DropoffAt = timezone.Format(model.DropoffAt, constant.DateFormat)
	r.TotalCost = model.TotalCost
	r.Status = string(model.Status)
	r.PreRentalInspectionID = model.PreRentalInspectionID
	r.PostRentalInspectionID = model.PostRentalInspectionID
	r.PenaltyAmount = model.PenaltyAmount
	r.PenaltyStatus = string(model.PenaltyStatus)
	r.Metadata.FromModel(model.Metadata)
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
