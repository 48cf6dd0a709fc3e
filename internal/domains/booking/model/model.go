package model

import (
	vModel "rental/internal/domains/vehicle/model"
	"rental/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                     = "id"
	FieldCode                   = "booking_code"
	FieldCustomerID             = "customer_id"
	FieldVehicleType            = "vehicle_type"
	FieldStatus                 = "status"
	FieldPreRentalInspectionID  = "pre_rental_inspection_id"
	FieldPostRentalInspectionID = "post_rental_inspection_id"
	FieldPenaltyAmount          = "penalty_amount"
	FieldPenaltyStatus          = "penalty_status"
)

type Booking struct {
	ID                     string      `db:"id"`
	Code                   string      `db:"booking_code"`
	CustomerID             string      `db:"customer_id"`
	VehicleID              string      `db:"vehicle_id"`
	VehicleType            vModel.Type `db:"vehicle_type"`
	PickupAt               time.Time   `db:"pickup_at"`
	DropoffAt              time.Time   `db:"dropoff_at"`
	TotalCost              float64     `db:"total_cost"`
	Status                 Status      `db:"status"`
	PreRentalInspectionID  *string     `db:"pre_rental_inspection_id"`
	PostRentalInspectionID *string     `db:"post_rental_inspection_id"`
	PenaltyAmount          float64     `db:"penalty_amount"`
	PenaltyStatus          Penalty     `db:"penalty_status"`
	model.Metadata
}

func (b Booking) Vehicle() vModel.Ref {
	return vModel.Ref{Type: b.VehicleType, ID: b.VehicleID}
}

func (b Booking) Exists() bool {
	return b.ID != ""
}
