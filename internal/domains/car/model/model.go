package model

import (
	vModel "rental/internal/domains/vehicle/model"
	"rental/shared/model"
)

const (
	TableName  = "cars"
	EntityName = "car"

	FieldID           = "id"
	FieldName         = "name"
	FieldImage        = "image"
	FieldFuel         = "fuel"
	FieldTransmission = "transmission"
	FieldCarType      = "car_type"
	FieldPricePerDay  = "price_per_day"
	FieldSeats        = "seats"
	FieldAvailability = "availability"
)

type Car struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	PricePerDay  float64 `db:"price_per_day"`
	Image        string  `db:"image"`
	KmLimit      int     `db:"km_limit"`
	Seats        int     `db:"seats"`
	Fuel         string  `db:"fuel"`
	Transmission string  `db:"transmission"`
	CarType      string  `db:"car_type"`
	AC           bool    `db:"ac"`
	Availability bool    `db:"availability"`
	model.Metadata
}

func (c Car) Vehicle() vModel.Vehicle {
	if c.ID == "" {
		return vModel.Vehicle{}
	}

	return vModel.Vehicle{
		Ref:          vModel.Ref{Type: vModel.TypeCar, ID: c.ID},
		Name:         c.Name,
		Image:        c.Image,
		Availability: c.Availability,
	}
}
