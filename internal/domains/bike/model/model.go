package model

import (
	vModel "rental/internal/domains/vehicle/model"
	"rental/shared/model"
)

const (
	TableName  = "bikes"
	EntityName = "bike"

	FieldID           = "id"
	FieldName         = "name"
	FieldBikeType     = "bike_type"
	FieldImageURL     = "image_url"
	FieldFuelIncluded = "fuel_included"
	FieldAvailability = "availability"

	DefaultSeatCount = 2
	DefaultKmLimit   = 100
)

type Bike struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	BikeType     string  `db:"bike_type"`
	HourlyRate   float64 `db:"hourly_rate"`
	ImageURL     string  `db:"image_url"`
	SeatCount    int     `db:"seat_count"`
	KmLimit      int     `db:"km_limit"`
	FuelIncluded bool    `db:"fuel_included"`
	Availability bool    `db:"availability"`
	model.Metadata
}

func (b Bike) Vehicle() vModel.Vehicle {
	if b.ID == "" {
		return vModel.Vehicle{}
	}

	return vModel.Vehicle{
		Ref:          vModel.Ref{Type: vModel.TypeBike, ID: b.ID},
		Name:         b.Name,
		Image:        b.ImageURL,
		Availability: b.Availability,
	}
}
