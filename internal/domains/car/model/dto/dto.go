package dto

import (
	"mime/multipart"

	"rental/internal/domains/car/model"
	"rental/shared"
	gDto "rental/shared/dto"
	gModel "rental/shared/model"
	"rental/shared/timezone"

	"github.com/google/uuid"
)

type CreateCarRequest struct {
	Name         string                `json:"name"          validate:"required,max=100"`
	PricePerDay  float64               `json:"price_per_day" validate:"required,gt=0"`
	KmLimit      int                   `json:"km_limit"      validate:"omitempty,min=0"`
	Seats        int                   `json:"seats"         validate:"required,gt=0"`
	Fuel         string                `json:"fuel"          validate:"required,max=30"`
	Transmission string                `json:"transmission"  validate:"required,max=30"`
	CarType      string                `json:"car_type"      validate:"required,max=30"`
	AC           *bool                 `json:"ac"`
	ImageURL     string                `json:"image_url"     validate:"required_without=Image,omitempty,url"`
	Image        *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile    multipart.File        `json:"-"`
}

func (c *CreateCarRequest) ToModel(user, imageURL string) model.Car {
	ac := true
	if c.AC != nil {
		ac = *c.AC
	}

	return model.Car{
		ID:           uuid.NewString(),
		Name:         c.Name,
		PricePerDay:  c.PricePerDay,
		Image:        imageURL,
		KmLimit:      c.KmLimit,
		Seats:        c.Seats,
		Fuel:         c.Fuel,
		Transmission: c.Transmission,
		CarType:      c.CarType,
		AC:           ac,
		Availability: true,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateCarRequest struct {
	Name         string                `db:"name"          json:"name"          validate:"omitempty,max=100"`
	PricePerDay  *float64              `db:"price_per_day" json:"price_per_day" validate:"omitempty,gt=0"`
	KmLimit      *int                  `db:"km_limit"      json:"km_limit"      validate:"omitempty,min=0"`
	Seats        *int                  `db:"seats"         json:"seats"         validate:"omitempty,gt=0"`
	Fuel         string                `db:"fuel"          json:"fuel"          validate:"omitempty,max=30"`
	Transmission string                `db:"transmission"  json:"transmission"  validate:"omitempty,max=30"`
	CarType      string                `db:"car_type"      json:"car_type"      validate:"omitempty,max=30"`
	AC           *bool                 `db:"ac"            json:"ac"`
	ImageURL     string                `db:"image"         json:"image_url"     validate:"omitempty,url"`
	Image        *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile    multipart.File        `json:"-"`
}

type CarResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PricePerDay  float64 `json:"price_per_day"`
	Image        string  `json:"image"`
	KmLimit      int     `json:"km_limit"`
	Seats        int     `json:"seats"`
	Fuel         string  `json:"fuel"`
	Transmission string  `json:"transmission"`
	CarType      string  `json:"car_type"`
	AC           bool    `json:"ac"`
	Availability bool    `json:"availability"`
	gDto.Metadata
}

func (r *CarResponse) FromModel(model model.Car) {
	r.ID = model.ID
	r.Name = model.Name
	r.PricePerDay = model.PricePerDay
	r.Image = model.Image
	r.KmLimit = model.KmLimit
	r.Seats = model.Seats
	r.Fuel = model.Fuel
	r.Transmission = model.Transmission
	r.CarType = model.CarType
	r.AC = model.AC
	r.Availability = model.Availability
	r.Metadata.FromModel(model.Metadata)
}

type GetCarsResponse struct {
	Cars      []CarResponse `json:"cars"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetCarsResponse) FromModels(models []model.Car, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Cars = make([]CarResponse, len(models))
	for i, mod := range models {
		r.Cars[i].FromModel(mod)
	}
}
