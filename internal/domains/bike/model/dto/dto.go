package dto

import (
	"mime/multipart"

	"rental/internal/domains/bike/model"
	"rental/shared"
	gDto "rental/shared/dto"
	gModel "rental/shared/model"
	"rental/shared/timezone"

	"github.com/google/uuid"
)

type CreateBikeRequest struct {
	Name         string                `json:"name"          validate:"required,max=100"`
	BikeType     string                `json:"bike_type"     validate:"required,max=30"`
	HourlyRate   float64               `json:"hourly_rate"   validate:"required,gt=0"`
	SeatCount    *int                  `json:"seat_count"    validate:"omitempty,gt=0"`
	KmLimit      *int                  `json:"km_limit"      validate:"omitempty,min=0"`
	FuelIncluded bool                  `json:"fuel_included"`
	ImageURL     string                `json:"image_url"     validate:"required_without=Image,omitempty,url"`
	Image        *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile    multipart.File        `json:"-"`
}

func (c *CreateBikeRequest) ToModel(user, imageURL string) model.Bike {
	seatCount := model.DefaultSeatCount
	if c.SeatCount != nil {
		seatCount = *c.SeatCount
	}

	kmLimit := model.DefaultKmLimit
	if c.KmLimit != nil {
		kmLimit = *c.KmLimit
	}

	return model.Bike{
		ID:           uuid.NewString(),
		Name:         c.Name,
		BikeType:     c.BikeType,
		HourlyRate:   c.HourlyRate,
		ImageURL:     imageURL,
		SeatCount:    seatCount,
		KmLimit:      kmLimit,
		FuelIncluded: c.FuelIncluded,
		Availability: true,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateBikeRequest struct {
	Name         string                `db:"name"          json:"name"          validate:"omitempty,max=100"`
	BikeType     string                `db:"bike_type"     json:"bike_type"     validate:"omitempty,max=30"`
	HourlyRate   *float64              `db:"hourly_rate"   json:"hourly_rate"   validate:"omitempty,gt=0"`
	SeatCount    *int                  `db:"seat_count"    json:"seat_count"    validate:"omitempty,gt=0"`
	KmLimit      *int                  `db:"km_limit"      json:"km_limit"      validate:"omitempty,min=0"`
	FuelIncluded *bool                 `db:"fuel_included" json:"fuel_included"`
	ImageURL     string                `db:"image_url"     json:"image_url"     validate:"omitempty,url"`
	Image        *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile    multipart.File        `json:"-"`
}

type BikeResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	BikeType     string  `json:"bike_type"`
	HourlyRate   float64 `json:"hourly_rate"`
	ImageURL     string  `json:"image_url"`
	SeatCount    int     `json:"seat_count"`
	KmLimit      int     `json:"km_limit"`
	FuelIncluded bool    `json:"fuel_included"`
	Availability bool    `json:"availability"`
	gDto.Metadata
}

func (r *BikeResponse) FromModel(model model.Bike) {
	r.ID = model.ID
	r.Name = model.Name
	r.BikeType = model.BikeType
	r.HourlyRate = model.HourlyRate
	r.ImageURL = model.ImageURL
	r.SeatCount = model.SeatCount
	r.KmLimit = model.KmLimit
	r.FuelIncluded = model.FuelIncluded
	r.Availability = model.Availability
	r.Metadata.FromModel(model.Metadata)
}

type GetBikesResponse struct {
	Bikes     []BikeResponse `json:"bikes"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetBikesResponse) FromModels(models []model.Bike, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bikes = make([]BikeResponse, len(models))
	for i, mod := range models {
		r.Bikes[i].FromModel(mod)
	}
}
