package dto_test

import (
	"testing"

	"rental/internal/domains/bike/model"
	"rental/internal/domains/bike/model/dto"

	"github.com/stretchr/testify/assert"
)

func TestCreateBikeRequest_ToModel(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req := dto.CreateBikeRequest{Name: "Activa", BikeType: "scooter", HourlyRate: 3.5}

		bike := req.ToModel("staff-1", "https://cdn.example.com/bike/activa.png")

		assert.Equal(t, 2, bike.SeatCount)
		assert.Equal(t, 100, bike.KmLimit)
		assert.False(t, bike.FuelIncluded)
		assert.True(t, bike.Availability)
		assert.Equal(t, "staff-1", bike.ModifiedBy)
	})

	t.Run("explicit values", func(t *testing.T) {
		seats, limit := 1, 250
		req := dto.CreateBikeRequest{Name: "Duke", BikeType: "sport", HourlyRate: 9, SeatCount: &seats, KmLimit: &limit, FuelIncluded: true}

		bike := req.ToModel("staff-1", "")

		assert.Equal(t, 1, bike.SeatCount)
		assert.Equal(t, 250, bike.KmLimit)
		assert.True(t, bike.FuelIncluded)
	})
}

func TestBikeResponse_FromModel(t *testing.T) {
	var res dto.BikeResponse

	res.FromModel(model.Bike{ID: "bike-1", Name: "Activa", ImageURL: "https://cdn.example.com/bike/a.png", HourlyRate: 3.5})

	assert.Equal(t, "bike-1", res.ID)
	assert.Equal(t, "https://cdn.example.com/bike/a.png", res.ImageURL)
	assert.InDelta(t, 3.5, res.HourlyRate, 0.0001)
}
