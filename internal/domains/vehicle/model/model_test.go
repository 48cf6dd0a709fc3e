package model_test

import (
	"net/http"
	"rental/internal/domains/vehicle/model"
	"rental/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRef(t *testing.T) {
	tests := []struct {
		name        string
		vehicleType string
		id          string
		expected    model.Ref
		wantErr     bool
	}{
		{name: "car", vehicleType: "car", id: "c1", expected: model.Ref{Type: model.TypeCar, ID: "c1"}},
		{name: "bike", vehicleType: "bike", id: "b1", expected: model.Ref{Type: model.TypeBike, ID: "b1"}},
		{name: "unknown type", vehicleType: "truck", id: "t1", wantErr: true},
		{name: "missing id", vehicleType: "car", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := model.NewRef(tt.vehicleType, tt.id)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, ref)
		})
	}
}

func TestType_CacheKey(t *testing.T) {
	assert.Equal(t, "car:gets", model.TypeCar.CacheKey(model.CacheOpGetAll))
	assert.Equal(t, "bike:get", model.TypeBike.CacheKey(model.CacheOpGet))
}

func TestVehicle_Exists(t *testing.T) {
	assert.False(t, model.Vehicle{}.Exists())
	assert.True(t, model.Vehicle{Ref: model.Ref{Type: model.TypeCar, ID: "c1"}}.Exists())
}
