package car_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"rental/infras/otel/mocks"
	"rental/internal/domains/car/model/dto"
	carMocks "rental/internal/domains/car/service/mocks"
	"rental/internal/handlers/car"
	"rental/shared/failure"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*carMocks.MockCar, http.Handler) {
	t.Helper()

	svc := carMocks.NewMockCar(gomock.NewController(t))
	handler := car.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func patchForm(t *testing.T, router http.Handler, target string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}

	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPatch, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestUpdateCar(t *testing.T) {
	t.Run("availability cannot be set from the catalog", func(t *testing.T) {
		_, router := setup(t)

		rec := patchForm(t, router, "/cars/car-1", map[string]string{"availability": "true"})

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "availability is managed by bookings")
	})

	t.Run("descriptive fields reach the service", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().Update(gomock.Any(), dto.UpdateCarRequest{Name: "Baleno"}, "car-1").Return(nil)

		rec := patchForm(t, router, "/cars/car-1", map[string]string{"name": "Baleno"})

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestDeleteCar(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Delete(gomock.Any(), "car-1").Return(failure.Conflict("car is currently booked"))

	req := httptest.NewRequest(http.MethodDelete, "/cars/car-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
