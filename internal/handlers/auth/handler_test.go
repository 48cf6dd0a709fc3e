package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"rental/infras/otel/mocks"
	authMocks "rental/internal/domains/auth/mocks"
	"rental/internal/domains/auth/model/dto"
	userModel "rental/internal/domains/user/model"
	userDto "rental/internal/domains/user/model/dto"
	"rental/internal/handlers/auth"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*authMocks.MockAuth, http.Handler) {
	t.Helper()

	svc := authMocks.NewMockAuth(gomock.NewController(t))
	handler := auth.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func put(router http.Handler, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestUpdateProfile(t *testing.T) {
	t.Run("returns the updated user", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().UpdateProfile(gomock.Any(), dto.UpdateProfileRequest{Username: "rina2", Email: "rina2@example.com"}).
			Return(userDto.UserResponse{ID: "user-1", Username: "rina2", Email: "rina2@example.com"}, nil)

		rec := put(router, "/auth/profile", `{"username":"rina2","email":"rina2@example.com"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		body := map[string]any{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, rec.Body.String(), `"rina2@example.com"`)
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("malformed email", func(t *testing.T) {
		_, router := setup(t)

		rec := put(router, "/auth/profile", `{"email":"not-an-email"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("email taken", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).Return(userDto.UserResponse{}, userModel.ErrEmailTaken)

		rec := put(router, "/auth/profile", `{"email":"taken@example.com"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
