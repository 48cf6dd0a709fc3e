package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"rental/infras/otel/mocks"
	"rental/internal/domains/user/model"
	"rental/internal/domains/user/model/dto"
	userMocks "rental/internal/domains/user/service/mocks"
	"rental/internal/handlers/user"
	gDto "rental/shared/dto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*userMocks.MockUser, http.Handler) {
	t.Helper()

	svc := userMocks.NewMockUser(gomock.NewController(t))
	handler := user.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestCreateUser(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().Create(gomock.Any(), dto.CreateUserRequest{
			Username: "desk-1",
			Email:    "desk@rental.io",
			Password: "longenough",
			Role:     "staff",
		}).Return(dto.UserResponse{ID: "u-1", Role: "staff"}, nil)

		rec := do(router, http.MethodPost, "/users", `{"username":"desk-1","email":"desk@rental.io","password":"longenough","role":"staff"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "u-1", decode(t, rec)["data"].(map[string]any)["id"])
	})

	t.Run("invalid body never reaches the service", func(t *testing.T) {
		_, router := setup(t)

		rec := do(router, http.MethodPost, "/users", `{"username":"desk-1","email":"not-an-email","password":"longenough"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotEmpty(t, decode(t, rec)["error"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.UserResponse{}, model.ErrEmailTaken)

		rec := do(router, http.MethodPost, "/users", `{"username":"desk-1","email":"desk@rental.io","password":"longenough"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestGetUsers(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error) {
			assert.Equal(t, 2, params.Page)

			where, args := filter.GetWhereClause()
			assert.Equal(t, "(users.email = :email AND users.active = :active)", where)
			assert.Equal(t, "desk@rental.io", args["email"])
			assert.Equal(t, false, args["active"])

			return dto.GetUsersResponse{TotalData: 11, TotalPage: 2}, nil
		})

	rec := do(router, http.MethodGet, "/users?page=2&email=Desk@Rental.io&active=false", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 11, decode(t, rec)["data"].(map[string]any)["total_data"])
}

func TestGetUserByID_NotFound(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Get(gomock.Any(), "u-404").Return(dto.UserResponse{}, model.ErrUserNotFound)

	rec := do(router, http.MethodGet, "/users/u-404", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user not found", decode(t, rec)["error"])
}

func TestUpdateUser(t *testing.T) {
	t.Run("unknown role", func(t *testing.T) {
		_, router := setup(t)

		rec := do(router, http.MethodPatch, "/users/u-1", `{"role":"owner"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("deactivate", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().Update(gomock.Any(), gomock.Any(), "u-1").
			DoAndReturn(func(_ context.Context, req dto.UpdateUserRequest, _ string) error {
				require.NotNil(t, req.Active)
				assert.False(t, *req.Active)

				return nil
			})

		rec := do(router, http.MethodPatch, "/users/u-1", `{"active":false}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestDeleteUser(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Delete(gomock.Any(), "u-1").Return(nil)

	rec := do(router, http.MethodDelete, "/users/u-1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted successfully", decode(t, rec)["message"])
}
