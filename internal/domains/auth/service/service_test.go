package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rental/config"
	"rental/infras/jwt"
	jwtMocks "rental/infras/jwt/mocks"
	"rental/infras/otel/mocks"
	"rental/internal/domains/auth/model/dto"
	"rental/internal/domains/auth/service"
	userMocks "rental/internal/domains/user/mocks"
	userModel "rental/internal/domains/user/model"
	"rental/permissions"
	cacheMocks "rental/shared/cache/mocks"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	gModel "rental/shared/model"
	"rental/shared/password"
	gRepo "rental/shared/repository"
	"rental/shared/timezone"
)

type fixture struct {
	repo  *userMocks.MockUser
	jwt   *jwtMocks.MockJWT
	cache *cacheMocks.MockRedisCache
	svc   service.Auth
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  userMocks.NewMockUser(ctrl),
		jwt:   jwtMocks.NewMockJWT(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.repo, &config.Config{}, f.cache, mocks.NewOtel(), f.jwt)

	return f
}

func storedUser(t *testing.T, plain string) userModel.User {
	t.Helper()

	hashed, err := password.Hash(plain)
	require.NoError(t, err)

	return userModel.User{
		ID:       "user-1",
		Username: "rina",
		Email:    "rina@example.com",
		Password: hashed,
		Role:     constant.RoleCustomer,
		Active:   true,
		Metadata: gModel.NewMetadata("user-1", timezone.Now()),
	}
}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{Username: "rina", Email: "Rina@Example.com", Password: "secret1"}

	t.Run("creates a customer", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user userModel.User) error {
			assert.Equal(t, constant.RoleCustomer, user.Role)
			assert.Equal(t, "rina@example.com", user.Email)
			assert.NoError(t, password.Verify("secret1", user.Password))

			return nil
		})

		res, err := f.svc.Register(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "rina", res.Username)
		assert.Equal(t, constant.RoleCustomer, res.Role)
	})

	t.Run("email taken", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Register(context.Background(), req)

		assert.ErrorIs(t, err, userModel.ErrEmailTaken)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("username taken", func(t *testing.T) {
		f := setup(t)

		gomock.InOrder(
			f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil),
			f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
		)

		_, err := f.svc.Register(context.Background(), req)

		assert.ErrorIs(t, err, userModel.ErrUsernameTaken)
	})

	t.Run("concurrent registration hits the unique index", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(fmt.Errorf("failed to insert data (user): %w", gRepo.ErrDuplicate))

		_, err := f.svc.Register(context.Background(), req)

		assert.ErrorIs(t, err, userModel.ErrAccountExists)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("insert failure", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := f.svc.Register(context.Background(), req)

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	pair := &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer", ExpiresIn: 900}

	t.Run("issues a token pair", func(t *testing.T) {
		f := setup(t)
		user := storedUser(t, "secret1")

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), user.ID, user.Email, user.Role).Return(pair, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Contains(t, fields, userModel.FieldLastLogin)

				return nil
			})

		res, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "RINA@example.com", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, "access-token", res.AccessToken)
		assert.Equal(t, "refresh-token", res.RefreshToken)
	})

	t.Run("last login failure does not block login", func(t *testing.T) {
		f := setup(t)
		user := storedUser(t, "secret1")

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), user.ID, user.Email, user.Role).Return(pair, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "rina@example.com", Password: "secret1"})

		assert.NoError(t, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		_, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})

		assert.ErrorIs(t, err, userModel.ErrInvalidLogin)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser(t, "secret1"), nil)

		_, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "rina@example.com", Password: "wrong-one"})

		assert.ErrorIs(t, err, userModel.ErrInvalidLogin)
	})

	t.Run("deactivated account", func(t *testing.T) {
		f := setup(t)
		user := storedUser(t, "secret1")
		user.Active = false

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		_, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "rina@example.com", Password: "secret1"})

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("token generation failure", func(t *testing.T) {
		f := setup(t)
		user := storedUser(t, "secret1")

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("signing failed"))

		_, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "rina@example.com", Password: "secret1"})

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("rotates the pair", func(t *testing.T) {
		f := setup(t)

		f.jwt.EXPECT().RefreshTokens(gomock.Any(), "refresh-token").
			Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

		require.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
		assert.Equal(t, "new-refresh", res.RefreshToken)
	})

	t.Run("invalid token", func(t *testing.T) {
		f := setup(t)

		f.jwt.EXPECT().RefreshTokens(gomock.Any(), "expired").Return(nil, errors.New("token is expired"))

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "expired"})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_Profile(t *testing.T) {
	customer := permissions.Actor{ID: "user-1", Role: constant.RoleCustomer}

	t.Run("returns the caller", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser(t, "secret1"), nil)

		res, err := f.svc.Profile(permissions.ContextWithActor(context.Background(), customer))

		require.NoError(t, err)
		assert.Equal(t, "user-1", res.ID)
		assert.Equal(t, "rina@example.com", res.Email)
	})

	t.Run("anonymous", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.Profile(context.Background())

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("deleted account", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		_, err := f.svc.Profile(permissions.ContextWithActor(context.Background(), customer))

		assert.ErrorIs(t, err, userModel.ErrUserNotFound)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := permissions.ContextWithActor(context.Background(), permissions.Actor{ID: "user-1", Role: constant.RoleCustomer})

	t.Run("stores the new hash", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser(t, "secret1"), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				hashed, ok := fields[userModel.FieldPassword].(string)
				require.True(t, ok)
				assert.NoError(t, password.Verify("secret2", hashed))
				assert.Equal(t, "user-1", fields[constant.FieldModifiedBy])

				return nil
			})

		err := f.svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"})

		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser(t, "secret1"), nil)

		err := f.svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "secret2"})

		assert.EqualError(t, err, "current password is incorrect")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("update failure", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser(t, "secret1"), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		err := f.svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"})

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestAuthService_UpdateProfile(t *testing.T) {
	ctx := permissions.ContextWithActor(context.Background(), permissions.Actor{ID: "user-1", Role: constant.RoleCustomer})

	expectInvalidation := func(f fixture) {
		f.cache.EXPECT().Delete(gomock.Any(), "user:get:user-1").Return(nil).AnyTimes()
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	}

	t.Run("updates username and normalized email", func(t *testing.T) {
		f := setup(t)
		expectInvalidation(f)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser(t, "secret1"), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "rina2", fields[userModel.FieldUsername])
				assert.Equal(t, "rina2@example.com", fields[userModel.FieldEmail])
				assert.NotContains(t, fields, userModel.FieldPassword)
				assert.Equal(t, "user-1", fields[constant.FieldModifiedBy])

				return nil
			})

		res, err := f.svc.UpdateProfile(ctx, dto.UpdateProfileRequest{Username: "rina2", Email: " Rina2@Example.com "})

		require.NoError(t, err)
		assert.Equal(t, "rina2", res.Username)
		assert.Equal(t, "rina2@example.com", res.Email)
	})

	t.Run("only the changed column is checked and written", func(t *testing.T) {
		f := setup(t)
		expectInvalidation(f)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser(t, "secret1"), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(1)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "rina2", fields[userModel.FieldUsername])
				assert.NotContains(t, fields, userModel.FieldEmail)

				return nil
			})

		_, err := f.svc.UpdateProfile(ctx, dto.UpdateProfileRequest{Username: "rina2", Email: "RINA@example.com"})

		assert.NoError(t, err)
	})

	t.Run("unchanged values are a no-op", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser(t, "secret1"), nil)

		res, err := f.svc.UpdateProfile(ctx, dto.UpdateProfileRequest{Username: "rina"})

		require.NoError(t, err)
		assert.Equal(t, "rina", res.Username)
	})

	t.Run("email taken", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser(t, "secret1"), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.UpdateProfile(ctx, dto.UpdateProfileRequest{Email: "taken@example.com"})

		assert.ErrorIs(t, err, userModel.ErrEmailTaken)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("username taken by a concurrent write", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedUser(t, "secret1"), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("failed to update data (user): %w: users_username_key", gRepo.ErrDuplicate))

		_, err := f.svc.UpdateProfile(ctx, dto.UpdateProfileRequest{Username: "rina2"})

		assert.ErrorIs(t, err, userModel.ErrAccountExists)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("empty request", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.UpdateProfile(ctx, dto.UpdateProfileRequest{})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("anonymous", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{Username: "rina2"})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}
