package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"rental/config"
	"rental/infras/jwt"
	"rental/infras/otel"
	"rental/internal/domains/auth/model/dto"
	userModel "rental/internal/domains/user/model"
	userDto "rental/internal/domains/user/model/dto"
	userRepo "rental/internal/domains/user/repository"
	userService "rental/internal/domains/user/service"
	"rental/permissions"
	"rental/shared"
	"rental/shared/cache"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"rental/shared/password"
	gRepo "rental/shared/repository"
	"rental/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (userDto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	Profile(ctx context.Context) (userDto.UserResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (userDto.UserResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err := userService.CheckUnique(ctx, s.userRepo, req.Email, req.Username); err != nil {
		return res, err
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		if errors.Is(err, gRepo.ErrDuplicate) {
			return res, userModel.ErrAccountExists
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := userRepo.ByEmail(userModel.NormalizeEmail(req.Email))

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.Exists() {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, userModel.ErrInvalidLogin
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		if !errors.Is(err, password.ErrInvalidPassword) {
			log.Error().Err(err).Msg("failed to verify password")

			return res, fmt.Errorf("failed to verify password: %w", err)
		}

		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, userModel.ErrInvalidLogin
	}

	if !user.Active {
		return res, userModel.ErrUserDeactivated
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := userDto.UpdateLastLoginRequest{LastLogin: timezone.Now()}

	if err := s.userRepo.Update(ctx, shared.TransformFields(lastLogin, user.ID), filter); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) current(ctx context.Context) (userModel.User, error) {
	actor := permissions.ActorFromContext(ctx)
	if actor.ID == "" {
		return userModel.User{}, failure.Unauthorized(constant.ResponseErrorUnauthorized)
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(actor.ID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.Exists() {
		return user, userModel.ErrUserNotFound
	}

	return user, nil
}

func (s *serviceImpl) Profile(ctx context.Context) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Profile")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.current(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateProfileRequest{}) {
		return res, failure.BadRequestFromString("username or email is required")
	}

	user, err := s.current(ctx)
	if err != nil {
		return res, err
	}

	username, email := req.Changes(user)
	if username == constant.Empty && email == constant.Empty {
		res.FromModel(user)

		return res, nil
	}

	if err := s.checkTaken(ctx, userRepo.ByEmail(email), email, userModel.ErrEmailTaken); err != nil {
		return res, err
	}

	if err := s.checkTaken(ctx, userRepo.ByUsername(username), username, userModel.ErrUsernameTaken); err != nil {
		return res, err
	}

	filter := shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)

	if err = s.userRepo.Update(ctx, dto.ProfileUpdate(username, email, user.ID), filter); err != nil {
		if errors.Is(err, gRepo.ErrDuplicate) {
			return res, userModel.ErrAccountExists
		}

		log.Error().Err(err).Msg("failed to update profile")

		return res, fmt.Errorf("failed to update profile: %w", err)
	}

	if username != constant.Empty {
		user.Username = username
	}

	if email != constant.Empty {
		user.Email = email
	}

	go userService.InvalidateCache(context.WithoutCancel(ctx), s.cache, user.ID)

	res.FromModel(user)

	return res, nil
}

// checkTaken fails with taken when value is set and already belongs to a user.
func (s *serviceImpl) checkTaken(ctx context.Context, filter gDto.FilterGroup, value string, taken error) error {
	if value == constant.Empty {
		return nil
	}

	exists, err := s.userRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check profile uniqueness")

		return fmt.Errorf("failed to check profile uniqueness: %w", err)
	}

	if exists {
		return taken
	}

	return nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.current(ctx)
	if err != nil {
		return err
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, user.ID)

	if err = s.userRepo.Update(ctx, updatedFields, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
