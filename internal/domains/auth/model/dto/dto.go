package dto

import (
	"rental/infras/jwt"
	userModel "rental/internal/domains/user/model"
	"rental/shared"
	"rental/shared/constant"
	gModel "rental/shared/model"
	"rental/shared/timezone"

	"github.com/google/uuid"
)

// RegisterRequest opens a customer account. Staff and admins are created through /users.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

func (r *RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	id := uuid.NewString()

	return userModel.User{
		ID:       id,
		Username: r.Username,
		Email:    userModel.NormalizeEmail(r.Email),
		Password: hashedPassword,
		Role:     constant.RoleCustomer,
		Active:   true,
		Metadata: gModel.NewMetadata(id, timezone.Now()),
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse = LoginResponse

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6,max=72,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password"`
}

// UpdateProfileRequest changes the caller's username and/or email. Omitted fields are kept.
type UpdateProfileRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=30"`
	Email    string `json:"email"    validate:"omitempty,email"`
}

type profileFields struct {
	Username string `db:"username"`
	Email    string `db:"email"`
}

// Changes returns the columns that differ from user, with the email normalized.
func (r *UpdateProfileRequest) Changes(user userModel.User) (username, email string) {
	if r.Username != "" && r.Username != user.Username {
		username = r.Username
	}

	if normalized := userModel.NormalizeEmail(r.Email); normalized != "" && normalized != user.Email {
		email = normalized
	}

	return username, email
}

// ProfileUpdate builds the update set for the changed columns, attributed to actor.
func ProfileUpdate(username, email, actor string) map[string]any {
	return shared.TransformFields(profileFields{Username: username, Email: email}, actor)
}
