package model

import (
	"rental/shared/failure"
	"rental/shared/model"
	"strings"
	"time"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldActive    = "active"
	FieldLastLogin = "last_login"
)

var (
	ErrUserNotFound    = failure.NotFound("user not found")
	ErrEmailTaken      = failure.Conflict("email already registered")
	ErrUsernameTaken   = failure.Conflict("username already taken")
	ErrAccountExists   = failure.Conflict("email or username already registered")
	ErrInvalidLogin    = failure.Unauthorized("invalid email or password")
	ErrUserDeactivated = failure.Forbidden("user account is deactivated")
)

type User struct {
	ID        string     `db:"id"`
	Username  string     `db:"username"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	Role      string     `db:"role"`
	Active    bool       `db:"active"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}

func (u User) Exists() bool {
	return u.ID != ""
}

// NormalizeEmail lowercases and trims an email before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
