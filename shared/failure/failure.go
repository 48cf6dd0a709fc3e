package failure

import (
	"errors"
	"net/http"
)

// Failure is an error that carries the HTTP status it should be answered with.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Kind names the error categories exposed to API clients.
type Kind string

const (
	KindInvalidInput    Kind = "invalid_input"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindThrottled       Kind = "throttled"
	KindInternal        Kind = "internal"
)

var kinds = map[int]Kind{
	http.StatusBadRequest:      KindInvalidInput,
	http.StatusUnauthorized:    KindUnauthenticated,
	http.StatusForbidden:       KindForbidden,
	http.StatusNotFound:        KindNotFound,
	http.StatusConflict:        KindConflict,
	http.StatusTooManyRequests: KindThrottled,
}

var (
	ForbiddenError          = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
	ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}
)

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

func (e *Failure) Error() string {
	return e.Message
}

// Is matches another Failure with the same code and message, so package level
// sentinels work with errors.Is after wrapping.
func (e *Failure) Is(target error) bool {
	var fail *Failure
	if !errors.As(target, &fail) {
		return false
	}

	return e.Code == fail.Code && e.Message == fail.Message
}

// BadRequest converts err into an invalid input failure. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

func NotFound(entityName string) error {
	return newFailure(http.StatusNotFound, entityName)
}

func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

func TooManyRequests(msg string) error {
	return newFailure(http.StatusTooManyRequests, msg)
}

// InternalError converts err into a 500 failure. A nil err stays nil.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusInternalServerError, err.Error())
}

// GetCode returns the HTTP status of err. Anything that is not a Failure is a 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// KindOf classifies err by its status code.
func KindOf(err error) Kind {
	if kind, ok := kinds[GetCode(err)]; ok {
		return kind
	}

	return KindInternal
}
