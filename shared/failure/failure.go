package failure

import (
	"errors"
	"net/http"
)

// Failure is an error that maps onto an HTTP status. Handlers send Message to the client as is,
// except for 5xx codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	cause   error
}

var (
	ForbiddenError              = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
	InvalidCredentials          = &Failure{Code: http.StatusUnauthorized, Message: "invalid credentials"}
	CouldNotValidateCredentials = &Failure{Code: http.StatusUnauthorized, Message: "could not validate credentials"}
)

func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the error a Failure was built from, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

func newFailure(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

// wrap keeps err as the cause. A nil err stays nil.
func wrap(code int, err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: code, Message: err.Error(), cause: err}
}

func BadRequest(err error) error {
	return wrap(http.StatusBadRequest, err)
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

func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

func InternalError(err error) error {
	return wrap(http.StatusInternalServerError, err)
}

// GetCode returns the status carried by err. Anything that is not a Failure is a 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetMessage returns the client facing message of the outermost Failure in err's chain, so
// context added with fmt.Errorf stays in logs only.
func GetMessage(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Message
	}

	return err.Error()
}

// Is reports whether err carries a Failure with the given status code.
func Is(err error, code int) bool {
	var fail *Failure

	return errors.As(err, &fail) && fail.Code == code
}
