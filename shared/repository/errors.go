package repository

import (
	"errors"
	"fmt"

	"workforce/shared/constant"
	"workforce/shared/failure"

	"github.com/lib/pq"
)

// MapError turns constraint violations raised by inserts and updates into client failures.
// Any other error is returned unchanged.
func MapError(err error, entity string) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case constant.PqErrorCodeUniqueViolation:
		return failure.Conflict(fmt.Sprintf("%s already exists", entity))
	case constant.PqErrorCodeFkViolation:
		return failure.NotFound("referenced resource not found")
	case constant.PqErrorCodeCheckViolation:
		return failure.BadRequestFromString(fmt.Sprintf("%s violates constraint %s", entity, pqErr.Constraint))
	default:
		return err
	}
}

// MapDeleteError reports a row that is still referenced elsewhere as a conflict.
func MapDeleteError(err error, entity string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeFkViolation {
		return failure.Conflict(fmt.Sprintf("%s is still referenced", entity))
	}

	return err
}
