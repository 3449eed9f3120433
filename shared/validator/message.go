package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":         "{field} is required",
		"required_without": "{field} is required when {param} is not supplied",
		"nefield":          "{field} must differ from {param}",
		"gte":              "{field} must be greater than or equal to {param}",
		"gt":               "{field} must be greater than {param}",
		"lte":              "{field} must be less than or equal to {param}",
		"oneof":            "{field} must be one of {param}",
		"max":              "{field} must be less than or equal to {param}",
		"min":              "{field} must be greater than or equal to {param}",
		"email":            "{field} must be a valid email address",
		"uuid":             "{field} must be a valid UUID",
		"datetime":         "{field} must match the format {param}",
		"gtfield":          "{field} must be after {param}",
		"mimetypes":        "{field} must be one of {param}",
		"maxfilesize":      "{field} must not exceed {param} MB",
	}
)

func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			field := valErr.Field()
			param := valErr.Param()

			errStr := messages[valErr.Tag()]
			if errStr != "" {
				errStr = strings.ReplaceAll(errStr, "{field}", field)
				errStr = strings.ReplaceAll(errStr, "{param}", param)

				return errStr
			}
		}

		return valErrors.Error()
	}

	return err.Error()
}
