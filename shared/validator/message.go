package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":         "{field} is required",
		"required_without": "{field} is required when {param} is missing",
		"eq":               "{field} must be {param}",
		"nefield":          "{field} must differ from the current value",
		"gt":               "{field} must be greater than {param}",
		"gte":              "{field} must be greater than or equal to {param}",
		"lte":              "{field} must be less than or equal to {param}",
		"oneof":            "{field} must be one of {param}",
		"max":              "{field} must be less than or equal to {param}",
		"min":              "{field} must be greater than or equal to {param}",
		"len":              "{field} must contain exactly {param} item(s)",
		"email":            "{field} must be a valid email address",
		"url":              "{field} must be a valid url",
		"uuid":             "{field} must be a valid uuid",
		"date":             "{field} must be a date formatted as YYYY-MM-DD",
		"clock":            "{field} must be a time formatted as HH:MM",
		"mimetypes":        "{field} must be one of {param}",
		"maxfilesize":      "{field} must not exceed {param} MB",
	}
)

func message(err error) string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		template := messages[valErr.Tag()]
		if template == "" {
			continue
		}

		return strings.NewReplacer("{field}", valErr.Field(), "{param}", valErr.Param()).Replace(template)
	}

	return valErrors.Error()
}
