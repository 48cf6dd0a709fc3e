package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"rental/shared/constant"
	"rental/shared/failure"
	"slices"
	"strconv"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

const bytesPerMegabyte = 1024 * 1024

var validate *val.Validate

func validateMimetypes(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	allowedTypes := strings.Fields(field.Param())

	return slices.Contains(allowedTypes, file.Header.Get(constant.RequestHeaderContentType))
}

func validateMaxFileSize(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(file.Size) <= maxSizeMB*bytesPerMegabyte
}

// layoutValidation accepts strings that parse with the given time layout.
func layoutValidation(layout string) val.Func {
	return func(field val.FieldLevel) bool {
		_, err := time.Parse(layout, field.Field().String())

		return err == nil
	}
}

func jsonTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	rules := map[string]val.Func{
		"mimetypes":   validateMimetypes,
		"maxfilesize": validateMaxFileSize,
		"date":        layoutValidation(constant.DateOnlyFormat),
		"clock":       layoutValidation(constant.TimeOnlyFormat),
	}

	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate decodes a JSON body into data and validates it. Decode and rule
// failures are both reported as bad requests.
func Validate[T any](r io.Reader, data *T) error {
	err := json.NewDecoder(r).Decode(data)
	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)
	if err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)
	if err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
