package validator

import (
	"fmt"
	"io"
	"mime/multipart"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"roombooker/shared/constant"
	"roombooker/shared/failure"
)

var (
	validate *val.Validate

	hourMinutePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// registerMimetypeValidation accepts a multipart header or an already sniffed mime type string.
func registerMimetypeValidation(field val.FieldLevel) bool {
	var contentType string

	switch value := field.Field().Interface().(type) {
	case multipart.FileHeader:
		contentType = value.Header.Get(constant.RequestHeaderContentType)
	case string:
		contentType = value
	}

	if contentType == "" {
		return false
	}

	// sniffers may append parameters, e.g. "text/plain; charset=utf-8"
	contentType, _, _ = strings.Cut(contentType, ";")

	return slices.Contains(strings.Fields(field.Param()), strings.TrimSpace(contentType))
}

// registerFileSizeValidation accepts a multipart header or a size in bytes.
func registerFileSizeValidation(field val.FieldLevel) bool {
	var fileSize int64

	switch value := field.Field().Interface().(type) {
	case multipart.FileHeader:
		fileSize = value.Size
	case int:
		fileSize = int64(value)
	case int64:
		fileSize = value
	default:
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return fileSize <= int64(maxSizeMB*constant.BytesInMegabyte)
}

func registerHourMinuteValidation(field val.FieldLevel) bool {
	return hourMinutePattern.MatchString(field.Field().String())
}

func registerISODateValidation(field val.FieldLevel) bool {
	_, err := time.Parse(constant.DateOnly, field.Field().String())

	return err == nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validations := map[string]val.Func{
		"empty": func(fl val.FieldLevel) bool {
			return fl.Field().IsZero()
		},
		"mimetypes":   registerMimetypeValidation,
		"maxfilesize": registerFileSizeValidation,
		"hhmm":        registerHourMinuteValidation,
		"isodate":     registerISODateValidation,
	}

	for tag, fn := range validations {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

// ValidateID rejects path ids that are not UUIDs before they reach a uuid column.
func ValidateID(id, entity string) error {
	if err := validate.Var(id, "required,uuid"); err != nil {
		return failure.BadRequestFromString(entity + " id must be a valid UUID")
	}

	return nil
}
