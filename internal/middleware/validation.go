package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "github.com/Yachtguy502/Analyze-Active-Listings/internal/errors"
)

// QueryValidator binds URL query parameters into request structs and
// validates them with struct tags
type QueryValidator struct {
	validator *validator.Validate
}

// NewQueryValidator creates a query validator with the custom tags registered
func NewQueryValidator() *QueryValidator {
	v := validator.New()
	v.RegisterValidation("filename", isValidFilename)

	// report query parameter names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &QueryValidator{validator: v}
}

// Bind copies query parameters into the string fields of dst (a pointer to
// a struct) named by their `query` tag, then validates dst. Failures are
// returned as a 400 APIError listing every offending parameter.
func (q *QueryValidator) Bind(r *http.Request, dst interface{}) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind query: want pointer to struct, got %T", dst)
	}

	values := r.URL.Query()
	elem := rv.Elem()
	typ := elem.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name := strings.SplitN(field.Tag.Get("query"), ",", 2)[0]
		if name == "" || name == "-" || field.Type.Kind() != reflect.String {
			continue
		}
		if v := values.Get(name); v != "" {
			elem.Field(i).SetString(strings.TrimSpace(v))
		}
	}

	return q.ValidateStruct(dst)
}

// ValidateStruct validates a struct and returns validation errors
func (q *QueryValidator) ValidateStruct(v interface{}) error {
	err := q.validator.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apierrors.InvalidRequestWithError(err)
	}

	details := make([]apierrors.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: formatValidationError(fe),
		})
	}
	return apierrors.NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", details)
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "filename":
		return fmt.Sprintf("%s must be a plain file name", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// isValidFilename rejects names that could escape the download directory
func isValidFilename(fl validator.FieldLevel) bool {
	filename := fl.Field().String()
	if filename == "" {
		return false
	}
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		return false
	}
	for _, r := range filename {
		if r < 0x20 || r == '"' {
			return false
		}
	}
	return true
}
