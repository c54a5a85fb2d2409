// Package validation hardens request and table input before it reaches the scoring engine.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"airbus_twin/internal/geo"
	"airbus_twin/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// GetValidator returns the shared validator instance
func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()

		// Report JSON field names rather than Go field names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		registerCustomValidations(validate)
	})

	return validate
}

func registerCustomValidations(v *validator.Validate) {
	mustRegister(v, "finite", validateFinite)

	v.RegisterStructValidation(validatePosition, models.Position{})
	v.RegisterStructValidation(validateCandidatePosition, models.DiversionCandidate{})
}

// mustRegister panics if tag cannot be registered
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: failed to register %q: %v", tag, err))
	}
}

// validateFinite rejects NaN and infinities, which would otherwise pass
// every comparison silently
func validateFinite(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return true
}

func validatePosition(sl validator.StructLevel) {
	p := sl.Current().Interface().(models.Position)
	reportCoordinates(sl, geo.Point{Lat: p.Lat, Lon: p.Lon})
}

func validateCandidatePosition(sl validator.StructLevel) {
	c := sl.Current().Interface().(models.DiversionCandidate)
	reportCoordinates(sl, geo.Point{Lat: c.Lat, Lon: c.Lon})
}

// reportCoordinates flags whichever coordinate puts pt off the globe
func reportCoordinates(sl validator.StructLevel, pt geo.Point) {
	if pt.IsValid() {
		return
	}
	if !geo.ValidLatitude(pt.Lat) {
		sl.ReportError(pt.Lat, "lat", "Lat", "latitude", "")
	}
	if !geo.ValidLongitude(pt.Lon) {
		sl.ReportError(pt.Lon, "lon", "Lon", "longitude", "")
	}
}

// ValidationError is a single failed field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a collection of failed fields
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	var sb strings.Builder
	for i, e := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.Field)
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	return sb.String()
}

// Struct validates s and returns ValidationErrors on failure
func Struct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   strings.TrimPrefix(fe.Namespace(), topLevel(fe)),
			Message: message(fe),
		})
	}
	return out
}

// topLevel returns the struct-name prefix validator puts in front of every namespace
func topLevel(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[:i+1]
	}
	return ""
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "finite":
		return "must be a finite number"
	case "latitude":
		return "must be a valid latitude (-90 to 90)"
	case "longitude":
		return "must be a valid longitude (-180 to 180)"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "min":
		return "must contain at least " + fe.Param() + " item(s)"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

// IsValidationError reports whether err came from Struct
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}
