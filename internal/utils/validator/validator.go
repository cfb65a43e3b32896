// Package validator wraps go-playground/validator with the struct-tag
// validations declared on pkg/dto, plus custom field validations for
// domain values that a plain tag can't express.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"github.com/chrisharrington/irrigo/pkg/types"
)

var defaultValidator *playground.Validate

// CustomValidator wraps the shared playground.Validate instance with
// scheduler-specific struct validation.
type CustomValidator struct {
	validator *playground.Validate
}

// New creates a CustomValidator, registering the custom validation tags
// used by pkg/dto.
func New() *CustomValidator {
	if defaultValidator == nil {
		defaultValidator = playground.New()
	}

	cv := &CustomValidator{validator: defaultValidator}
	cv.registerCustomValidations()
	return cv
}

func (cv *CustomValidator) registerCustomValidations() {
	_ = cv.validator.RegisterValidation("fraction", validateFraction)
}

// validateFraction is a playground.Func asserting a float64 lies in (0, 1].
func validateFraction(fl playground.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Float64 {
		return false
	}
	value := field.Float()
	return value > 0 && value <= 1
}

// ValidateStruct runs struct-tag validation and flattens the result into a
// single *types.ValidationError, matching the error shape the rest of the
// service expects.
func (cv *CustomValidator) ValidateStruct(s interface{}) error {
	if s == nil {
		return &types.ValidationError{Field: "struct", Message: "nil struct cannot be validated"}
	}

	err := cv.validator.Struct(s)
	if err == nil {
		return nil
	}

	if validationErrors, ok := err.(playground.ValidationErrors); ok {
		messages := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			messages = append(messages, fmt.Sprintf("field '%s' failed on '%s'", e.Namespace(), e.Tag()))
		}
		return &types.ValidationError{
			Field:   "struct",
			Message: strings.Join(messages, "; "),
			Err:     err,
		}
	}

	return err
}

// ValidateZoneBounds checks the agronomic/hydraulic preconditions the
// scheduling kernel requires for totality on the fields a zone request
// carries: root depth, allowable depletion fraction, efficiency, and the
// precipitation-rate-or-area rule from internal/scheduler.validateZone,
// duplicated here so the gateway can reject a bad request before ever
// reaching the kernel and report a field-addressed error instead of a bare
// ErrInvalidZone. Grass Kc, soil AWHC/infiltration, and flow rate are not
// checked here; the kernel's validateZone still rejects those.
func ValidateZoneBounds(rootDepthM, adf, efficiency float64, precipitationRate *float64, areaM2 float64) error {
	switch {
	case rootDepthM <= 0:
		return &types.ValidationError{Field: "rootDepthM", Message: "must be positive"}
	case adf <= 0 || adf > 1:
		return &types.ValidationError{Field: "allowableDepletionFraction", Message: "must be in (0, 1]"}
	case efficiency <= 0 || efficiency > 1:
		return &types.ValidationError{Field: "irrigationEfficiency", Message: "must be in (0, 1]"}
	}

	if precipitationRate != nil {
		if *precipitationRate <= 0 {
			return &types.ValidationError{Field: "precipitationRateMmPerHr", Message: "must be positive when supplied"}
		}
		return nil
	}

	if areaM2 <= 0 {
		return &types.ValidationError{Field: "areaM2", Message: "must be positive when no explicit precipitation rate is supplied"}
	}

	return nil
}
