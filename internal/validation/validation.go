// Package validation enforces field rules on products and users before they
// reach storage.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	validation "github.com/jellydator/validation"
)

// Error names the first field that failed and why.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func fieldError(field string, err error) error {
	if err == nil {
		return nil
	}
	var ve validation.Error
	if errors.As(err, &ve) {
		return &Error{Field: field, Reason: ve.Error()}
	}
	return &Error{Field: field, Reason: err.Error()}
}

var (
	required  = validation.Required.Error("is required")
	// Threshold rules skip zero values, so price also needs a non-zero check.
	nonZero   = validation.Required.Error("must be greater than 0")
	positive  = validation.Min(0.0).Exclusive().Error("must be greater than 0")
	nonNegInt = validation.Min(0).Error("must not be negative")
	int32Max  = validation.Max(math.MaxInt32).Error("must not exceed 2147483647")
)

func checkRequired(field, value string) error {
	return fieldError(field, validation.Validate(value, required))
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, &Error{Field: "price", Reason: "must be a number"}
	}
	if err := fieldError("price", validation.Validate(price, nonZero, positive)); err != nil {
		return 0, err
	}
	return price, nil
}

func parseQuantity(raw string) (int, error) {
	quantity, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &Error{Field: "quantity", Reason: "must be an integer"}
	}
	if err := fieldError("quantity", validation.Validate(quantity, nonNegInt, int32Max)); err != nil {
		return 0, err
	}
	return quantity, nil
}

// provided reports whether an optional update field should overwrite.
func provided(value *string) bool {
	return value != nil && *value != "" && *value != "null"
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
