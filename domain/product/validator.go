package product

import (
	"math"

	apperrors "catalog-backend/pkg/errors"
)

// Validation messages, reported by the first failing check.
const (
	MsgTitleRequired       = "Title is required"
	MsgDescriptionRequired = "Description is required"
	MsgPriceRequired       = "Price is required"
	MsgPriceNotPositive    = "Price must be a positive number"
	MsgCountRequired       = "Count is required"
	MsgCountNegative       = "Count must be a non-negative number"
	MsgCountTooLarge       = "Count must not exceed 2147483647"
)

// Verdict is the outcome of validating a candidate product.
type Verdict struct {
	Valid   bool
	Message string
}

// Err returns the failure as a ValidationError, nil when valid.
func (v Verdict) Err() error {
	if v.Valid {
		return nil
	}
	return apperrors.NewValidationError(v.Message)
}

func invalid(msg string) Verdict {
	return Verdict{Message: msg}
}

// Validator checks the shape of a raw candidate product.
//
// Checks run in a fixed order and the first failure is reported: title,
// description, price presence, price > 0, count presence, count >= 0.
// A record missing both title and price fails on title.
type Validator struct {
	// CountOptional skips the count presence check. A count that is present
	// must still be a non-negative whole number.
	CountOptional bool
}

// Validate runs the strict rules, where count is required.
func Validate(raw map[string]any) Verdict {
	return Validator{}.Validate(raw)
}

// Validate checks raw against the product rules.
func (v Validator) Validate(raw map[string]any) Verdict {
	if raw == nil {
		return invalid(MsgTitleRequired)
	}
	if _, ok := textField(raw, "title"); !ok {
		return invalid(MsgTitleRequired)
	}
	if _, ok := textField(raw, "description"); !ok {
		return invalid(MsgDescriptionRequired)
	}

	if !present(raw, "price") {
		return invalid(MsgPriceRequired)
	}
	if price, ok := number(raw["price"]); !ok || price <= 0 {
		return invalid(MsgPriceNotPositive)
	}

	if !present(raw, "count") {
		if v.CountOptional {
			return Verdict{Valid: true}
		}
		return invalid(MsgCountRequired)
	}
	count, ok := number(raw["count"])
	if !ok || count < 0 || count != math.Trunc(count) {
		return invalid(MsgCountNegative)
	}
	if count > math.MaxInt32 {
		return invalid(MsgCountTooLarge)
	}

	return Verdict{Valid: true}
}

func textField(raw map[string]any, key string) (string, bool) {
	if !present(raw, key) {
		return "", false
	}
	return text(raw[key])
}
