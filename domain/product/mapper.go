package product

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"

	apperrors "catalog-backend/pkg/errors"

	"github.com/google/uuid"
)

var (
	errNotObject    = errors.New("body is not a JSON object")
	errTrailingData = errors.New("unexpected data after JSON object")
)

// newID generates identifiers for products submitted without one.
var newID = func() string { return uuid.New().String() }

// Map normalizes a raw input into a Product. It never fails: callers are
// expected to have validated raw first. Fields that cannot be coerced come
// out as zero values.
func Map(raw map[string]any) Product {
	p := Product{
		Title:       textOrEmpty(raw["title"]),
		Description: textOrEmpty(raw["description"]),
	}

	if id, ok := text(raw["id"]); ok {
		p.ID = id
	} else {
		p.ID = newID()
	}

	if price, ok := number(raw["price"]); ok {
		p.Price = price
	}
	if count, ok := number(raw["count"]); ok && count >= 0 && count <= math.MaxInt32 {
		p.Count = int(count)
	}

	return p
}

// Decode parses a JSON object into the raw form the Validator and Map
// operate on. Numbers are kept as json.Number so large or numeric-string
// values survive untouched until coercion. Failures are ParseErrors.
func Decode(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, apperrors.NewParseError("invalid product body", err)
	}
	if raw == nil {
		return nil, apperrors.NewParseError("invalid product body", errNotObject)
	}
	if dec.More() {
		return nil, apperrors.NewParseError("invalid product body", errTrailingData)
	}
	return raw, nil
}

func textOrEmpty(v any) string {
	s, _ := text(v)
	return s
}
