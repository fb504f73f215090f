package fixtures

import (
	"encoding/json"
	"fmt"
)

// PayloadBuilder helps create raw product payloads with default values
type PayloadBuilder struct {
	fields map[string]any
}

func NewPayloadBuilder() *PayloadBuilder {
	return &PayloadBuilder{
		fields: map[string]any{
			"title":       "Widget",
			"description": "A widget",
			"price":       9.99,
			"count":       5,
		},
	}
}

func (b *PayloadBuilder) WithID(id string) *PayloadBuilder {
	return b.With("id", id)
}

func (b *PayloadBuilder) WithTitle(title string) *PayloadBuilder {
	return b.With("title", title)
}

func (b *PayloadBuilder) WithPrice(price any) *PayloadBuilder {
	return b.With("price", price)
}

func (b *PayloadBuilder) WithCount(count any) *PayloadBuilder {
	return b.With("count", count)
}

// With sets an arbitrary field, including nil.
func (b *PayloadBuilder) With(key string, value any) *PayloadBuilder {
	b.fields[key] = value
	return b
}

// Without removes a field.
func (b *PayloadBuilder) Without(key string) *PayloadBuilder {
	delete(b.fields, key)
	return b
}

// JSON returns the payload encoded as a request body.
func (b *PayloadBuilder) JSON() []byte {
	data, err := json.Marshal(b.fields)
	if err != nil {
		panic(fmt.Sprintf("fixtures: encode payload: %v", err))
	}
	return data
}

// String returns the payload encoded as a queue message body.
func (b *PayloadBuilder) String() string {
	return string(b.JSON())
}
