// Package catalog holds the product use cases: synchronous creation, batch
// ingestion from the catalog queue, the read paths and the import URL.
//
// Handlers here are transport-agnostic. HTTP-shaped handlers return a
// Response that the REST layer renders; the batch handler returns the
// identifiers of messages that must be redelivered.
package catalog

import (
	"go.opentelemetry.io/otel"
)

// Client-visible messages.
const (
	MsgProductRequired   = "Product is required"
	MsgInvalidJSON       = "Invalid JSON in request body"
	MsgCreated           = "Product and stock created successfully"
	MsgConflict          = "Product creation failed due to conflict. Product might already exist."
	MsgInternal          = "Internal server error"
	MsgProductIDRequired = "Product Id is required"
	MsgProductNotFound   = "Product not found"
	MsgInvalidFileName   = "Invalid or missing file name. Please provide a CSV file name."
	MsgImportURLFailed   = "Error generating import URL"
)

// Operation names used for metrics and spans.
const (
	OpCreateProduct = "CreateProduct"
	OpIngestMessage = "IngestMessage"
	OpGetProduct    = "GetProduct"
	OpListProducts  = "ListProducts"
	OpImportURL     = "ImportProductsFile"
)

var tracer = otel.Tracer("catalog-backend/application/catalog")

// Response is an HTTP-shaped result.
type Response struct {
	StatusCode int
	Body       any
	// Raw, when set, is written verbatim as text/plain instead of Body.
	Raw string
}

// MessageBody is the body of every non-created response.
type MessageBody struct {
	Message string `json:"message"`
}

// CreatedBody is the body of a 201 response.
type CreatedBody struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func message(status int, msg string) Response {
	return Response{StatusCode: status, Body: MessageBody{Message: msg}}
}
