package ports

import (
	"context"
	"time"

	"catalog-backend/domain/product"
)

// ProductWriter persists new products.
// This is a port in hexagonal architecture - the application doesn't know about the implementation
type ProductWriter interface {
	// CreateWithStock atomically inserts the product and its stock entry.
	// Both inserts are guarded by key absence; if either key exists neither
	// record is written and a ConflictError is returned. Any other failure is
	// a BackendError.
	CreateWithStock(ctx context.Context, p product.Product, count int) error
}

// ProductReader reads products joined with their stock.
type ProductReader interface {
	// GetProduct returns the product with its stock count, or a NotFoundError.
	GetProduct(ctx context.Context, id string) (product.Product, error)

	// ListProducts returns every product with its stock count.
	ListProducts(ctx context.Context) ([]product.Product, error)
}

// ProductStore is both sides of the catalog tables.
type ProductStore interface {
	ProductWriter
	ProductReader
}

// Notifier announces newly created products to downstream subscribers.
type Notifier interface {
	// NotifyCreated publishes the product with its count as a filterable
	// attribute. Failures are NotifyErrors.
	NotifyCreated(ctx context.Context, p product.Product) error
}

// UploadSigner issues time-limited upload URLs on the object store.
type UploadSigner interface {
	SignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
}

// MetricsRecorder counts operation outcomes.
type MetricsRecorder interface {
	RecordOutcome(ctx context.Context, operation, outcome string)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) RecordOutcome(context.Context, string, string) {}
