// Package messaging holds the notifier adapters that announce created
// products to downstream subscribers.
package messaging

import (
	"context"

	"catalog-backend/domain/product"

	"go.uber.org/zap"
)

// Discard is a notifier that only logs. It backs NOTIFIER=none.
type Discard struct {
	Logger *zap.Logger
}

func (d Discard) NotifyCreated(_ context.Context, p product.Product) error {
	if d.Logger != nil {
		d.Logger.Debug("Notification discarded", zap.String("product_id", p.ID))
	}
	return nil
}
