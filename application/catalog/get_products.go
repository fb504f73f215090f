package catalog

import (
	"context"
	"net/http"

	"catalog-backend/application/ports"
	apperrors "catalog-backend/pkg/errors"

	"go.uber.org/zap"
)

// ProductQueryHandler serves the read side of the catalog.
type ProductQueryHandler struct {
	reader  ports.ProductReader
	metrics ports.MetricsRecorder
	logger  *zap.Logger
}

// NewProductQueryHandler creates a new query handler
func NewProductQueryHandler(reader ports.ProductReader, metrics ports.MetricsRecorder, logger *zap.Logger) *ProductQueryHandler {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &ProductQueryHandler{reader: reader, metrics: metrics, logger: logger}
}

// List returns every product joined with its stock count.
func (h *ProductQueryHandler) List(ctx context.Context) Response {
	ctx, span := tracer.Start(ctx, OpListProducts)
	defer span.End()

	products, err := h.reader.ListProducts(ctx)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		h.metrics.RecordOutcome(ctx, OpListProducts, "error")
		span.RecordError(err)
		return message(http.StatusInternalServerError, MsgInternal)
	}

	h.metrics.RecordOutcome(ctx, OpListProducts, "ok")
	return Response{StatusCode: http.StatusOK, Body: products}
}

// Get returns one product joined with its stock count.
func (h *ProductQueryHandler) Get(ctx context.Context, id string) Response {
	ctx, span := tracer.Start(ctx, OpGetProduct)
	defer span.End()

	if id == "" {
		return message(http.StatusBadRequest, MsgProductIDRequired)
	}

	p, err := h.reader.GetProduct(ctx, id)
	switch {
	case apperrors.IsNotFound(err):
		h.metrics.RecordOutcome(ctx, OpGetProduct, "not_found")
		return message(http.StatusNotFound, MsgProductNotFound)
	case err != nil:
		h.logger.Error("Failed to get product", zap.String("product_id", id), zap.Error(err))
		h.metrics.RecordOutcome(ctx, OpGetProduct, "error")
		span.RecordError(err)
		return message(http.StatusInternalServerError, MsgInternal)
	}

	h.metrics.RecordOutcome(ctx, OpGetProduct, "ok")
	return Response{StatusCode: http.StatusOK, Body: p}
}
