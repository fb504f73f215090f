package catalog

import (
	"context"
	"net/http"

	"catalog-backend/application/ports"
	"catalog-backend/domain/product"
	apperrors "catalog-backend/pkg/errors"
	"catalog-backend/pkg/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// CreateProductHandler creates a single externally submitted product.
//
// The flow is linear with no internal retries:
// received -> body-parsed -> validated -> mapped -> written -> responded.
// Notification is reserved for the ingestion path and never happens here.
type CreateProductHandler struct {
	writer    ports.ProductWriter
	validator product.Validator
	metrics   ports.MetricsRecorder
	logger    *zap.Logger
}

// NewCreateProductHandler creates a new create handler. When requireCount is
// false a missing count is stored as zero stock.
func NewCreateProductHandler(
	writer ports.ProductWriter,
	requireCount bool,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) *CreateProductHandler {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &CreateProductHandler{
		writer:    writer,
		validator: product.Validator{CountOptional: !requireCount},
		metrics:   metrics,
		logger:    logger,
	}
}

// Handle runs the create flow for one request body.
func (h *CreateProductHandler) Handle(ctx context.Context, body []byte) Response {
	ctx, span := tracer.Start(ctx, OpCreateProduct)
	defer span.End()

	resp := h.handle(ctx, body)

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, "create product failed")
	}
	h.metrics.RecordOutcome(ctx, OpCreateProduct, http.StatusText(resp.StatusCode))
	return resp
}

func (h *CreateProductHandler) handle(ctx context.Context, body []byte) Response {
	if len(body) == 0 {
		return message(http.StatusBadRequest, MsgProductRequired)
	}

	raw, err := product.Decode(body)
	if err != nil {
		h.logger.Info("Rejected unparseable product body", zap.Error(err))
		return message(apperrors.HTTPStatus(err), MsgInvalidJSON)
	}

	if verdict := h.validator.Validate(raw); !verdict.Valid {
		err := verdict.Err()
		h.logger.Info("Rejected invalid product", zap.Error(err))
		return message(apperrors.HTTPStatus(err), verdict.Message)
	}

	p := product.Map(raw)
	observability.AnnotateProduct(ctx, p.ID)

	if err := h.writer.CreateWithStock(ctx, p, p.Count); err != nil {
		if apperrors.IsConflict(err) {
			h.logger.Warn("Product already exists",
				zap.String("product_id", p.ID),
				zap.Error(err),
			)
			return message(apperrors.HTTPStatus(err), MsgConflict)
		}

		h.logger.Error("Failed to create product",
			zap.String("product_id", p.ID),
			zap.String("code", apperrors.ErrorCode(err)),
			zap.Error(err),
		)
		return message(http.StatusInternalServerError, MsgInternal)
	}

	h.logger.Info("Product created",
		zap.String("product_id", p.ID),
		zap.Int("count", p.Count),
	)
	return Response{
		StatusCode: http.StatusCreated,
		Body:       CreatedBody{ID: p.ID, Message: MsgCreated},
	}
}
