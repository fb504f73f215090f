package catalog

import (
	"context"
	"fmt"

	"catalog-backend/application/ports"
	"catalog-backend/domain/product"
	apperrors "catalog-backend/pkg/errors"
	"catalog-backend/pkg/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Message is one delivered queue message.
type Message struct {
	ID   string
	Body string
}

// Outcome is what should happen to a message once processing ends.
type Outcome int

const (
	// Acked messages are removed from the queue. This includes messages that
	// were permanently invalid.
	Acked Outcome = iota
	// Redeliver messages are presented again by the queue.
	Redeliver
)

func (o Outcome) String() string {
	if o == Redeliver {
		return "redeliver"
	}
	return "acked"
}

// IngestOptions tune the batch handler.
type IngestOptions struct {
	// RedeliverOnNotifyFailure turns a failed notification into a redelivery.
	// Off by default: the committed write is the source of truth and the
	// notification is best effort. A redelivered message will then conflict
	// on the write and keep failing until it reaches the dead-letter queue.
	RedeliverOnNotifyFailure bool

	// Concurrency is the number of messages processed at once. Values below
	// two process the batch sequentially in delivery order.
	Concurrency int
}

// IngestBatchHandler ingests products delivered in queue batches.
type IngestBatchHandler struct {
	writer   ports.ProductWriter
	notifier ports.Notifier
	metrics  ports.MetricsRecorder
	logger   *zap.Logger
	opts     IngestOptions
}

// NewIngestBatchHandler creates a new batch ingestion handler
func NewIngestBatchHandler(
	writer ports.ProductWriter,
	notifier ports.Notifier,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
	opts IngestOptions,
) *IngestBatchHandler {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &IngestBatchHandler{
		writer:   writer,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
		opts:     opts,
	}
}

// Handle processes every message of the batch independently and returns the
// identifiers of the messages that must be redelivered, in delivery order.
// An empty result means the whole batch is handled.
func (h *IngestBatchHandler) Handle(ctx context.Context, batch []Message) []string {
	h.logger.Info("Received catalog batch", zap.Int("messages", len(batch)))

	outcomes := make([]Outcome, len(batch))

	if h.opts.Concurrency < 2 {
		for i, msg := range batch {
			outcomes[i] = h.process(ctx, msg)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(h.opts.Concurrency)
		for i, msg := range batch {
			g.Go(func() error {
				outcomes[i] = h.process(ctx, msg)
				return nil
			})
		}
		_ = g.Wait()
	}

	failures := make([]string, 0)
	for i, outcome := range outcomes {
		if outcome == Redeliver {
			failures = append(failures, batch[i].ID)
		}
	}

	h.logger.Info("Catalog batch processed",
		zap.Int("messages", len(batch)),
		zap.Strings("batch_item_failures", failures),
	)
	return failures
}

// process never lets a single message take down the batch: a panic is
// converted into a redelivery of that message.
func (h *IngestBatchHandler) process(ctx context.Context, msg Message) (outcome Outcome) {
	ctx, span := tracer.Start(ctx, OpIngestMessage)
	span.SetAttributes(attribute.String("messaging.message.id", msg.ID))
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Panic while processing message",
				zap.String("message_id", msg.ID),
				zap.Any("panic", r),
			)
			span.RecordError(fmt.Errorf("panic: %v", r))
			outcome = Redeliver
		}
		if outcome == Redeliver {
			span.SetStatus(codes.Error, "message will be redelivered")
		}
		span.SetAttributes(attribute.String("catalog.outcome", outcome.String()))
		span.End()
		h.metrics.RecordOutcome(ctx, OpIngestMessage, outcome.String())
	}()

	return h.processMessage(ctx, msg)
}

func (h *IngestBatchHandler) processMessage(ctx context.Context, msg Message) Outcome {
	raw, err := product.Decode([]byte(msg.Body))
	if err != nil {
		h.logger.Error("Error processing record",
			zap.String("message_id", msg.ID),
			zap.Error(err),
		)
		return Redeliver
	}

	if err := product.Validate(raw).Err(); err != nil {
		h.logger.Info("Invalid product data",
			zap.String("message_id", msg.ID),
			zap.Error(err),
		)
		return Acked
	}

	p := product.Map(raw)
	observability.AnnotateProduct(ctx, p.ID)

	if err := h.writer.CreateWithStock(ctx, p, p.Count); err != nil {
		h.logger.Error("Failed to write product",
			zap.String("message_id", msg.ID),
			zap.String("product_id", p.ID),
			zap.String("code", apperrors.ErrorCode(err)),
			zap.Error(err),
		)
		return Redeliver
	}
	h.logger.Info("Successfully processed product",
		zap.String("message_id", msg.ID),
		zap.String("product_id", p.ID),
	)

	if err := h.notifier.NotifyCreated(ctx, p); err != nil {
		h.logger.Error("Failed to notify product creation",
			zap.String("message_id", msg.ID),
			zap.String("product_id", p.ID),
			zap.Bool("redeliver", h.opts.RedeliverOnNotifyFailure),
			zap.Error(err),
		)
		if h.opts.RedeliverOnNotifyFailure {
			return Redeliver
		}
		return Acked
	}

	h.logger.Info("Notification sent for product", zap.String("product_id", p.ID))
	return Acked
}
