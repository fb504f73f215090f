// Package sqs adapts Lambda SQS events to the batch ingestion use case.
package sqs

import (
	"context"

	"catalog-backend/application/catalog"

	"github.com/aws/aws-lambda-go/events"
)

// BatchHandler is the use case the adapter drives.
type BatchHandler interface {
	Handle(ctx context.Context, batch []catalog.Message) []string
}

// Handler converts an SQS event into a batch and reports partial failures.
type Handler struct {
	batch BatchHandler
}

// NewHandler creates a new SQS handler
func NewHandler(batch BatchHandler) *Handler {
	return &Handler{batch: batch}
}

// Handle processes the event. It never returns an error: every failure is
// reported per message so the rest of the batch is deleted from the queue.
func (h *Handler) Handle(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	batch := make([]catalog.Message, 0, len(event.Records))
	for _, record := range event.Records {
		batch = append(batch, catalog.Message{ID: record.MessageId, Body: record.Body})
	}

	failed := h.batch.Handle(ctx, batch)

	resp := events.SQSEventResponse{
		BatchItemFailures: make([]events.SQSBatchItemFailure, 0, len(failed)),
	}
	for _, id := range failed {
		resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: id})
	}
	return resp, nil
}
