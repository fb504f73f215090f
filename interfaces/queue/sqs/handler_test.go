package sqs

import (
	"context"
	"encoding/json"
	"testing"

	"catalog-backend/application/catalog"
	"catalog-backend/domain/product"
	"catalog-backend/infrastructure/persistence/memory"
	"catalog-backend/tests/fixtures"
	"catalog-backend/tests/mocks"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func event(records ...events.SQSMessage) events.SQSEvent {
	return events.SQSEvent{Records: records}
}

func TestHandler_Handle(t *testing.T) {
	store := memory.NewProductStore()
	notifier := new(mocks.MockNotifier)
	notifier.On("NotifyCreated", mock.Anything, mock.Anything).Return(nil)

	// a product already in the table makes the last message conflict
	require.NoError(t, store.CreateWithStock(context.Background(), product.Product{ID: "taken", Title: "Taken", Price: 1}, 1))

	ingest := catalog.NewIngestBatchHandler(store, notifier, nil, zap.NewNop(), catalog.IngestOptions{})
	resp, err := NewHandler(ingest).Handle(context.Background(), event(
		events.SQSMessage{MessageId: "1", Body: fixtures.NewPayloadBuilder().WithID("new").String()},
		events.SQSMessage{MessageId: "2", Body: "not json"},
		events.SQSMessage{MessageId: "3", Body: fixtures.NewPayloadBuilder().WithTitle("").String()},
		events.SQSMessage{MessageId: "4", Body: fixtures.NewPayloadBuilder().WithID("taken").String()},
	))
	require.NoError(t, err)

	assert.Equal(t, []events.SQSBatchItemFailure{
		{ItemIdentifier: "2"},
		{ItemIdentifier: "4"},
	}, resp.BatchItemFailures)
	notifier.AssertNumberOfCalls(t, "NotifyCreated", 1)
}

func TestHandler_Handle_AllAcked(t *testing.T) {
	ingest := catalog.NewIngestBatchHandler(memory.NewProductStore(), new(mocks.MockNotifier), nil, zap.NewNop(), catalog.IngestOptions{})

	resp, err := NewHandler(ingest).Handle(context.Background(), event(
		events.SQSMessage{MessageId: "1", Body: fixtures.NewPayloadBuilder().WithPrice(-1).String()},
	))
	require.NoError(t, err)

	// an empty list, not null, tells Lambda the whole batch succeeded
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"batchItemFailures":[]}`, string(data))
}
