package catalog

import (
	"context"
	"errors"
	"testing"

	"catalog-backend/domain/product"
	apperrors "catalog-backend/pkg/errors"
	"catalog-backend/tests/fixtures"
	"catalog-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func withID(id string) interface{} {
	return mock.MatchedBy(func(p product.Product) bool { return p.ID == id })
}

func TestIngestBatchHandler_Handle_AllSucceed(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := new(mocks.MockProductStore)
	notifier := new(mocks.MockNotifier)

	store.On("CreateWithStock", mock.Anything, withID("a"), 5).Return(nil).Once()
	store.On("CreateWithStock", mock.Anything, withID("b"), 5).Return(nil).Once()
	notifier.On("NotifyCreated", mock.Anything, withID("a")).Return(nil).Once()
	notifier.On("NotifyCreated", mock.Anything, withID("b")).Return(nil).Once()

	handler := NewIngestBatchHandler(store, notifier, nil, zap.NewNop(), IngestOptions{})

	// Act
	failures := handler.Handle(ctx, []Message{
		{ID: "m1", Body: fixtures.NewPayloadBuilder().WithID("a").String()},
		{ID: "m2", Body: fixtures.NewPayloadBuilder().WithID("b").String()},
	})

	// Assert
	assert.NotNil(t, failures)
	assert.Empty(t, failures)
	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestIngestBatchHandler_Handle_MixedBatch(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockProductStore)
	notifier := new(mocks.MockNotifier)

	store.On("CreateWithStock", mock.Anything, withID("ok"), 5).Return(nil).Once()
	store.On("CreateWithStock", mock.Anything, withID("dup"), 5).
		Return(apperrors.NewConflictError("product dup already exists", nil)).Once()
	notifier.On("NotifyCreated", mock.Anything, withID("ok")).Return(nil).Once()

	handler := NewIngestBatchHandler(store, notifier, nil, zap.NewNop(), IngestOptions{})

	failures := handler.Handle(ctx, []Message{
		{ID: "m1", Body: fixtures.NewPayloadBuilder().WithID("ok").String()},
		{ID: "m2", Body: `{"title":`},
		{ID: "m3", Body: fixtures.NewPayloadBuilder().WithID("bad").WithPrice(-3).String()},
		{ID: "m4", Body: fixtures.NewPayloadBuilder().WithID("dup").String()},
	})

	// Unparseable and failed writes are redelivered; invalid data is dropped.
	assert.Equal(t, []string{"m2", "m4"}, failures)
	store.AssertNotCalled(t, "CreateWithStock", mock.Anything, withID("bad"), mock.Anything)
	notifier.AssertNotCalled(t, "NotifyCreated", mock.Anything, withID("dup"))
	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestIngestBatchHandler_Handle_NotifyFailure(t *testing.T) {
	tests := []struct {
		name     string
		opts     IngestOptions
		expected []string
	}{
		{"acked by default", IngestOptions{}, []string{}},
		{"redelivered when configured", IngestOptions{RedeliverOnNotifyFailure: true}, []string{"m1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.MockProductStore)
			notifier := new(mocks.MockNotifier)
			store.On("CreateWithStock", mock.Anything, withID("a"), 5).Return(nil).Once()
			notifier.On("NotifyCreated", mock.Anything, withID("a")).
				Return(apperrors.NewNotifyError("sns", errors.New("unavailable"))).Once()

			handler := NewIngestBatchHandler(store, notifier, nil, zap.NewNop(), tt.opts)
			failures := handler.Handle(context.Background(), []Message{
				{ID: "m1", Body: fixtures.NewPayloadBuilder().WithID("a").String()},
			})

			assert.Equal(t, tt.expected, failures)
			store.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestIngestBatchHandler_Handle_PanicRedeliversOnlyThatMessage(t *testing.T) {
	store := new(mocks.MockProductStore)
	notifier := new(mocks.MockNotifier)
	store.On("CreateWithStock", mock.Anything, withID("boom"), 5).Panic("store exploded").Once()
	store.On("CreateWithStock", mock.Anything, withID("fine"), 5).Return(nil).Once()
	notifier.On("NotifyCreated", mock.Anything, withID("fine")).Return(nil).Once()

	handler := NewIngestBatchHandler(store, notifier, nil, zap.NewNop(), IngestOptions{})
	failures := handler.Handle(context.Background(), []Message{
		{ID: "m1", Body: fixtures.NewPayloadBuilder().WithID("boom").String()},
		{ID: "m2", Body: fixtures.NewPayloadBuilder().WithID("fine").String()},
	})

	assert.Equal(t, []string{"m1"}, failures)
	notifier.AssertExpectations(t)
}

func TestIngestBatchHandler_Handle_ConcurrentKeepsDeliveryOrder(t *testing.T) {
	store := new(mocks.MockProductStore)
	notifier := new(mocks.MockNotifier)
	metrics := new(mocks.MockMetrics)

	batch := make([]Message, 0, 10)
	expected := make([]string, 0, 5)
	for i := 0; i < 10; i++ {
		id := string(rune('a' + i))
		msgID := "m" + id
		batch = append(batch, Message{ID: msgID, Body: fixtures.NewPayloadBuilder().WithID(id).String()})
		if i%2 == 0 {
			store.On("CreateWithStock", mock.Anything, withID(id), 5).
				Return(apperrors.NewBackendError("transact write", errors.New("throttled"))).Once()
			expected = append(expected, msgID)
			continue
		}
		store.On("CreateWithStock", mock.Anything, withID(id), 5).Return(nil).Once()
		notifier.On("NotifyCreated", mock.Anything, withID(id)).Return(nil).Once()
	}
	metrics.On("RecordOutcome", mock.Anything, OpIngestMessage, Redeliver.String()).Times(5)
	metrics.On("RecordOutcome", mock.Anything, OpIngestMessage, Acked.String()).Times(5)

	handler := NewIngestBatchHandler(store, notifier, metrics, zap.NewNop(), IngestOptions{Concurrency: 4})
	failures := handler.Handle(context.Background(), batch)

	assert.Equal(t, expected, failures)
	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestIngestBatchHandler_Handle_EmptyBatch(t *testing.T) {
	handler := NewIngestBatchHandler(new(mocks.MockProductStore), new(mocks.MockNotifier), nil, zap.NewNop(), IngestOptions{})

	failures := handler.Handle(context.Background(), nil)

	assert.NotNil(t, failures)
	assert.Empty(t, failures)
}
