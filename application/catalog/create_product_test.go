package catalog

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"catalog-backend/domain/product"
	apperrors "catalog-backend/pkg/errors"
	"catalog-backend/tests/fixtures"
	"catalog-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateProductHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := new(mocks.MockProductStore)
	store.On("CreateWithStock", mock.Anything, mock.MatchedBy(func(p product.Product) bool {
		return p.ID != "" && p.Title == "Widget" && p.Price == 9.99 && p.Count == 5
	}), 5).Return(nil)

	handler := NewCreateProductHandler(store, true, nil, zap.NewNop())

	// Act
	resp := handler.Handle(ctx, fixtures.NewPayloadBuilder().JSON())

	// Assert
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body, ok := resp.Body.(CreatedBody)
	require.True(t, ok)
	assert.NotEmpty(t, body.ID)
	assert.Equal(t, MsgCreated, body.Message)
	store.AssertExpectations(t)
}

func TestCreateProductHandler_Handle_KeepsSuppliedID(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockProductStore)
	store.On("CreateWithStock", mock.Anything, mock.MatchedBy(func(p product.Product) bool {
		return p.ID == "p-1"
	}), 5).Return(nil)

	handler := NewCreateProductHandler(store, true, nil, zap.NewNop())
	resp := handler.Handle(ctx, fixtures.NewPayloadBuilder().WithID("p-1").JSON())

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "p-1", resp.Body.(CreatedBody).ID)
	store.AssertExpectations(t)
}

func TestCreateProductHandler_Handle_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    []byte
		message string
	}{
		{"empty body", nil, MsgProductRequired},
		{"malformed json", []byte(`{"title":`), MsgInvalidJSON},
		{"json array", []byte(`[1,2]`), MsgInvalidJSON},
		{"json null", []byte(`null`), MsgInvalidJSON},
		{"missing title", fixtures.NewPayloadBuilder().Without("title").JSON(), product.MsgTitleRequired},
		{"zero price", fixtures.NewPayloadBuilder().WithPrice(0).JSON(), product.MsgPriceNotPositive},
		{"negative count", fixtures.NewPayloadBuilder().WithCount(-1).JSON(), product.MsgCountNegative},
		{"missing count", fixtures.NewPayloadBuilder().Without("count").JSON(), product.MsgCountRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.MockProductStore)
			handler := NewCreateProductHandler(store, true, nil, zap.NewNop())

			resp := handler.Handle(context.Background(), tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, MessageBody{Message: tt.message}, resp.Body)
			store.AssertNotCalled(t, "CreateWithStock", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCreateProductHandler_Handle_OptionalCount(t *testing.T) {
	store := new(mocks.MockProductStore)
	store.On("CreateWithStock", mock.Anything, mock.AnythingOfType("product.Product"), 0).Return(nil)

	handler := NewCreateProductHandler(store, false, nil, zap.NewNop())
	resp := handler.Handle(context.Background(), fixtures.NewPayloadBuilder().Without("count").JSON())

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	store.AssertExpectations(t)
}

func TestCreateProductHandler_Handle_Conflict(t *testing.T) {
	store := new(mocks.MockProductStore)
	store.On("CreateWithStock", mock.Anything, mock.Anything, 5).
		Return(apperrors.NewConflictError("product p-1 already exists", nil))

	handler := NewCreateProductHandler(store, true, nil, zap.NewNop())
	resp := handler.Handle(context.Background(), fixtures.NewPayloadBuilder().WithID("p-1").JSON())

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, MessageBody{Message: MsgConflict}, resp.Body)
}

func TestCreateProductHandler_Handle_BackendFailure(t *testing.T) {
	store := new(mocks.MockProductStore)
	store.On("CreateWithStock", mock.Anything, mock.Anything, 5).
		Return(apperrors.NewBackendError("transact write", errors.New("throttled")))

	metrics := new(mocks.MockMetrics)
	metrics.On("RecordOutcome", mock.Anything, OpCreateProduct, http.StatusText(http.StatusInternalServerError)).Once()

	handler := NewCreateProductHandler(store, true, metrics, zap.NewNop())
	resp := handler.Handle(context.Background(), fixtures.NewPayloadBuilder().JSON())

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, MessageBody{Message: MsgInternal}, resp.Body)
	metrics.AssertExpectations(t)
}
