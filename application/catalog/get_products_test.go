package catalog

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"catalog-backend/domain/product"
	apperrors "catalog-backend/pkg/errors"
	"catalog-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestProductQueryHandler_List(t *testing.T) {
	t.Run("returns joined products", func(t *testing.T) {
		store := new(mocks.MockProductStore)
		products := []product.Product{
			{ID: "a", Title: "A", Price: 1, Count: 3},
			{ID: "b", Title: "B", Price: 2, Count: 0},
		}
		store.On("ListProducts", mock.Anything).Return(products, nil)

		resp := NewProductQueryHandler(store, nil, zap.NewNop()).List(context.Background())

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, products, resp.Body)
	})

	t.Run("backend failure", func(t *testing.T) {
		store := new(mocks.MockProductStore)
		store.On("ListProducts", mock.Anything).Return(nil, apperrors.NewBackendError("scan", errors.New("boom")))

		resp := NewProductQueryHandler(store, nil, zap.NewNop()).List(context.Background())

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, MessageBody{Message: MsgInternal}, resp.Body)
	})
}

func TestProductQueryHandler_Get(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		setup  func(*mocks.MockProductStore)
		status int
		body   any
	}{
		{
			name:   "missing id",
			id:     "",
			setup:  func(*mocks.MockProductStore) {},
			status: http.StatusBadRequest,
			body:   MessageBody{Message: MsgProductIDRequired},
		},
		{
			name: "found",
			id:   "a",
			setup: func(s *mocks.MockProductStore) {
				s.On("GetProduct", mock.Anything, "a").Return(product.Product{ID: "a", Title: "A", Price: 1, Count: 2}, nil)
			},
			status: http.StatusOK,
			body:   product.Product{ID: "a", Title: "A", Price: 1, Count: 2},
		},
		{
			name: "not found",
			id:   "missing",
			setup: func(s *mocks.MockProductStore) {
				s.On("GetProduct", mock.Anything, "missing").Return(product.Product{}, apperrors.NewNotFoundError("product"))
			},
			status: http.StatusNotFound,
			body:   MessageBody{Message: MsgProductNotFound},
		},
		{
			name: "backend failure",
			id:   "a",
			setup: func(s *mocks.MockProductStore) {
				s.On("GetProduct", mock.Anything, "a").Return(product.Product{}, apperrors.NewBackendError("get item", errors.New("boom")))
			},
			status: http.StatusInternalServerError,
			body:   MessageBody{Message: MsgInternal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.MockProductStore)
			tt.setup(store)

			resp := NewProductQueryHandler(store, nil, zap.NewNop()).Get(context.Background(), tt.id)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.body, resp.Body)
			store.AssertExpectations(t)
		})
	}
}
