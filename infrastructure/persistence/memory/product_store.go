// Package memory provides an in-process product store for local runs and
// tests. It honours the same all-or-nothing create semantics as the
// DynamoDB store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"catalog-backend/domain/product"
	apperrors "catalog-backend/pkg/errors"
)

// ProductStore keeps products and stock entries in two maps.
type ProductStore struct {
	mu       sync.RWMutex
	products map[string]product.Product
	stocks   map[string]product.StockEntry
	order    []string
}

// NewProductStore creates an empty store
func NewProductStore() *ProductStore {
	return &ProductStore{
		products: make(map[string]product.Product),
		stocks:   make(map[string]product.StockEntry),
	}
}

// CreateWithStock inserts both records or neither.
func (s *ProductStore) CreateWithStock(ctx context.Context, p product.Product, count int) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewBackendError("create product", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, productExists := s.products[p.ID]
	_, stockExists := s.stocks[p.ID]
	if productExists || stockExists {
		return apperrors.NewConflictError(fmt.Sprintf("product %s already exists", p.ID), nil)
	}

	p.Count = 0
	s.products[p.ID] = p
	s.stocks[p.ID] = product.StockEntry{ProductID: p.ID, Count: count}
	s.order = append(s.order, p.ID)
	return nil
}

// GetProduct returns the product joined with its stock.
func (s *ProductStore) GetProduct(ctx context.Context, id string) (product.Product, error) {
	if err := ctx.Err(); err != nil {
		return product.Product{}, apperrors.NewBackendError("get product", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return product.Product{}, apperrors.NewNotFoundError("product")
	}
	return s.join(p), nil
}

// ListProducts returns every product in insertion order.
func (s *ProductStore) ListProducts(ctx context.Context) ([]product.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewBackendError("list products", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]product.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.join(s.products[id]))
	}
	return out, nil
}

// Len reports the number of products and stock entries.
func (s *ProductStore) Len() (products, stocks int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products), len(s.stocks)
}

func (s *ProductStore) join(p product.Product) product.Product {
	if stock, ok := s.stocks[p.ID]; ok {
		return product.WithStock(p, &stock)
	}
	return product.WithStock(p, nil)
}
