package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"catalog-backend/domain/product"
	apperrors "catalog-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductStore_CreateAndRead(t *testing.T) {
	ctx := context.Background()
	store := NewProductStore()

	require.NoError(t, store.CreateWithStock(ctx, product.Product{ID: "a", Title: "A", Price: 1, Count: 99}, 3))
	require.NoError(t, store.CreateWithStock(ctx, product.Product{ID: "b", Title: "B", Price: 2}, 0))

	got, err := store.GetProduct(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Count)

	list, err := store.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []product.Product{
		{ID: "a", Title: "A", Price: 1, Count: 3},
		{ID: "b", Title: "B", Price: 2, Count: 0},
	}, list)

	_, err = store.GetProduct(ctx, "c")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProductStore_ConflictWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := NewProductStore()

	// a stock entry alone is enough to block the create
	store.PutStock(product.StockEntry{ProductID: "x", Count: 1})

	err := store.CreateWithStock(ctx, product.Product{ID: "x", Title: "X", Price: 1}, 5)
	assert.True(t, apperrors.IsConflict(err))

	products, stocks := store.Len()
	assert.Equal(t, 0, products)
	assert.Equal(t, 1, stocks)
}

func TestProductStore_ConcurrentCreatesSameID(t *testing.T) {
	ctx := context.Background()
	store := NewProductStore()

	var wins, conflicts atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.CreateWithStock(ctx, product.Product{ID: "same", Title: fmt.Sprint(i), Price: 1}, i)
			switch {
			case err == nil:
				wins.Add(1)
			case apperrors.IsConflict(err):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(19), conflicts.Load())
}

func TestProductStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewProductStore().CreateWithStock(ctx, product.Product{ID: "a"}, 1)
	assert.True(t, apperrors.IsBackend(err))
}
