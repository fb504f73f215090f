package breaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalog-backend/domain/product"
	apperrors "catalog-backend/pkg/errors"
	"catalog-backend/tests/mocks"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestNotifier_OpensAfterFailures(t *testing.T) {
	ctx := context.Background()
	next := new(mocks.MockNotifier)
	next.On("NotifyCreated", mock.Anything, mock.Anything).
		Return(apperrors.NewNotifyError("sns", errors.New("down"))).Times(3)

	cfg := DefaultConfig("notify")
	cfg.MinRequests = 3
	cfg.FailureThreshold = 1
	cfg.Timeout = time.Hour
	n := NewNotifier(next, cfg, zap.NewNop())

	for i := 0; i < 3; i++ {
		err := n.NotifyCreated(ctx, product.Product{ID: "p"})
		assert.True(t, apperrors.IsNotify(err))
	}
	assert.Equal(t, gobreaker.StateOpen, n.State())

	// rejected without reaching the wrapped notifier
	err := n.NotifyCreated(ctx, product.Product{ID: "p"})
	assert.True(t, apperrors.IsNotify(err))
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	next.AssertNumberOfCalls(t, "NotifyCreated", 3)
}

func TestNotifier_PassesThrough(t *testing.T) {
	next := new(mocks.MockNotifier)
	next.On("NotifyCreated", mock.Anything, product.Product{ID: "p"}).Return(nil).Once()

	n := NewNotifier(next, DefaultConfig("notify"), zap.NewNop())

	assert.NoError(t, n.NotifyCreated(context.Background(), product.Product{ID: "p"}))
	assert.Equal(t, gobreaker.StateClosed, n.State())
	next.AssertExpectations(t)
}
