// Package breaker wraps a notifier with a circuit breaker so a failing
// topic or bus stops being called for a while instead of slowing every
// message of a batch.
package breaker

import (
	"context"
	"errors"
	"time"

	"catalog-backend/application/ports"
	"catalog-backend/domain/product"
	apperrors "catalog-backend/pkg/errors"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Config holds configuration for the circuit breaker
type Config struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultConfig returns a default configuration for the circuit breaker
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// Notifier guards another notifier.
type Notifier struct {
	next ports.Notifier
	cb   *gobreaker.CircuitBreaker
}

// NewNotifier wraps next with a circuit breaker
func NewNotifier(next ports.Notifier, config Config, logger *zap.Logger) *Notifier {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Notifier{next: next, cb: cb}
}

// NotifyCreated forwards to the wrapped notifier unless the breaker is open.
func (n *Notifier) NotifyCreated(ctx context.Context, p product.Product) error {
	_, err := n.cb.Execute(func() (interface{}, error) {
		return nil, n.next.NotifyCreated(ctx, p)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return apperrors.NewNotifyError(n.cb.Name(), err)
	}
	return err
}

// State reports the breaker state.
func (n *Notifier) State() gobreaker.State {
	return n.cb.State()
}
