package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"catalog-backend/domain/product"
	apperrors "catalog-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

const (
	// Source identifies catalog events on the bus.
	Source = "catalog.products"
	// DetailType of a creation event.
	DetailType = "ProductCreated"
)

// API is the subset of the EventBridge client the notifier uses.
type API interface {
	PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error)
}

// createdDetail is the event detail. Count is repeated as a string next to
// the product so rules can match it the way SNS filter policies match the
// message attribute.
type createdDetail struct {
	Product product.Product `json:"product"`
	Count   string          `json:"count"`
}

// Notifier publishes product creations to an EventBridge bus.
type Notifier struct {
	client       API
	eventBusName string
	now          func() time.Time
	logger       *zap.Logger
}

// NewNotifier creates a new EventBridge notifier
func NewNotifier(client API, eventBusName string, logger *zap.Logger) *Notifier {
	return &Notifier{
		client:       client,
		eventBusName: eventBusName,
		now:          time.Now,
		logger:       logger,
	}
}

// NotifyCreated sends one ProductCreated event.
func (n *Notifier) NotifyCreated(ctx context.Context, p product.Product) error {
	detail, err := json.Marshal(createdDetail{Product: p, Count: strconv.Itoa(p.Count)})
	if err != nil {
		return apperrors.NewNotifyError("eventbridge", err)
	}

	result, err := n.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{{
			EventBusName: aws.String(n.eventBusName),
			Source:       aws.String(Source),
			DetailType:   aws.String(DetailType),
			Detail:       aws.String(string(detail)),
			Time:         aws.Time(n.now()),
			Resources:    []string{fmt.Sprintf("catalog:product/%s", p.ID)},
		}},
	})
	if err != nil {
		return apperrors.NewNotifyError("eventbridge", err)
	}

	if result.FailedEntryCount > 0 {
		for _, entry := range result.Entries {
			if entry.ErrorCode != nil {
				n.logger.Error("Failed to publish event",
					zap.String("product_id", p.ID),
					zap.String("errorCode", aws.ToString(entry.ErrorCode)),
					zap.String("errorMessage", aws.ToString(entry.ErrorMessage)),
				)
			}
		}
		return apperrors.NewNotifyError("eventbridge",
			fmt.Errorf("%d events failed to publish", result.FailedEntryCount))
	}

	n.logger.Debug("Event published to EventBridge",
		zap.String("product_id", p.ID),
		zap.String("eventBus", n.eventBusName),
	)
	return nil
}
