package sns

import (
	"context"
	"encoding/json"
	"strconv"

	"catalog-backend/domain/product"
	apperrors "catalog-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.uber.org/zap"
)

// Subject is the subject line of every creation notification.
const Subject = "New Product Created"

// CountAttribute is the numeric message attribute subscribers filter on.
const CountAttribute = "count"

// API is the subset of the SNS client the notifier uses.
type API interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Notifier publishes product creations to an SNS topic.
type Notifier struct {
	client   API
	topicARN string
	logger   *zap.Logger
}

// NewNotifier creates a new SNS notifier
func NewNotifier(client API, topicARN string, logger *zap.Logger) *Notifier {
	return &Notifier{
		client:   client,
		topicARN: topicARN,
		logger:   logger,
	}
}

// NotifyCreated publishes the product as JSON with its count as a Number
// attribute.
func (n *Notifier) NotifyCreated(ctx context.Context, p product.Product) error {
	body, err := json.Marshal(p)
	if err != nil {
		return apperrors.NewNotifyError("sns", err)
	}

	out, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String(Subject),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			CountAttribute: {
				DataType:    aws.String("Number"),
				StringValue: aws.String(strconv.Itoa(p.Count)),
			},
		},
	})
	if err != nil {
		return apperrors.NewNotifyError("sns", err)
	}

	n.logger.Debug("Published product notification",
		zap.String("product_id", p.ID),
		zap.String("message_id", aws.ToString(out.MessageId)),
	)
	return nil
}
