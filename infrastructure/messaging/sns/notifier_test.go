package sns

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"catalog-backend/domain/product"
	apperrors "catalog-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSNS struct {
	mock.Mock
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sns.PublishOutput), args.Error(1)
}

func TestNotifier_NotifyCreated(t *testing.T) {
	client := new(mockSNS)
	var sent *sns.PublishInput
	client.On("Publish", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*sns.PublishInput) }).
		Return(&sns.PublishOutput{MessageId: aws.String("msg-1")}, nil)

	p := product.Product{ID: "p-1", Title: "Widget", Description: "A widget", Price: 9.99, Count: 5}
	err := NewNotifier(client, "arn:aws:sns:eu-west-1:123:createProductTopic", zap.NewNop()).NotifyCreated(context.Background(), p)
	require.NoError(t, err)

	require.NotNil(t, sent)
	assert.Equal(t, "arn:aws:sns:eu-west-1:123:createProductTopic", aws.ToString(sent.TopicArn))
	assert.Equal(t, "New Product Created", aws.ToString(sent.Subject))
	assert.Equal(t, "Number", aws.ToString(sent.MessageAttributes["count"].DataType))
	assert.Equal(t, "5", aws.ToString(sent.MessageAttributes["count"].StringValue))

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(sent.Message)), &body))
	assert.Equal(t, map[string]any{
		"id": "p-1", "title": "Widget", "description": "A widget", "price": 9.99, "count": float64(5),
	}, body)
}

func TestNotifier_NotifyCreated_Failure(t *testing.T) {
	client := new(mockSNS)
	client.On("Publish", mock.Anything, mock.Anything).Return(nil, errors.New("topic not found"))

	err := NewNotifier(client, "arn", zap.NewNop()).NotifyCreated(context.Background(), product.Product{ID: "p-1"})

	assert.True(t, apperrors.IsNotify(err))
}
