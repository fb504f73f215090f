package main

import (
	"context"
	"log"

	"catalog-backend/infrastructure/config"
	"catalog-backend/infrastructure/di"
	"catalog-backend/interfaces/queue/sqs"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.uber.org/zap"
)

var (
	container *di.Container
	handler   *sqs.Handler
)

// init builds the AWS clients once per process; warm invocations reuse them.
func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	handler = sqs.NewHandler(container.IngestBatch)
}

// Handler processes one SQS batch and reports the messages to redeliver.
func Handler(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		container.Logger.Debug("Invocation", zap.String("aws_request_id", lc.AwsRequestID))
	}

	resp, err := handler.Handle(ctx, event)
	container.Flush(ctx)
	return resp, err
}

func main() {
	lambda.Start(Handler)
}
