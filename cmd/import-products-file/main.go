package main

import (
	"context"
	"log"

	"catalog-backend/infrastructure/config"
	"catalog-backend/infrastructure/di"
	"catalog-backend/interfaces/http/rest"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
)

// The import service sits behind an API Gateway HTTP API, hence the v2
// payload.
var (
	chiLambda *chiadapter.ChiLambdaV2
	container *di.Container
)

func init() {
	cfg, err := config.Load(config.WithoutNotifier())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	router := rest.NewRouter(nil, nil, container.ImportFile, nil, cfg.AllowedOrigin, container.Logger)
	chiLambda = chiadapter.NewV2(router.SetupImport())
}

// Handler is the Lambda function handler
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	resp, err := chiLambda.ProxyWithContextV2(ctx, req)
	container.Flush(ctx)
	return resp, err
}

func main() {
	lambda.Start(Handler)
}
