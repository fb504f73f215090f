//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"catalog-backend/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogLevel,
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideSNSClient,
	ProvideEventBridgeClient,
	ProvideS3PresignClient,
	ProvideCloudWatchClient,
	ProvideProductStore,
	ProvideNotifier,
	ProvideUploadSigner,
	ProvideCollector,
	ProvideCloudWatchRecorder,
	ProvideMetrics,
	ProvideTracerProvider,
	ProvideCreateProductHandler,
	ProvideIngestBatchHandler,
	ProvideProductQueryHandler,
	ProvideImportFileHandler,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
