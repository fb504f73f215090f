package di

import (
	"context"
	"fmt"

	"catalog-backend/application/catalog"
	"catalog-backend/application/ports"
	"catalog-backend/infrastructure/config"
	"catalog-backend/infrastructure/messaging"
	"catalog-backend/infrastructure/messaging/breaker"
	"catalog-backend/infrastructure/messaging/eventbridge"
	"catalog-backend/infrastructure/messaging/sns"
	"catalog-backend/infrastructure/persistence/dynamodb"
	"catalog-backend/infrastructure/persistence/memory"
	"catalog-backend/infrastructure/storage/s3"
	"catalog-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "catalog-backend"

// ProvideLogLevel parses the configured level into an adjustable level
func ProvideLogLevel(cfg *config.Config) (zap.AtomicLevel, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid log level: %w", err)
	}
	return zap.NewAtomicLevelAt(level), nil
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = level

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(
		zap.String("service", serviceName),
		zap.String("environment", cfg.Environment),
	), nil
}

// ProvideAWSConfig creates AWS configuration, instrumented for X-Ray when
// enabled
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.EnableXRay {
		observability.InstrumentAWS(&awsCfg)
	}
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideSNSClient creates an SNS client
func ProvideSNSClient(awsCfg aws.Config) *awssns.Client {
	return awssns.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideS3PresignClient creates an S3 presign client
func ProvideS3PresignClient(awsCfg aws.Config) *awss3.PresignClient {
	return awss3.NewPresignClient(awss3.NewFromConfig(awsCfg))
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideProductStore selects the product store driver
func ProvideProductStore(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) ports.ProductStore {
	if cfg.StoreDriver == config.StoreMemory {
		logger.Warn("Using in-memory product store")
		return memory.NewProductStore()
	}
	return dynamodb.NewProductStore(client, dynamodb.Tables{
		Products: cfg.ProductsTable,
		Stocks:   cfg.StocksTable,
	}, logger.Named("dynamodb"))
}

// ProvideNotifier selects the notification backend, optionally behind a
// circuit breaker
func ProvideNotifier(
	cfg *config.Config,
	snsClient *awssns.Client,
	ebClient *awseventbridge.Client,
	logger *zap.Logger,
) ports.Notifier {
	var notifier ports.Notifier
	switch cfg.Notifier {
	case config.NotifierEventBridge:
		notifier = eventbridge.NewNotifier(ebClient, cfg.EventBusName, logger.Named("eventbridge"))
	case config.NotifierNone:
		return messaging.Discard{Logger: logger}
	default:
		notifier = sns.NewNotifier(snsClient, cfg.SNSTopicARN, logger.Named("sns"))
	}

	if !cfg.BreakerEnabled {
		return notifier
	}
	bc := breaker.DefaultConfig("notifier-" + cfg.Notifier)
	bc.MinRequests = cfg.BreakerMinRequests
	bc.FailureThreshold = cfg.BreakerFailureRatio
	bc.Timeout = cfg.BreakerTimeout
	return breaker.NewNotifier(notifier, bc, logger)
}

// ProvideUploadSigner creates the import URL signer
func ProvideUploadSigner(cfg *config.Config, client *awss3.PresignClient) ports.UploadSigner {
	return s3.NewUploadSigner(client, cfg.UploadBucket)
}

// ProvideCollector creates the Prometheus collector
func ProvideCollector() *observability.Collector {
	return observability.NewCollector("catalog")
}

// ProvideCloudWatchRecorder creates the CloudWatch outcome recorder
func ProvideCloudWatchRecorder(cfg *config.Config, client *awscloudwatch.Client, logger *zap.Logger) *observability.CloudWatchRecorder {
	return observability.NewCloudWatchRecorder(cfg.MetricsNamespace, client, logger.Named("metrics"))
}

// ProvideMetrics fans outcomes out to every enabled backend
func ProvideMetrics(
	cfg *config.Config,
	collector *observability.Collector,
	cw *observability.CloudWatchRecorder,
) ports.MetricsRecorder {
	if !cfg.EnableMetrics {
		return ports.NopMetrics{}
	}
	return observability.MultiRecorder{collector, cw}
}

// ProvideTracerProvider installs OTLP tracing when enabled. The result is
// nil otherwise.
func ProvideTracerProvider(ctx context.Context, cfg *config.Config) (*observability.TracerProvider, error) {
	if !cfg.EnableTracing {
		return nil, nil
	}
	return observability.InitTracing(ctx, serviceName, cfg.Environment, cfg.OTLPEndpoint)
}

// ProvideCreateProductHandler creates the synchronous create handler
func ProvideCreateProductHandler(
	cfg *config.Config,
	store ports.ProductStore,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) *catalog.CreateProductHandler {
	return catalog.NewCreateProductHandler(store, cfg.RequireCountOnCreate, metrics, logger)
}

// ProvideIngestBatchHandler creates the queue batch handler
func ProvideIngestBatchHandler(
	cfg *config.Config,
	store ports.ProductStore,
	notifier ports.Notifier,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) *catalog.IngestBatchHandler {
	return catalog.NewIngestBatchHandler(store, notifier, metrics, logger, catalog.IngestOptions{
		RedeliverOnNotifyFailure: cfg.RedeliverOnNotifyFailure,
		Concurrency:              cfg.BatchConcurrency,
	})
}

// ProvideProductQueryHandler creates the read handler
func ProvideProductQueryHandler(store ports.ProductStore, metrics ports.MetricsRecorder, logger *zap.Logger) *catalog.ProductQueryHandler {
	return catalog.NewProductQueryHandler(store, metrics, logger)
}

// ProvideImportFileHandler creates the import URL handler
func ProvideImportFileHandler(cfg *config.Config, signer ports.UploadSigner, logger *zap.Logger) *catalog.ImportFileHandler {
	return catalog.NewImportFileHandler(signer, cfg.UploadPrefix, cfg.PresignTTL, logger)
}
