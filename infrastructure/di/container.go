package di

import (
	"context"

	"catalog-backend/application/catalog"
	"catalog-backend/application/ports"
	"catalog-backend/infrastructure/config"
	"catalog-backend/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies. Entry points build it once
// per process and reuse it across invocations.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	LogLevel zap.AtomicLevel

	Store    ports.ProductStore
	Notifier ports.Notifier
	Signer   ports.UploadSigner

	Metrics    ports.MetricsRecorder
	Collector  *observability.Collector
	CloudWatch *observability.CloudWatchRecorder
	Tracer     *observability.TracerProvider

	CreateProduct *catalog.CreateProductHandler
	IngestBatch   *catalog.IngestBatchHandler
	Queries       *catalog.ProductQueryHandler
	ImportFile    *catalog.ImportFileHandler
}

// Flush pushes buffered telemetry. Lambda entry points call it at the end
// of every invocation since the process may be frozen afterwards.
func (c *Container) Flush(ctx context.Context) {
	if c.Config.EnableMetrics {
		if err := c.CloudWatch.Flush(ctx); err != nil {
			c.Logger.Warn("Failed to flush metrics", zap.Error(err))
		}
	}
	if err := c.Tracer.ForceFlush(ctx); err != nil {
		c.Logger.Warn("Failed to flush traces", zap.Error(err))
	}
	_ = c.Logger.Sync()
}

// Shutdown flushes telemetry and stops the tracer provider.
func (c *Container) Shutdown(ctx context.Context) {
	c.Flush(ctx)
	if err := c.Tracer.Shutdown(ctx); err != nil {
		c.Logger.Warn("Failed to shut down tracing", zap.Error(err))
	}
}
