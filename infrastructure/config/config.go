package config

import (
	"fmt"
	"time"

	"catalog-backend/pkg/utils"
)

// Store drivers.
const (
	StoreDynamoDB = "dynamodb"
	StoreMemory   = "memory"
)

// Notifier backends.
const (
	NotifierSNS         = "sns"
	NotifierEventBridge = "eventbridge"
	NotifierNone        = "none"
)

// Config holds all application configuration. Values come from Defaults,
// then the optional YAML file, then the environment.
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address" env:"SERVER_ADDRESS" validate:"required"`
	Environment   string `yaml:"environment" env:"ENVIRONMENT" validate:"oneof=development test staging production"`

	// AWS configuration
	AWSRegion     string `yaml:"aws_region" env:"AWS_REGION"`
	StoreDriver   string `yaml:"store_driver" env:"STORE_DRIVER" validate:"oneof=dynamodb memory"`
	ProductsTable string `yaml:"products_table" env:"PRODUCTS_TABLE" validate:"required_if=StoreDriver dynamodb"`
	StocksTable   string `yaml:"stocks_table" env:"STOCKS_TABLE" validate:"required_if=StoreDriver dynamodb"`

	// Notification
	Notifier     string `yaml:"notifier" env:"NOTIFIER" validate:"oneof=sns eventbridge none"`
	SNSTopicARN  string `yaml:"sns_topic_arn" env:"SNS_TOPIC_ARN" validate:"required_if=Notifier sns"`
	EventBusName string `yaml:"event_bus_name" env:"EVENT_BUS_NAME" validate:"required_if=Notifier eventbridge"`

	// Import uploads
	UploadBucket string        `yaml:"upload_bucket" env:"UPLOAD_BUCKET"`
	UploadPrefix string        `yaml:"upload_prefix" env:"UPLOAD_PREFIX"`
	PresignTTL   time.Duration `yaml:"presign_ttl" env:"PRESIGN_TTL" validate:"gt=0"`

	// HTTP
	AllowedOrigin string `yaml:"allowed_origin" env:"ALLOWED_ORIGIN" validate:"required"`
	// Create requests per client per minute, 0 disables the limit.
	CreateRateLimit int `yaml:"create_rate_limit" env:"CREATE_RATE_LIMIT" validate:"gte=0"`

	// Ingestion behaviour
	RequireCountOnCreate     bool `yaml:"require_count_on_create" env:"REQUIRE_COUNT_ON_CREATE"`
	RedeliverOnNotifyFailure bool `yaml:"redeliver_on_notify_failure" env:"REDELIVER_ON_NOTIFY_FAILURE"`
	BatchConcurrency         int  `yaml:"batch_concurrency" env:"BATCH_CONCURRENCY" validate:"gte=0,lte=64"`

	// Logging
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	// Observability
	EnableMetrics    bool   `yaml:"enable_metrics" env:"ENABLE_METRICS"`
	MetricsNamespace string `yaml:"metrics_namespace" env:"METRICS_NAMESPACE" validate:"required"`
	EnableTracing    bool   `yaml:"enable_tracing" env:"ENABLE_TRACING"`
	OTLPEndpoint     string `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT" validate:"required_if=EnableTracing true"`
	EnableXRay       bool   `yaml:"enable_xray" env:"ENABLE_XRAY"`

	// Notifier circuit breaker
	BreakerEnabled      bool          `yaml:"breaker_enabled" env:"BREAKER_ENABLED"`
	BreakerMinRequests  uint32        `yaml:"breaker_min_requests" env:"BREAKER_MIN_REQUESTS" validate:"gt=0"`
	BreakerFailureRatio float64       `yaml:"breaker_failure_ratio" env:"BREAKER_FAILURE_RATIO" validate:"gt=0,lte=1"`
	BreakerTimeout      time.Duration `yaml:"breaker_timeout" env:"BREAKER_TIMEOUT" validate:"gt=0"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() *Config {
	return &Config{
		ServerAddress:        ":8080",
		Environment:          "development",
		AWSRegion:            "eu-west-1",
		StoreDriver:          StoreDynamoDB,
		ProductsTable:        "products",
		StocksTable:          "stocks",
		Notifier:             NotifierSNS,
		UploadPrefix:         "uploaded/",
		PresignTTL:           15 * time.Minute,
		AllowedOrigin:        "*",
		RequireCountOnCreate: true,
		LogLevel:             "info",
		MetricsNamespace:     "Catalog",
		BreakerMinRequests:   5,
		BreakerFailureRatio:  0.8,
		BreakerTimeout:       60 * time.Second,
	}
}

// Validate checks the configuration as a whole
func (c *Config) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
