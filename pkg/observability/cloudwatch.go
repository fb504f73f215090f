package observability

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// maxDatumsPerCall is the PutMetricData limit on metric data per request.
const maxDatumsPerCall = 1000

// CloudWatchAPI is the subset of the CloudWatch client the recorder uses.
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

type outcomeKey struct {
	operation string
	outcome   string
}

// CloudWatchRecorder aggregates outcomes in memory and publishes them on
// Flush. A Lambda invocation flushes once before returning.
type CloudWatchRecorder struct {
	namespace string
	client    CloudWatchAPI
	logger    *zap.Logger

	mu     sync.Mutex
	counts map[outcomeKey]int
}

// NewCloudWatchRecorder creates a new recorder
func NewCloudWatchRecorder(namespace string, client CloudWatchAPI, logger *zap.Logger) *CloudWatchRecorder {
	return &CloudWatchRecorder{
		namespace: namespace,
		client:    client,
		logger:    logger,
		counts:    make(map[outcomeKey]int),
	}
}

// RecordOutcome counts one operation outcome until the next Flush.
func (r *CloudWatchRecorder) RecordOutcome(_ context.Context, operation, outcome string) {
	r.mu.Lock()
	r.counts[outcomeKey{operation, outcome}]++
	r.mu.Unlock()
}

// Flush publishes and resets the aggregated counts. Publishing failures are
// logged and the counts are dropped.
func (r *CloudWatchRecorder) Flush(ctx context.Context) error {
	r.mu.Lock()
	counts := r.counts
	r.counts = make(map[outcomeKey]int)
	r.mu.Unlock()

	if len(counts) == 0 {
		return nil
	}

	keys := make([]outcomeKey, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].operation != keys[j].operation {
			return keys[i].operation < keys[j].operation
		}
		return keys[i].outcome < keys[j].outcome
	})

	now := time.Now()
	data := make([]types.MetricDatum, 0, len(keys))
	for _, k := range keys {
		data = append(data, types.MetricDatum{
			MetricName: aws.String("OperationOutcome"),
			Dimensions: []types.Dimension{
				{Name: aws.String("Operation"), Value: aws.String(k.operation)},
				{Name: aws.String("Outcome"), Value: aws.String(k.outcome)},
			},
			Value:     aws.Float64(float64(counts[k])),
			Unit:      types.StandardUnitCount,
			Timestamp: aws.Time(now),
		})
	}

	for start := 0; start < len(data); start += maxDatumsPerCall {
		end := min(start+maxDatumsPerCall, len(data))
		_, err := r.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(r.namespace),
			MetricData: data[start:end],
		})
		if err != nil {
			r.logger.Warn("Failed to send metrics", zap.Error(err))
			return err
		}
	}
	return nil
}
