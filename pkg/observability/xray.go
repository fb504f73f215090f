package observability

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"github.com/aws/aws-xray-sdk-go/xray"
)

// InstrumentAWS records every AWS SDK call made with cfg as an X-Ray
// subsegment of the segment found in the request context.
func InstrumentAWS(cfg *aws.Config) {
	awsv2.AWSV2Instrumentor(&cfg.APIOptions)
}

// AnnotateProduct tags the current X-Ray segment with the product id so
// traces can be searched by it. Without a segment in ctx it does nothing.
func AnnotateProduct(ctx context.Context, productID string) {
	if seg := xray.GetSegment(ctx); seg != nil {
		_ = seg.AddAnnotation("product_id", productID)
	}
}
