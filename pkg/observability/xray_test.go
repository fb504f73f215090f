package observability

import (
	"context"
	"testing"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/stretchr/testify/assert"
)

func TestAnnotateProduct(t *testing.T) {
	ctx, seg := xray.BeginSegment(context.Background(), "catalog-test")

	AnnotateProduct(ctx, "p-1")

	assert.Equal(t, "p-1", seg.Annotations["product_id"])
}

func TestAnnotateProduct_NoSegment(t *testing.T) {
	assert.NotPanics(t, func() { AnnotateProduct(context.Background(), "p-1") })
}
