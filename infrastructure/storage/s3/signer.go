package s3

import (
	"context"
	"time"

	apperrors "catalog-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignAPI is the subset of the S3 presign client the signer uses.
type PresignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// UploadSigner issues presigned PUT URLs on one bucket.
type UploadSigner struct {
	client PresignAPI
	bucket string
}

// NewUploadSigner creates a new signer for bucket
func NewUploadSigner(client PresignAPI, bucket string) *UploadSigner {
	return &UploadSigner{client: client, bucket: bucket}
}

// SignUpload returns a URL that accepts a PUT of key with the given
// content type until ttl elapses.
func (s *UploadSigner) SignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	req, err := s.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", apperrors.NewBackendError("presign upload", err)
	}
	return req.URL, nil
}
