package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	apperrors "github.com/agbru/txt2pptx/internal/errors"
	"github.com/agbru/txt2pptx/internal/logging"
)

// PutObjectAPI is the subset of the S3 client used by S3Sink.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads decks to a bucket under an optional key prefix.
type S3Sink struct {
	client PutObjectAPI
	bucket string
	prefix string
	logger logging.Logger
}

// NewS3Sink loads the default AWS configuration (environment, shared
// config, instance role) and returns a sink for bucket.
func NewS3Sink(ctx context.Context, bucket, prefix string, logger logging.Logger) (*S3Sink, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, apperrors.WrapError(err, "load AWS config")
	}
	return NewS3SinkWithClient(s3.NewFromConfig(cfg), bucket, prefix, logger), nil
}

// NewS3SinkWithClient returns a sink using an existing client.
func NewS3SinkWithClient(client PutObjectAPI, bucket, prefix string, logger logging.Logger) *S3Sink {
	if logger == nil {
		logger = logging.Nop()
	}
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger,
	}
}

// Key returns the object key for a deck name.
func (s *S3Sink) Key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Store uploads body and returns its s3:// URI. The body is buffered so the
// upload is seekable for request signing and retries.
func (s *S3Sink) Store(ctx context.Context, name string, body io.Reader) (string, error) {
	name, err := SafeName(name)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", apperrors.WrapError(err, "read %s", name)
	}

	key := s.Key(name)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(ContentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", apperrors.WrapError(err, "upload %s to S3", key)
	}

	uri := fmt.Sprintf("s3://%s/%s", s.bucket, key)
	s.logger.Info("deck uploaded",
		logging.String("uri", uri),
		logging.Int("bytes", len(data)),
	)
	return uri, nil
}
