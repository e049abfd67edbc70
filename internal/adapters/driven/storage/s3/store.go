// Package s3 stores rendered reports in an object-storage bucket.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/reachlab/targetreport/internal/core/domain"
	"github.com/reachlab/targetreport/internal/core/ports/driven"
	"github.com/reachlab/targetreport/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ReportStore = (*Store)(nil)

// api is the slice of the S3 client the store uses.
type api interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store uploads report objects to a bucket under a key prefix.
type Store struct {
	client api
	bucket string
	prefix string
}

// NewStore creates a store for the given bucket and key prefix, using
// credentials from the default chain (environment, shared config, IAM role).
func NewStore(ctx context.Context, bucket, prefix, region string) (*Store, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// NewStoreWithClient creates a store with an injected client. Used in tests.
func NewStoreWithClient(client api, bucket, prefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: prefix}
}

// Put uploads one report object. Public objects get a public-read ACL.
func (s *Store) Put(ctx context.Context, obj domain.ReportObject) error {
	key := path.Join(s.prefix, obj.Key)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(obj.Body),
		ContentType: aws.String(obj.ContentType),
	}
	if obj.Public {
		input.ACL = types.ObjectCannedACLPublicRead
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}
	logger.Info("Uploaded s3://%s/%s (%d bytes)", s.bucket, key, len(obj.Body))
	return nil
}

// Location describes the upload destination.
func (s *Store) Location() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.prefix)
}
