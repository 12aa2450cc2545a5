// internal/app/system/blobstore/s3.go
package blobstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 stores blobs in a single S3-compatible bucket. Keys map to object
// keys directly under an optional prefix.
type S3 struct {
	client *s3.Client
	bucket string
	prefix string
	region string
}

// S3Config holds explicit construction parameters.
type S3Config struct {
	Region   string
	Bucket   string
	Prefix   string
	Endpoint string // optional; set for MinIO-style deployments
}

// NewS3 creates an S3 blob store, using the default credentials chain.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		region: region,
	}, nil
}

func (s *S3) objectKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}

func (s *S3) Put(ctx context.Context, key string, r io.Reader, opts *PutOptions) error {
	k := s.objectKey(key)
	input := &s3.PutObjectInput{Bucket: &s.bucket, Key: &k, Body: r}
	if opts != nil && opts.ContentType != "" {
		input.ContentType = &opts.ContentType
	}
	_, err := s.client.PutObject(ctx, input)
	return err
}

func (s *S3) Delete(ctx context.Context, key string) error {
	k := s.objectKey(key)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &k})
	return err
}

func (s *S3) URL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, s.objectKey(key))
}
