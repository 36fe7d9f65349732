package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectStore is the pass-through gateway to the object storage bucket.
// Put returns the public URL of the stored object.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string, isPublic bool) (string, error)
	Delete(ctx context.Context, key string) error
}

var Store ObjectStore

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Store struct {
	client s3API
	bucket string
	region string
}

// Connect builds the S3 client from the environment and sets the package-level
// Store. S3_ENDPOINT switches to static credentials and path-style addressing
// for S3-compatible stores such as minio.
func Connect(ctx context.Context) error {
	bucket := os.Getenv("AWS_S3_BUCKET")
	if bucket == "" {
		return fmt.Errorf("AWS_S3_BUCKET environment variable is not set")
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		return fmt.Errorf("AWS_REGION environment variable is not set")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}

	endpoint := os.Getenv("S3_ENDPOINT")
	if endpoint != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("S3_ACCESS_KEY"),
			os.Getenv("S3_SECRET_KEY"),
			"",
		)))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)

	if err != nil {
		return err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	Store = &S3Store{
		client: client,
		bucket: bucket,
		region: region,
	}

	return nil
}

func NewS3Store(client s3API, bucket string, region string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		region: region,
	}
}

func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string, isPublic bool) (string, error) {
	acl := types.ObjectCannedACLPrivate
	if isPublic {
		acl = types.ObjectCannedACLPublicRead
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ACL:         acl,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	return nil
}
