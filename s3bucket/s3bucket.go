package s3bucket

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/programme-lv/contactform/conf"
)

// ErrNotFound is returned by Download when the key does not exist.
var ErrNotFound = errors.New("object not found")

const maxAttempts = 3

// UploadOpts describes how an object is written.
type UploadOpts struct {
	MediaType string
	// Encrypt requests SSE-S3 (AES256) server-side encryption.
	Encrypt bool
}

type S3Bucket struct {
	client *s3.Client
	bucket string
}

// NewS3Bucket builds a client bound to storage.Bucket. Static credentials are
// used when both key id and secret are present, otherwise the SDK default
// credential chain applies.
func NewS3Bucket(ctx context.Context, storage conf.StorageConfig) (*S3Bucket, error) {
	if storage.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(storage.Region),
		config.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(retry.NewStandard(), maxAttempts)
		}),
	}
	if storage.HasStaticCredentials() {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				storage.AccessKeyID,
				storage.SecretAccessKey,
				storage.SessionToken,
			),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(storage.Endpoint)
			o.UsePathStyle = true // MinIO, LocalStack
		}
	})

	return &S3Bucket{
		client: client,
		bucket: storage.Bucket,
	}, nil
}

// Upload stores content under key.
func (bucket *S3Bucket) Upload(ctx context.Context, key string, content []byte, opts UploadOpts) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(content),
	}
	if opts.MediaType != "" {
		input.ContentType = aws.String(opts.MediaType)
	}
	if opts.Encrypt {
		input.ServerSideEncryption = types.ServerSideEncryptionAes256
	}

	_, err := bucket.client.PutObject(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

func (bucket *S3Bucket) Download(ctx context.Context, key string) ([]byte, error) {
	output, err := bucket.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to download object: %w", err)
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return data, nil
}

// ListFiles returns every key under prefix, following continuation tokens
// until the listing is exhausted.
func (bucket *S3Bucket) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	keys := []string{}
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket.bucket),
	}

	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	paginator := s3.NewListObjectsV2Paginator(bucket.client, input)

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}

	return keys, nil
}
