// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/av3hub/avhub/internal/platform/config"
)

// S3Store is the live [BlobStore] backed by an S3-compatible service.
// Logical buckets map to key prefixes inside the single configured
// physical bucket.
type S3Store struct {
	client *s3.S3
	bucket string
}

/*
NewS3Store constructs the live blob store and verifies the physical bucket,
creating it when absent (MinIO local development).

Parameters:
  - cfg: *config.Config

Returns:
  - *S3Store: Ready blob store
  - error: AWS session failures
*/
func NewS3Store(cfg *config.Config) (*S3Store, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.S3Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	// Custom endpoint means MinIO or another S3 clone.
	if cfg.S3Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.S3Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if strings.HasPrefix(cfg.S3Endpoint, "http://") {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	store := &S3Store{
		client: s3.New(sess),
		bucket: cfg.S3Bucket,
	}

	if _, err := store.client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(cfg.S3Bucket),
	}); err != nil {
		if _, err := store.client.CreateBucket(&s3.CreateBucketInput{
			Bucket: aws.String(cfg.S3Bucket),
		}); err != nil {
			var awsErr awserr.Error
			if !(errors.As(err, &awsErr) && awsErr.Code() == s3.ErrCodeBucketAlreadyOwnedByYou) {
				return nil, fmt.Errorf("ensure bucket %q: %w", cfg.S3Bucket, err)
			}
		}
	}

	return store, nil
}

// Upload stores the blob under <bucket>/<key> and returns its public URL.
func (store *S3Store) Upload(context context.Context, bucket, key string, body io.Reader, contentType string) (string, error) {
	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, body); err != nil {
		return "", fmt.Errorf("storage_s3_read_upload_failed: %w", err)
	}

	objectKey := store.objectKey(bucket, key)

	if _, err := store.client.PutObjectWithContext(context, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	}); err != nil {
		return "", fmt.Errorf("storage_s3_put_failed: %w", err)
	}

	return store.PublicURL(bucket, key), nil
}

// PublicURL resolves the publicly reachable URL for an object.
func (store *S3Store) PublicURL(bucket, key string) string {
	objectKey := store.objectKey(bucket, key)

	endpoint := aws.StringValue(store.client.Config.Endpoint)
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		protocol := "https"
		if aws.BoolValue(store.client.Config.DisableSSL) {
			protocol = "http"
		}
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, store.bucket, objectKey)
	}

	region := aws.StringValue(store.client.Config.Region)
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", store.bucket, region, objectKey)
}

// Delete removes an object. Missing objects are treated as already deleted.
func (store *S3Store) Delete(context context.Context, bucket, key string) error {
	if _, err := store.client.DeleteObjectWithContext(context, &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(store.objectKey(bucket, key)),
	}); err != nil {
		return fmt.Errorf("storage_s3_delete_failed: %w", err)
	}
	return nil
}

func (store *S3Store) objectKey(bucket, key string) string {
	return bucket + "/" + key
}
