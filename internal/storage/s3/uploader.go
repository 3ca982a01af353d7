// Package s3 uploads profile photos to an S3-compatible object store
// (AWS S3 or MinIO).
package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/openblog/web-service/config"
	"github.com/openblog/web-service/internal/core/domain"
)

// Uploader implements domain.PhotoUploader on top of the AWS SDK.
type Uploader struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewUploader builds the S3 client from service config. A non-empty
// cfg.Storage.Endpoint points the client at a MinIO-style deployment.
func NewUploader(ctx context.Context, cfg *config.Config) (*Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Storage.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Uploader{
		client:        client,
		bucket:        cfg.Storage.Bucket,
		publicBaseURL: strings.TrimRight(cfg.Storage.PublicBaseURL, "/"),
	}, nil
}

// Upload puts the payload under "avatars/<key>" and returns the public URL.
// Re-uploading under the same key overwrites the previous photo, which is
// what a profile photo change wants.
func (u *Uploader) Upload(ctx context.Context, payload []byte, key string) (string, error) {
	objectKey := "avatars/" + key

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(http.DetectContentType(payload)),
	})
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", objectKey, err)
	}

	return u.publicBaseURL + "/" + objectKey, nil
}

var _ domain.PhotoUploader = (*Uploader)(nil)
