// Package media provides object storage adapters for avatar binaries.
package media

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/target/contacts-api/config"
	"github.com/target/contacts-api/internal/core"
)

// S3Store stores avatar binaries in an S3-compatible bucket (MinIO in
// development). Objects are keyed by a fresh UUID so uploads never collide
// and re-uploads never overwrite a URL already handed out.
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Store builds an S3Store from storage configuration.
func NewS3Store(ctx context.Context, cfg config.StorageConfig) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	publicBase := strings.TrimRight(cfg.PublicBaseURL, "/")
	if publicBase == "" {
		publicBase = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &S3Store{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: publicBase,
	}, nil
}

// Upload writes the avatar body to the bucket and returns its public URL.
func (s *S3Store) Upload(ctx context.Context, params core.UploadParams) (string, error) {
	key := objectKey(params.Filename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   params.Body,
	}
	if params.ContentType != "" {
		input.ContentType = aws.String(params.ContentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object %q: %w", key, err)
	}

	return s.publicBaseURL + "/" + key, nil
}

// objectKey derives a collision-free object key, keeping the original file
// extension so content type can be inferred from the URL.
func objectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return "avatars/" + uuid.NewString() + ext
}
