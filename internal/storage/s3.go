package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// S3Service uploads images to Amazon S3 (or compatible APIs) and exposes
// them at stable public URLs.
type S3Service struct {
	client     *s3.Client
	uploader   *manager.Uploader
	bucket     string
	region     string
	publicBase string
}

func NewS3Service(client *s3.Client, bucket, region, publicBase string) *S3Service {
	return &S3Service{
		client:     client,
		uploader:   manager.NewUploader(client),
		bucket:     bucket,
		region:     region,
		publicBase: strings.TrimSuffix(publicBase, "/"),
	}
}

func (s *S3Service) UploadImage(ctx context.Context, folder, contentType string, body io.Reader, size int64) (string, error) {
	if s.bucket == "" {
		return "", fmt.Errorf("storage bucket is required")
	}

	ext, err := ValidateImage(contentType, size)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%d-%s.%s", folder, time.Now().UnixMilli(), uuid.NewString()[:8], ext)

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
		ACL:          types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return s.objectURL(key), nil
}

func (s *S3Service) objectURL(key string) string {
	if s.publicBase != "" {
		return s.publicBase + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

var _ Service = (*S3Service)(nil)
