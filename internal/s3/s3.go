// Package s3 uploads profile pictures to the configured object-storage
// bucket.
package s3

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"habit-tracker-go/internal/config"
)

// ErrUpload wraps any transport failure; callers surface it as a generic
// upload error without the transport detail.
var ErrUpload = errors.New("upload failed")

// allowedContentTypes maps each accepted MIME type to the extension used when
// the filename carries none.
var allowedContentTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
}

// AllowedContentType reports whether the declared MIME type is in the
// allow-list. Matching is case-insensitive.
func AllowedContentType(contentType string) bool {
	_, ok := allowedContentTypes[strings.ToLower(contentType)]
	return ok
}

// ObjectKey derives a storage key namespaced by the caller's subject with a
// random component. The extension comes from the filename when present,
// otherwise from the MIME type.
func ObjectKey(subject, filename, contentType string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = allowedContentTypes[strings.ToLower(contentType)]
	}
	id := uuid.New()
	return fmt.Sprintf("profile_pics/%s/%s%s", subject, hex.EncodeToString(id[:]), ext)
}

type Uploader struct {
	client *awss3.Client
	bucket string
}

// NewUploader builds an uploader using the default AWS credential chain.
func NewUploader(ctx context.Context, cfg *config.Config) (*Uploader, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Uploader{client: awss3.NewFromConfig(awsCfg), bucket: cfg.S3Bucket}, nil
}

// Upload stores the object and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := u.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.bucket, key), nil
}
