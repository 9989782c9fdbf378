package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pageza/recipe-finder/backend/config"
)

const defaultPresignExpiry = 15 * time.Minute

// ImageService turns stored recipe image references into fetchable URLs
type ImageService struct {
	s3Config *config.S3Config
	expiry   time.Duration
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{
		s3Config: s3Config,
		expiry:   defaultPresignExpiry,
	}
}

// SignImage presigns references into the configured bucket. Both s3://bucket/key
// and https://bucket.s3.amazonaws.com/key forms are recognized; anything else
// is returned unchanged.
func (s *ImageService) SignImage(ctx context.Context, ref string) (string, error) {
	bucket, key, ok := s.objectFor(ref)
	if !ok {
		return ref, nil
	}

	signed, err := s.s3Config.GeneratePresignedURL(ctx, bucket, key, s.expiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", ref, err)
	}
	return signed, nil
}

func (s *ImageService) objectFor(ref string) (bucket, key string, ok bool) {
	if s.s3Config == nil || ref == "" {
		return "", "", false
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", "", false
	}

	switch u.Scheme {
	case "s3":
		bucket = u.Host
	case "https":
		host, found := strings.CutSuffix(u.Host, ".s3.amazonaws.com")
		if !found {
			return "", "", false
		}
		bucket = host
	default:
		return "", "", false
	}

	key = strings.TrimPrefix(u.Path, "/")
	if bucket != s.s3Config.BucketName || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
