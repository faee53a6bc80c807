// Package minio implements assetstore.Store on top of a MinIO/S3 bucket.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/daterly/members-api/internal/assetstore"
	"github.com/daterly/members-api/internal/config"
	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Store struct {
	client *mclient.Client
	cfg    *config.S3Config
}

// NewStore connects to the configured bucket and fails fast when it is
// missing, so a misconfigured store surfaces at startup instead of on the
// first photo upload.
func NewStore(ctx context.Context, cfg *config.S3Config) (*Store, error) {
	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", cfg.Bucket)
	}

	return &Store{client: client, cfg: cfg}, nil
}

// Upload stores the content under a fresh object key and returns the key
// together with the public URL clients should use.
func (s *Store) Upload(ctx context.Context, content []byte, contentType string) (*assetstore.Asset, error) {
	key := fmt.Sprintf("photos/%s", uuid.NewString())

	_, err := s.client.PutObject(
		ctx, s.cfg.Bucket, key,
		bytes.NewReader(content), int64(len(content)),
		mclient.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	return &assetstore.Asset{
		URL:     s.publicURL(key),
		AssetID: key,
	}, nil
}

func (s *Store) Remove(ctx context.Context, assetID string) error {
	err := s.client.RemoveObject(ctx, s.cfg.Bucket, assetID, mclient.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove object: %w", err)
	}
	return nil
}

func (s *Store) publicURL(key string) string {
	if s.cfg.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.PublicBaseURL, "/"), key)
	}
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL(), s.cfg.Bucket, key)
}
