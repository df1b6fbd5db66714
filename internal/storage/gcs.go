package storage

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const gcsPrefix = "gs://"

// GCS signs V4 GET URLs for objects in Google Cloud Storage.
type GCS struct {
	client *gcs.Client
	bucket string
	ttl    time.Duration
}

func NewGCS(ctx context.Context, bucket, credentialsFile string, ttl time.Duration) (*GCS, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &GCS{client: client, bucket: bucket, ttl: ttl}, nil
}

func (g *GCS) AccessURL(_ context.Context, storagePath string) (string, error) {
	bucket, object := splitGCSPath(storagePath, g.bucket)
	url, err := g.client.Bucket(bucket).SignedURL(object, &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(g.ttl),
	})
	if err != nil {
		return "", fmt.Errorf("sign url for %s/%s: %w", bucket, object, err)
	}
	return url, nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}

// splitGCSPath accepts gs://bucket/object or a bare object path in the
// default bucket.
func splitGCSPath(storagePath, defaultBucket string) (string, string) {
	if !strings.HasPrefix(storagePath, gcsPrefix) {
		return defaultBucket, strings.TrimLeft(storagePath, "/")
	}
	rest := strings.TrimPrefix(storagePath, gcsPrefix)
	bucket, object, found := strings.Cut(rest, "/")
	if !found {
		return defaultBucket, bucket
	}
	return bucket, object
}
