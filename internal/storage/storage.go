// Package storage turns stored media paths into URLs a player can fetch.
// The backend is chosen once at startup and injected; nothing here is global.
package storage

import (
	"context"
	"strings"

	"github.com/screendeck/backend/internal/config"
	"go.uber.org/zap"
)

// URLProvider returns a possibly time-limited URL for a storage path.
// Callers treat the result as opaque and must not cache it.
type URLProvider interface {
	AccessURL(ctx context.Context, storagePath string) (string, error)
}

const localPrefix = "local://"

// Local serves files from a directory exposed under BaseURL.
type Local struct {
	BaseURL string
}

func NewLocal(baseURL string) *Local {
	return &Local{BaseURL: strings.TrimRight(baseURL, "/")}
}

func (l *Local) AccessURL(_ context.Context, storagePath string) (string, error) {
	p := strings.TrimPrefix(storagePath, localPrefix)
	return l.BaseURL + "/" + strings.TrimLeft(p, "/"), nil
}

// New builds the provider selected by configuration. The returned close
// function releases backend clients and is never nil.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (URLProvider, func() error, error) {
	if cfg.UseLocalStorage {
		log.Info("using local media storage",
			zap.String("path", cfg.LocalStoragePath),
			zap.String("base_url", cfg.MediaBaseURL),
		)
		return NewLocal(cfg.MediaBaseURL), func() error { return nil }, nil
	}

	g, err := NewGCS(ctx, cfg.GCSBucketName, cfg.GCSCredentialsFile, cfg.SignedURLTTL)
	if err != nil {
		return nil, nil, err
	}
	log.Info("using gcs media storage",
		zap.String("bucket", cfg.GCSBucketName),
		zap.Duration("signed_url_ttl", cfg.SignedURLTTL),
	)
	return g, g.Close, nil
}
