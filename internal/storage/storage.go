// Package storage persists uploaded advising sheets. Two backends are
// supported: a local directory for development and single-node
// deployments, and a GCS bucket for everything else. Both implement
// Store, and callers never learn which one they got.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/gradpath/gradpath-backend/internal/logger"
)

type Store interface {
	Save(ctx context.Context, key string, file io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// NewStore builds the store selected by STORAGE_MODE.
func NewStore(log *logger.Logger) (Store, error) {
	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("resolve storage config: %w", err)
	}
	return NewStoreWithConfig(log, cfg)
}

func NewStoreWithConfig(log *logger.Logger, cfg Config) (Store, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validate storage config: %w", err)
	}
	serviceLog := log.With("service", "Store")

	switch cfg.Mode {
	case ModeLocal:
		store, err := newLocalStore(serviceLog, cfg.LocalDir)
		if err != nil {
			return nil, err
		}
		serviceLog.Info("Storage initialized",
			"mode", cfg.Mode,
			"mode_source", cfg.ModeSource(),
			"dir", cfg.LocalDir,
		)
		return store, nil
	case ModeGCS:
		store, err := newGCSStore(serviceLog, cfg)
		if err != nil {
			return nil, err
		}
		serviceLog.Info("Storage initialized",
			"mode", cfg.Mode,
			"mode_source", cfg.ModeSource(),
			"bucket", cfg.Bucket,
			"emulator_host", cfg.EmulatorHost,
		)
		return store, nil
	default:
		return nil, &ConfigError{Code: ConfigErrorInvalidMode, Mode: string(cfg.Mode)}
	}
}

// NewKey derives a storage key for an uploaded file. The random prefix
// keeps uploads with the same name from clobbering each other.
func NewKey(originalName string) string {
	return uuid.NewString() + "-" + SanitizeFilename(originalName)
}

// SanitizeFilename reduces a client-supplied filename to a safe single
// path element. Anything outside [A-Za-z0-9._-] becomes an underscore.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) {
		base = ""
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "upload"
	}
	return out
}
