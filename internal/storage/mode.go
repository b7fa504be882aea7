package storage

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCS   Mode = "gcs"
)

type Config struct {
	Mode                  Mode
	LocalDir              string
	Bucket                string
	EmulatorHost          string
	CompatibilityFallback bool
}

func IsSupportedMode(mode Mode) bool {
	switch mode {
	case ModeLocal, ModeGCS:
		return true
	default:
		return false
	}
}

func (cfg Config) ModeSource() string {
	if cfg.CompatibilityFallback {
		return "compatibility_fallback"
	}
	return "explicit_or_default"
}

type ConfigErrorCode string

const (
	ConfigErrorInvalidMode         ConfigErrorCode = "invalid_mode"
	ConfigErrorMissingBucket       ConfigErrorCode = "missing_bucket"
	ConfigErrorInvalidEmulatorHost ConfigErrorCode = "invalid_emulator_host"
)

type ConfigError struct {
	Code         ConfigErrorCode
	Mode         string
	EmulatorHost string
	Cause        error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "invalid storage config"
	}
	switch e.Code {
	case ConfigErrorInvalidMode:
		return fmt.Sprintf(
			"invalid STORAGE_MODE=%q (allowed: %q, %q)",
			e.Mode,
			ModeLocal,
			ModeGCS,
		)
	case ConfigErrorMissingBucket:
		return fmt.Sprintf(
			"STORAGE_MODE=%q requires GCS_BUCKET_NAME to be set",
			ModeGCS,
		)
	case ConfigErrorInvalidEmulatorHost:
		return fmt.Sprintf(
			"invalid STORAGE_EMULATOR_HOST=%q; expected absolute URL like http://fake-gcs:4443",
			e.EmulatorHost,
		)
	default:
		return "invalid storage config"
	}
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ResolveConfigFromEnv reads STORAGE_MODE and its companion variables.
// An empty STORAGE_MODE defaults to local storage, except when a bucket
// is configured: older deployments set only GCS_BUCKET_NAME, so that
// combination keeps resolving to GCS.
func ResolveConfigFromEnv() (Config, error) {
	cfg := Config{
		LocalDir:     strings.TrimSpace(os.Getenv("UPLOAD_DIR")),
		Bucket:       strings.TrimSpace(os.Getenv("GCS_BUCKET_NAME")),
		EmulatorHost: strings.TrimSpace(os.Getenv("STORAGE_EMULATOR_HOST")),
	}
	if cfg.LocalDir == "" {
		cfg.LocalDir = "uploads"
	}

	rawMode := strings.TrimSpace(os.Getenv("STORAGE_MODE"))
	mode := Mode(strings.ToLower(rawMode))

	switch mode {
	case "":
		if cfg.Bucket != "" {
			cfg.Mode = ModeGCS
			cfg.CompatibilityFallback = true
		} else {
			cfg.Mode = ModeLocal
		}
	case ModeLocal:
		cfg.Mode = ModeLocal
	case ModeGCS:
		cfg.Mode = ModeGCS
	default:
		return cfg, &ConfigError{
			Code: ConfigErrorInvalidMode,
			Mode: rawMode,
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func ValidateConfig(cfg Config) error {
	if !IsSupportedMode(cfg.Mode) {
		return &ConfigError{
			Code: ConfigErrorInvalidMode,
			Mode: string(cfg.Mode),
		}
	}
	if cfg.Mode != ModeGCS {
		return nil
	}

	if cfg.Bucket == "" {
		return &ConfigError{
			Code: ConfigErrorMissingBucket,
			Mode: string(cfg.Mode),
		}
	}
	if cfg.EmulatorHost != "" {
		u, err := url.Parse(cfg.EmulatorHost)
		if err != nil || strings.TrimSpace(u.Scheme) == "" || strings.TrimSpace(u.Host) == "" {
			return &ConfigError{
				Code:         ConfigErrorInvalidEmulatorHost,
				Mode:         string(cfg.Mode),
				EmulatorHost: cfg.EmulatorHost,
				Cause:        err,
			}
		}
	}

	return nil
}
