package storage

import (
	"testing"
)

func TestResolveConfigFromEnvDefaultLocal(t *testing.T) {
	t.Setenv("STORAGE_MODE", "")
	t.Setenv("GCS_BUCKET_NAME", "")
	t.Setenv("UPLOAD_DIR", "")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.Mode != ModeLocal {
		t.Fatalf("mode: want=%q got=%q", ModeLocal, cfg.Mode)
	}
	if cfg.LocalDir != "uploads" {
		t.Fatalf("local dir: want=%q got=%q", "uploads", cfg.LocalDir)
	}
	if cfg.CompatibilityFallback {
		t.Fatalf("compatibility fallback: want=false got=true")
	}
}

func TestResolveConfigFromEnvExplicitLocalIgnoresBucket(t *testing.T) {
	t.Setenv("STORAGE_MODE", "local")
	t.Setenv("GCS_BUCKET_NAME", "gradpath-uploads")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.Mode != ModeLocal {
		t.Fatalf("mode: want=%q got=%q", ModeLocal, cfg.Mode)
	}
	if cfg.CompatibilityFallback {
		t.Fatalf("compatibility fallback: want=false got=true")
	}
}

func TestResolveConfigFromEnvExplicitGCS(t *testing.T) {
	t.Setenv("STORAGE_MODE", "gcs")
	t.Setenv("GCS_BUCKET_NAME", "gradpath-uploads")
	t.Setenv("STORAGE_EMULATOR_HOST", "")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.Mode != ModeGCS {
		t.Fatalf("mode: want=%q got=%q", ModeGCS, cfg.Mode)
	}
	if cfg.CompatibilityFallback {
		t.Fatalf("compatibility fallback: want=false got=true")
	}
}

func TestResolveConfigFromEnvCompatibilityFallback(t *testing.T) {
	t.Setenv("STORAGE_MODE", "")
	t.Setenv("GCS_BUCKET_NAME", "gradpath-uploads")
	t.Setenv("STORAGE_EMULATOR_HOST", "")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.Mode != ModeGCS {
		t.Fatalf("mode: want=%q got=%q", ModeGCS, cfg.Mode)
	}
	if !cfg.CompatibilityFallback {
		t.Fatalf("compatibility fallback: want=true got=false")
	}
}

func TestResolveConfigFromEnvInvalidMode(t *testing.T) {
	t.Setenv("STORAGE_MODE", "s3")

	_, err := ResolveConfigFromEnv()
	if err == nil {
		t.Fatalf("ResolveConfigFromEnv: expected error, got nil")
	}
}

func TestResolveConfigFromEnvGCSMissingBucket(t *testing.T) {
	t.Setenv("STORAGE_MODE", "gcs")
	t.Setenv("GCS_BUCKET_NAME", "")

	_, err := ResolveConfigFromEnv()
	if err == nil {
		t.Fatalf("ResolveConfigFromEnv: expected error, got nil")
	}
}

func TestResolveConfigFromEnvGCSInvalidEmulatorHost(t *testing.T) {
	t.Setenv("STORAGE_MODE", "gcs")
	t.Setenv("GCS_BUCKET_NAME", "gradpath-uploads")
	t.Setenv("STORAGE_EMULATOR_HOST", "fake-gcs:4443")

	_, err := ResolveConfigFromEnv()
	if err == nil {
		t.Fatalf("ResolveConfigFromEnv: expected error, got nil")
	}
}
