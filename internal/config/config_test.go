package config

import (
	"os"
	"testing"
)

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	original, existed := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset %s: %v", key, err)
	}
	t.Cleanup(func() {
		if !existed {
			_ = os.Unsetenv(key)
			return
		}
		_ = os.Setenv(key, original)
	})
}

func TestDatabaseURLBuiltFromParts(t *testing.T) {
	unsetEnv(t, "DATABASE_URL")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "pages")

	cfg := New()
	want := "postgres://landing:landing@db:5432/pages?sslmode=disable"
	if cfg.DatabaseURL != want {
		t.Fatalf("expected %q, got %q", want, cfg.DatabaseURL)
	}
}

func TestDatabaseURLOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://override")

	if cfg := New(); cfg.DatabaseURL != "postgres://override" {
		t.Fatalf("expected explicit DATABASE_URL to win, got %q", cfg.DatabaseURL)
	}
}

func TestMediaStorageFallsBackToLocal(t *testing.T) {
	t.Setenv("MEDIA_STORAGE", "ftp")

	cfg := New()
	if cfg.MediaStorage != MediaStorageLocal {
		t.Fatalf("expected unknown storage to fall back to local, got %q", cfg.MediaStorage)
	}
	if cfg.UsesS3() {
		t.Fatalf("expected local storage")
	}
}

func TestS3RequiresBucket(t *testing.T) {
	t.Setenv("MEDIA_STORAGE", "S3")
	unsetEnv(t, "S3_BUCKET")

	cfg := New()
	if cfg.MediaStorage != MediaStorageS3 {
		t.Fatalf("expected s3 storage, got %q", cfg.MediaStorage)
	}
	if cfg.UsesS3() {
		t.Fatalf("expected s3 to stay off without a bucket")
	}

	t.Setenv("S3_BUCKET", "media")
	t.Setenv("S3_PUBLIC_URL", "https://cdn.example.com/")
	cfg = New()
	if !cfg.UsesS3() || cfg.S3PublicURL != "https://cdn.example.com" {
		t.Fatalf("expected s3 with trimmed public URL, got %+v", cfg)
	}
}

func TestUploadSizeAndLists(t *testing.T) {
	t.Setenv("MAX_UPLOAD_SIZE_MB", "-3")
	t.Setenv("CORS_ORIGINS", " https://a.io, ,https://b.io ")

	cfg := New()
	if cfg.MaxUploadSize != 50*1024*1024 {
		t.Fatalf("expected default upload size, got %d", cfg.MaxUploadSize)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.io" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
}

func TestAdminRateLimitAndWorkers(t *testing.T) {
	t.Setenv("ADMIN_RATE_LIMIT_PER_MINUTE", "120")
	unsetEnv(t, "ADMIN_RATE_LIMIT_BURST")
	t.Setenv("ENABLE_RENDER_WARMUP", "false")

	cfg := New()
	if cfg.AdminRateLimit != 120 || cfg.AdminRateBurst != 60 {
		t.Fatalf("unexpected rate limit %d/%d", cfg.AdminRateLimit, cfg.AdminRateBurst)
	}
	if cfg.EnableWarmup {
		t.Fatalf("expected warmup to be disabled")
	}
	if cfg.BackgroundWorkers != 1 {
		t.Fatalf("expected one background worker by default, got %d", cfg.BackgroundWorkers)
	}
}
