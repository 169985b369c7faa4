package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "JWT_SECRET=file-secret\nSERVER_PORT=9090\nJWT_TTL=30m\nLOG_LEVEL=debug\n"
	if err := os.WriteFile(envFile, []byte(content), 0600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	// godotenv never overrides variables that are already set.
	for _, k := range []string{"JWT_SECRET", "SERVER_PORT", "JWT_TTL", "LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JWTSecret != "file-secret" {
		t.Errorf("expected secret from file, got %q", cfg.JWTSecret)
	}
	if cfg.ServerPort != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.ServerPort)
	}
	if cfg.JWTTTL != 30*time.Minute {
		t.Errorf("expected 30m ttl, got %s", cfg.JWTTTL)
	}
	if cfg.LogLevel != logrus.DebugLevel {
		t.Errorf("expected debug level, got %s", cfg.LogLevel)
	}
	if cfg.MongoDBName != "task_management" {
		t.Errorf("expected default db name, got %s", cfg.MongoDBName)
	}
}

func TestLoadMissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("SERVER_PORT", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JWTSecret != "env-secret" {
		t.Errorf("expected env secret, got %q", cfg.JWTSecret)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("expected default port, got %s", cfg.ServerPort)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error when JWT_SECRET is empty")
	}
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_TTL", "soon")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid JWT_TTL")
	}
}
