// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "JWT_SECRET", "JWT_EXPIRES_IN", "FRONTEND_URL", "APP_ENV", "NODE_ENV"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("FRONTEND_URL", "https://board.example.com")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabasePostgres {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("expected 2h TTL, got %s", cfg.TokenTTL)
	}
	if cfg.FrontendURL != "https://board.example.com" {
		t.Errorf("unexpected frontend url %q", cfg.FrontendURL)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-jwt-secret", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-d", "board.db", "-jwt-secret", "s1"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 5000 {
		t.Errorf("expected default port 5000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabaseSQLite {
		t.Errorf("expected sqlite default, got %s", cfg.DatabaseType)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Errorf("expected 7 day TTL, got %s", cfg.TokenTTL)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected development, got %s", cfg.Environment)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"missing database url", []string{"-jwt-secret", "s"}, nil},
		{"missing jwt secret", []string{"-d", "board.db"}, nil},
		{"bad port env", []string{"-d", "board.db", "-jwt-secret", "s"}, map[string]string{"PORT": "abc"}},
		{"unknown database type", []string{"-d", "board.db", "-jwt-secret", "s", "-t", "mysql"}, nil},
		{"bad ttl", []string{"-d", "board.db", "-jwt-secret", "s", "-token-ttl", "forever"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("JWT_SECRET=from-file\nDATABASE_URL=file.db\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	LoadEnvFile(path)
	t.Cleanup(func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("DATABASE_URL")
	})

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.JWTSecret != "from-file" {
		t.Errorf("expected secret from .env, got %q", cfg.JWTSecret)
	}

	// Missing files are ignored
	LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
}

func TestConfigStringMasksSecret(t *testing.T) {
	cfg := Config{Port: 1, DatabaseType: "sqlite", JWTSecret: "super-secret"}
	if strings.Contains(cfg.String(), "super-secret") {
		t.Error("String() leaked the JWT secret")
	}
}
