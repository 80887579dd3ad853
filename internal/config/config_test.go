package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.TimeoutMS != 5000 {
		t.Errorf("TimeoutMS = %d", cfg.TimeoutMS)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v", cfg.Timeout())
	}
	if cfg.DefaultRole != "customer" {
		t.Errorf("DefaultRole = %q", cfg.DefaultRole)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("api_url: https://store.example.com/api/v1\ntimeout_ms: 2500\nlog_level: debug\n")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "https://store.example.com/api/v1" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Timeout() != 2500*time.Millisecond {
		t.Errorf("Timeout() = %v", cfg.Timeout())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestInvalidFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("\t:bad"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid config file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_url: https://file.example.com\ntimeout_ms: 1000\n"), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("JILL_API_URL", "https://env.example.com")
	t.Setenv("JILL_TIMEOUT_MS", "250")
	t.Setenv("JILL_LOG_LEVEL", "error")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "https://env.example.com" {
		t.Errorf("APIURL = %q, env should win over file", cfg.APIURL)
	}
	if cfg.TimeoutMS != 250 {
		t.Errorf("TimeoutMS = %d", cfg.TimeoutMS)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestEnvIgnoresGarbageTimeout(t *testing.T) {
	t.Setenv("JILL_TIMEOUT_MS", "not-a-number")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TimeoutMS != 5000 {
		t.Errorf("TimeoutMS = %d, want default", cfg.TimeoutMS)
	}
}

func TestTimeoutFallback(t *testing.T) {
	cfg := &Config{TimeoutMS: 0}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s fallback", cfg.Timeout())
	}
	cfg.TimeoutMS = -10
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s fallback", cfg.Timeout())
	}
}
