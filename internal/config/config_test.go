package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigCreatesDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("GLASSDASH_HOME", home)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GetCurrentProfileName() != "default" {
		t.Errorf("expected default profile, got %q", cfg.GetCurrentProfileName())
	}
	if cfg.GetBaseURL() != DefaultBaseURL {
		t.Errorf("expected %s, got %s", DefaultBaseURL, cfg.GetBaseURL())
	}
	if cfg.GetTimeout() != 30*time.Second || cfg.GetPollInterval() != 30*time.Second {
		t.Errorf("unexpected durations %v %v", cfg.GetTimeout(), cfg.GetPollInterval())
	}
	if !cfg.IsValid() {
		t.Error("expected default config to be valid")
	}

	data, err := os.ReadFile(filepath.Join(home, ".glassdash", "config.yaml"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "base_url: http://localhost:5000") {
		t.Errorf("unexpected file contents:\n%s", data)
	}
}

func TestSaveAndReload(t *testing.T) {
	t.Setenv("GLASSDASH_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	cfg.Profiles["glasses"] = Profile{BaseURL: "http://10.0.0.7:5000", TimeoutSec: 5, PollIntervalSec: 10}
	if err := cfg.Use("glasses"); err != nil {
		t.Fatalf("Use failed: %v", err)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.GetCurrentProfileName() != "glasses" {
		t.Errorf("expected glasses active, got %q", reloaded.GetCurrentProfileName())
	}
	if reloaded.GetBaseURL() != "http://10.0.0.7:5000" {
		t.Errorf("unexpected base URL %q", reloaded.GetBaseURL())
	}
	if reloaded.GetTimeout() != 5*time.Second || reloaded.GetPollInterval() != 10*time.Second {
		t.Errorf("unexpected durations %v %v", reloaded.GetTimeout(), reloaded.GetPollInterval())
	}
}

func TestUseUnknownProfile(t *testing.T) {
	cfg := &Config{Profiles: map[string]Profile{"default": {}}, ActiveProfile: "default"}
	if err := cfg.Use("missing"); err == nil {
		t.Error("expected error for unknown profile")
	}
	if cfg.ActiveProfile != "default" {
		t.Errorf("active profile changed to %q", cfg.ActiveProfile)
	}
}

func TestApplyEnvDoesNotPersist(t *testing.T) {
	t.Setenv("GLASSDASH_HOME", t.TempDir())
	t.Setenv(BaseURLEnv, "http://override:8080")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	cfg.ApplyEnv()

	if cfg.GetBaseURL() != "http://override:8080" {
		t.Errorf("expected override, got %q", cfg.GetBaseURL())
	}
	if cfg.Profiles["default"].BaseURL != DefaultBaseURL {
		t.Errorf("override leaked into profile: %q", cfg.Profiles["default"].BaseURL)
	}
}

func TestFallbackToExistingProfile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("GLASSDASH_HOME", home)

	dir := filepath.Join(home, ".glassdash")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "profiles:\n  lab:\n    base_url: http://lab:5000\nactive_profile: gone\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.GetCurrentProfileName() != "lab" || cfg.GetBaseURL() != "http://lab:5000" {
		t.Errorf("unexpected profile %q %q", cfg.GetCurrentProfileName(), cfg.GetBaseURL())
	}
	// Unset durations fall back to defaults
	if cfg.GetTimeout() != DefaultTimeoutSec*time.Second {
		t.Errorf("unexpected timeout %v", cfg.GetTimeout())
	}
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		raw string
		ok  bool
	}{
		{"http://localhost:5000", true},
		{"https://glasses.local", true},
		{"localhost:5000", false},
		{"ftp://host", false},
		{"http://", false},
		{"", false},
	}
	for _, tt := range tests {
		err := ValidateBaseURL(tt.raw)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateBaseURL(%q) = %v, want ok=%v", tt.raw, err, tt.ok)
		}
	}
}
