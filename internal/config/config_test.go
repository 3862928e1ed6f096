package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Target.URL != "http://localhost:8081" {
		t.Errorf("expected default url http://localhost:8081, got %s", cfg.Target.URL)
	}
	if cfg.Target.WaitText != "LOADING" {
		t.Errorf("expected default wait text LOADING, got %s", cfg.Target.WaitText)
	}
	if cfg.Target.Output != "loading_verification.png" {
		t.Errorf("expected default output loading_verification.png, got %s", cfg.Target.Output)
	}
	if cfg.Target.TimeoutSeconds != 30 {
		t.Errorf("expected default timeout 30, got %d", cfg.Target.TimeoutSeconds)
	}
	if !cfg.Browser.Headless {
		t.Error("expected headless by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestTargetConfig_Timeout(t *testing.T) {
	tc := TargetConfig{TimeoutSeconds: 5}
	if tc.Timeout() != 5*time.Second {
		t.Errorf("expected 5s, got %v", tc.Timeout())
	}

	// Zero or negative falls back to the 30s default
	tc = TargetConfig{}
	if tc.Timeout() != 30*time.Second {
		t.Errorf("expected 30s fallback, got %v", tc.Timeout())
	}
}

func TestLoadFromFiles_NoFiles(t *testing.T) {
	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles with no files should not error: %v", err)
	}
	if cfg.Target.URL != "http://localhost:8081" {
		t.Errorf("expected default url, got %s", cfg.Target.URL)
	}
}

func TestLoadFromFiles_ValidTOML(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "test.toml")

	content := `
[target]
url = "http://localhost:9090/status"
wait_text = "READY"
output = "/tmp/ready.png"
timeout_seconds = 10
viewport = "1280x720"

[browser]
headless = false
chrome_path = "/usr/bin/chromium"

[logging]
level = "debug"
format = "json"
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Target.URL != "http://localhost:9090/status" {
		t.Errorf("expected url http://localhost:9090/status, got %s", cfg.Target.URL)
	}
	if cfg.Target.WaitText != "READY" {
		t.Errorf("expected wait text READY, got %s", cfg.Target.WaitText)
	}
	if cfg.Target.Output != "/tmp/ready.png" {
		t.Errorf("expected output /tmp/ready.png, got %s", cfg.Target.Output)
	}
	if cfg.Target.TimeoutSeconds != 10 {
		t.Errorf("expected timeout 10, got %d", cfg.Target.TimeoutSeconds)
	}
	if cfg.Target.Viewport != "1280x720" {
		t.Errorf("expected viewport 1280x720, got %s", cfg.Target.Viewport)
	}
	if cfg.Browser.Headless {
		t.Error("expected headless false from file")
	}
	if cfg.Browser.ChromePath != "/usr/bin/chromium" {
		t.Errorf("expected chrome path /usr/bin/chromium, got %s", cfg.Browser.ChromePath)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFiles_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "partial.toml")

	// Only override the url; everything else should stay default
	content := `
[target]
url = "http://localhost:3000"
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Target.URL != "http://localhost:3000" {
		t.Errorf("expected url http://localhost:3000, got %s", cfg.Target.URL)
	}
	if cfg.Target.WaitText != "LOADING" {
		t.Errorf("expected default wait text LOADING, got %s", cfg.Target.WaitText)
	}
}

func TestLoadFromFiles_MultipleFiles(t *testing.T) {
	dir := t.TempDir()

	base := filepath.Join(dir, "base.toml")
	baseContent := `
[target]
url = "http://base:8081"
wait_text = "BASE"
`
	if err := os.WriteFile(base, []byte(baseContent), 0644); err != nil {
		t.Fatal(err)
	}

	override := filepath.Join(dir, "override.toml")
	overrideContent := `
[target]
url = "http://override:8081"
`
	if err := os.WriteFile(override, []byte(overrideContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(base, override)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	// URL should be overridden by the second file
	if cfg.Target.URL != "http://override:8081" {
		t.Errorf("expected url from override file, got %s", cfg.Target.URL)
	}
	// Wait text should come from the base file
	if cfg.Target.WaitText != "BASE" {
		t.Errorf("expected wait text BASE from base file, got %s", cfg.Target.WaitText)
	}
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/path.toml")
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoadFromFiles_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "invalid.toml")

	if err := os.WriteFile(tomlPath, []byte("this is not valid {{toml"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromFiles(tomlPath)
	if err == nil {
		t.Error("expected error for invalid TOML, got nil")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := NewDefaultConfig()

	t.Setenv("VIRECAP_TARGET_URL", "http://env-host:8082")
	t.Setenv("VIRECAP_WAIT_TEXT", "SPINNING")
	t.Setenv("VIRECAP_OUTPUT", "/env/out.png")
	t.Setenv("VIRECAP_TIMEOUT_SECONDS", "12")
	t.Setenv("VIRECAP_VIEWPORT", "375x812")
	t.Setenv("CHROME_PATH", "/env/chrome")
	t.Setenv("VIRECAP_LOG_LEVEL", "error")

	applyEnvOverrides(cfg)

	if cfg.Target.URL != "http://env-host:8082" {
		t.Errorf("expected env url, got %s", cfg.Target.URL)
	}
	if cfg.Target.WaitText != "SPINNING" {
		t.Errorf("expected env wait text SPINNING, got %s", cfg.Target.WaitText)
	}
	if cfg.Target.Output != "/env/out.png" {
		t.Errorf("expected env output /env/out.png, got %s", cfg.Target.Output)
	}
	if cfg.Target.TimeoutSeconds != 12 {
		t.Errorf("expected env timeout 12, got %d", cfg.Target.TimeoutSeconds)
	}
	if cfg.Target.Viewport != "375x812" {
		t.Errorf("expected env viewport 375x812, got %s", cfg.Target.Viewport)
	}
	if cfg.Browser.ChromePath != "/env/chrome" {
		t.Errorf("expected env chrome path /env/chrome, got %s", cfg.Browser.ChromePath)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("expected env log level error, got %s", cfg.Logging.Level)
	}
}

func TestApplyEnvOverrides_InvalidTimeout(t *testing.T) {
	cfg := NewDefaultConfig()

	t.Setenv("VIRECAP_TIMEOUT_SECONDS", "not-a-number")

	applyEnvOverrides(cfg)

	if cfg.Target.TimeoutSeconds != 30 {
		t.Errorf("invalid env timeout should keep default 30, got %d", cfg.Target.TimeoutSeconds)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()

	ApplyFlagOverrides(cfg, FlagOverrides{
		URL:      "http://flag-host:8083",
		WaitText: "BOOTING",
		Output:   "flag.png",
		Timeout:  7,
		Viewport: "1920x1080",
	})

	if cfg.Target.URL != "http://flag-host:8083" {
		t.Errorf("expected flag url, got %s", cfg.Target.URL)
	}
	if cfg.Target.WaitText != "BOOTING" {
		t.Errorf("expected flag wait text BOOTING, got %s", cfg.Target.WaitText)
	}
	if cfg.Target.Output != "flag.png" {
		t.Errorf("expected flag output flag.png, got %s", cfg.Target.Output)
	}
	if cfg.Target.TimeoutSeconds != 7 {
		t.Errorf("expected flag timeout 7, got %d", cfg.Target.TimeoutSeconds)
	}
	if cfg.Target.Viewport != "1920x1080" {
		t.Errorf("expected flag viewport 1920x1080, got %s", cfg.Target.Viewport)
	}
}

func TestApplyFlagOverrides_EmptyFlagsKeepConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Target.URL = "http://from-file:8081"

	ApplyFlagOverrides(cfg, FlagOverrides{})

	if cfg.Target.URL != "http://from-file:8081" {
		t.Errorf("empty flags should not override, got %s", cfg.Target.URL)
	}
}

func TestValidate_DefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if issues := cfg.Validate(); len(issues) > 0 {
		t.Errorf("default config should validate, got issues: %v", issues)
	}
}

func TestValidate_ReportsIssues(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Target.URL = ""
	cfg.Target.WaitText = ""
	cfg.Target.Output = ""

	issues := cfg.Validate()
	if len(issues) != 3 {
		t.Errorf("expected 3 issues, got %d: %v", len(issues), issues)
	}
}

func TestValidate_RelativeURL(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Target.URL = "localhost:8081" // missing scheme

	issues := cfg.Validate()
	if len(issues) == 0 {
		t.Error("expected issue for non-absolute url")
	}
}
