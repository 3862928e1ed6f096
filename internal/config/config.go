package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/vire-capture/internal/common"
)

// Config represents the application configuration.
type Config struct {
	Target  TargetConfig         `toml:"target"`
	Browser BrowserConfig        `toml:"browser"`
	Logging common.LoggingConfig `toml:"logging"`
}

// TargetConfig describes the page to capture and the wait condition.
type TargetConfig struct {
	URL            string `toml:"url"`
	WaitText       string `toml:"wait_text"`
	Output         string `toml:"output"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Viewport       string `toml:"viewport"`
}

// BrowserConfig contains headless Chrome settings.
type BrowserConfig struct {
	Headless   bool   `toml:"headless"`
	ChromePath string `toml:"chrome_path"`
}

// Timeout returns the wait deadline as a duration.
func (t TargetConfig) Timeout() time.Duration {
	if t.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(t.TimeoutSeconds) * time.Second
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies VIRECAP_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if u := os.Getenv("VIRECAP_TARGET_URL"); u != "" {
		config.Target.URL = u
	}
	if text := os.Getenv("VIRECAP_WAIT_TEXT"); text != "" {
		config.Target.WaitText = text
	}
	if out := os.Getenv("VIRECAP_OUTPUT"); out != "" {
		config.Target.Output = out
	}
	if secs := os.Getenv("VIRECAP_TIMEOUT_SECONDS"); secs != "" {
		if s, err := strconv.Atoi(secs); err == nil {
			config.Target.TimeoutSeconds = s
		}
	}
	if vp := os.Getenv("VIRECAP_VIEWPORT"); vp != "" {
		config.Target.Viewport = vp
	}
	if chrome := os.Getenv("CHROME_PATH"); chrome != "" {
		config.Browser.ChromePath = chrome
	}
	if level := os.Getenv("VIRECAP_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("VIRECAP_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
}

// FlagOverrides carries CLI flag values that take priority over file and env.
type FlagOverrides struct {
	URL      string
	WaitText string
	Output   string
	Timeout  int
	Viewport string
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, flags FlagOverrides) {
	if flags.URL != "" {
		config.Target.URL = flags.URL
	}
	if flags.WaitText != "" {
		config.Target.WaitText = flags.WaitText
	}
	if flags.Output != "" {
		config.Target.Output = flags.Output
	}
	if flags.Timeout > 0 {
		config.Target.TimeoutSeconds = flags.Timeout
	}
	if flags.Viewport != "" {
		config.Target.Viewport = flags.Viewport
	}
}

// Validate checks mandatory fields and returns human-readable issues.
func (c *Config) Validate() []string {
	var issues []string

	if c.Target.URL == "" {
		issues = append(issues, "target.url is required")
	} else if u, err := url.Parse(c.Target.URL); err != nil || u.Scheme == "" || u.Host == "" {
		issues = append(issues, fmt.Sprintf("target.url %q is not an absolute URL", c.Target.URL))
	}
	if c.Target.WaitText == "" {
		issues = append(issues, "target.wait_text is required")
	}
	if c.Target.Output == "" {
		issues = append(issues, "target.output is required")
	}
	if c.Target.TimeoutSeconds < 0 {
		issues = append(issues, fmt.Sprintf("target.timeout_seconds must be >= 0, got %d", c.Target.TimeoutSeconds))
	}

	return issues
}
