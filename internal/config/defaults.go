package config

import "github.com/bobmcallan/vire-capture/internal/common"

// Defaults mirror the original verification probe: local dev server,
// LOADING splash text, PNG in the working directory.
const (
	DefaultTargetURL  = "http://localhost:8081"
	DefaultWaitText   = "LOADING"
	DefaultOutputPath = "loading_verification.png"
)

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Target: TargetConfig{
			URL:            DefaultTargetURL,
			WaitText:       DefaultWaitText,
			Output:         DefaultOutputPath,
			TimeoutSeconds: 30,
		},
		Browser: BrowserConfig{
			Headless: true,
		},
		Logging: common.LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
