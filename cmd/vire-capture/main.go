// vire-capture captures a screenshot of a page once its loading indicator
// has rendered.
//
// Usage:
//   vire-capture                                   # defaults: http://localhost:8081, LOADING, loading_verification.png
//   vire-capture -url http://localhost:4241 -text READY -out /tmp/ready.png
//   vire-capture -config config/vire-capture.toml -timeout 10
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bobmcallan/vire-capture/internal/browser"
	"github.com/bobmcallan/vire-capture/internal/capture"
	"github.com/bobmcallan/vire-capture/internal/common"
	"github.com/bobmcallan/vire-capture/internal/config"
)

// configPaths is a custom flag type that allows multiple -config flags.
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles configPaths
	targetURL   = flag.String("url", "", "Target URL (overrides config)")
	waitText    = flag.String("text", "", "Text that must appear before capture (overrides config)")
	outputPath  = flag.String("out", "", "Screenshot output path (overrides config)")
	timeoutSecs = flag.Int("timeout", 0, "Wait timeout in seconds (overrides config)")
	viewport    = flag.String("viewport", "", "Viewport as WxH, e.g. 1280x720 (overrides config)")
	headful     = flag.Bool("headful", false, "Run Chrome with a visible window")
	showVersion = flag.Bool("version", false, "Print version information")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("vire-capture version %s\n", config.GetVersion())
		os.Exit(0)
	}

	// Auto-discover config file if not specified.
	// Binary-relative paths are tried first so the config is found even when
	// the working directory differs from the binary location.
	if len(configFiles) == 0 {
		for _, path := range captureConfigSearchPaths() {
			if _, err := os.Stat(path); err == nil {
				configFiles = append(configFiles, path)
				break
			}
		}
	}

	cfg, err := config.LoadFromFiles(configFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		os.Exit(1)
	}

	// CLI flag overrides (highest priority)
	config.ApplyFlagOverrides(cfg, config.FlagOverrides{
		URL:      *targetURL,
		WaitText: *waitText,
		Output:   *outputPath,
		Timeout:  *timeoutSecs,
		Viewport: *viewport,
	})
	if *headful {
		cfg.Browser.Headless = false
	}

	if issues := cfg.Validate(); len(issues) > 0 {
		fmt.Fprintln(os.Stderr, "Configuration error — mandatory fields are missing or invalid:")
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "  - %s\n", issue)
		}
		fmt.Fprintln(os.Stderr, "Values can be set via TOML file, VIRECAP_* environment variables, or CLI flags.")
		os.Exit(2)
	}

	logger := common.NewLoggerFromConfig(cfg.Logging)

	logger.Info().
		Str("url", cfg.Target.URL).
		Str("wait_text", cfg.Target.WaitText).
		Str("output", cfg.Target.Output).
		Str("timeout", cfg.Target.Timeout().String()).
		Msg("configuration loaded")

	runner := capture.NewRunner(&browser.Config{
		Headless:   cfg.Browser.Headless,
		ChromePath: cfg.Browser.ChromePath,
		Timeout:    cfg.Target.Timeout(),
	}, logger)

	res, err := runner.Run(context.Background(), capture.Request{
		TargetURL:  cfg.Target.URL,
		WaitText:   cfg.Target.WaitText,
		OutputPath: cfg.Target.Output,
		Timeout:    cfg.Target.Timeout(),
		Viewport:   cfg.Target.Viewport,
	})
	if err != nil {
		switch {
		case capture.IsNavigationError(err):
			logger.Error().Str("error", err.Error()).Msg("target unreachable")
		case capture.IsWaitTimeout(err):
			logger.Error().Str("error", err.Error()).Msg("loading indicator never appeared")
		default:
			logger.Error().Str("error", err.Error()).Msg("capture failed")
		}
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Captured %s\n", res.OutputPath)
}

// captureConfigSearchPaths returns TOML files to auto-discover (first match
// wins). Binary-relative paths are tried first, with CWD fallbacks after.
// Paths are deduplicated via filepath.Abs.
func captureConfigSearchPaths() []string {
	candidates := []string{
		"vire-capture.toml",
		"config/vire-capture.toml",
	}

	exe, err := os.Executable()
	if err != nil {
		return candidates
	}
	binDir := filepath.Dir(exe)

	paths := []string{
		filepath.Join(binDir, "vire-capture.toml"),
		filepath.Join(binDir, "config", "vire-capture.toml"),
	}
	paths = append(paths, candidates...)

	// Deduplicate via absolute path.
	seen := make(map[string]bool, len(paths))
	deduped := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		deduped = append(deduped, p)
	}
	return deduped
}
