// Package capture implements the one-shot navigate, wait, screenshot probe.
package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/vire-capture/internal/browser"
	"github.com/bobmcallan/vire-capture/internal/common"
)

// Request describes a single capture run.
type Request struct {
	TargetURL  string
	WaitText   string
	OutputPath string
	Timeout    time.Duration
	Viewport   string // WxH, empty for Chrome's default
	Quality    int    // screenshot quality; 100 (PNG) when zero, lower values emit JPEG
}

// Result reports a successful capture.
type Result struct {
	ID         string
	TargetURL  string
	OutputPath string
	Bytes      int
	Elapsed    time.Duration
	JSErrors   []string
}

// Runner executes capture requests against a headless Chrome.
type Runner struct {
	browserCfg *browser.Config
	log        *common.Logger
}

// NewRunner builds a Runner. A nil logger is replaced with a silent one so
// the Runner can be embedded in tests without wiring log output.
func NewRunner(browserCfg *browser.Config, log *common.Logger) *Runner {
	if browserCfg == nil {
		browserCfg = browser.DefaultConfig()
	}
	if log == nil {
		log = common.NewSilentLogger()
	}
	return &Runner{browserCfg: browserCfg, log: log}
}

// Run performs one navigate-wait-capture sequence. The browser is acquired
// at the start and released on every exit path. On failure no output file
// is written.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if req.TargetURL == "" {
		return nil, fmt.Errorf("capture: target url is required")
	}
	if req.WaitText == "" {
		return nil, fmt.Errorf("capture: wait text is required")
	}
	if req.OutputPath == "" {
		return nil, fmt.Errorf("capture: output path is required")
	}

	id := uuid.New().String()
	start := time.Now()

	cfg := *r.browserCfg
	if req.Timeout > 0 {
		cfg.Timeout = req.Timeout
	}

	bctx, cancel := browser.NewContext(&cfg)
	defer cancel()

	// Honor caller cancellation alongside the browser deadline.
	if done := ctx.Done(); done != nil {
		go func() {
			select {
			case <-done:
				cancel()
			case <-bctx.Done():
			}
		}()
	}

	jsErrors := browser.NewJSErrorCollector(bctx)

	if req.Viewport != "" {
		w, h, err := browser.ParseViewport(req.Viewport)
		if err != nil {
			return nil, err
		}
		if err := browser.SetViewport(bctx, w, h); err != nil {
			return nil, fmt.Errorf("emulate viewport: %w", err)
		}
	}

	r.log.Info().
		Str("capture_id", id).
		Str("url", req.TargetURL).
		Str("wait_text", req.WaitText).
		Msg("navigating")

	if err := browser.Navigate(bctx, req.TargetURL); err != nil {
		return nil, &NavigationError{URL: req.TargetURL, Err: err}
	}

	if err := browser.WaitText(bctx, req.WaitText); err != nil {
		return nil, &WaitTimeoutError{Text: req.WaitText, Timeout: cfg.Timeout, Err: err}
	}

	buf, err := browser.Screenshot(bctx, req.Quality)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}

	if dir := filepath.Dir(req.OutputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	// Overwrites any prior file at the same path.
	if err := os.WriteFile(req.OutputPath, buf, 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", req.OutputPath, err)
	}

	res := &Result{
		ID:         id,
		TargetURL:  req.TargetURL,
		OutputPath: req.OutputPath,
		Bytes:      len(buf),
		Elapsed:    time.Since(start),
		JSErrors:   jsErrors.Errors(),
	}

	r.log.Info().
		Str("capture_id", id).
		Str("output", res.OutputPath).
		Int("bytes", res.Bytes).
		Str("elapsed", res.Elapsed.Round(time.Millisecond).String()).
		Msg("capture complete")

	for _, jsErr := range res.JSErrors {
		r.log.Warn().Str("capture_id", id).Str("js", jsErr).Msg("page reported a JS error")
	}

	return res, nil
}
