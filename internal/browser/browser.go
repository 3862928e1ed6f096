// Package browser wraps chromedp setup for headless Chrome captures.
package browser

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// Config controls how the Chrome process is launched.
type Config struct {
	Headless   bool
	ChromePath string
	Timeout    time.Duration
}

// DefaultConfig returns the launch settings used when no config is supplied.
func DefaultConfig() *Config {
	return &Config{
		Headless: true,
		Timeout:  30 * time.Second,
	}
}

// NewContext builds an exec allocator plus a browser context with a deadline.
// The returned cancel releases the timeout, the tab, and the allocator, in
// that order, so the Chrome process is reaped on every exit path.
func NewContext(cfg *Config) (context.Context, context.CancelFunc) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, ctxCancel := chromedp.NewContext(allocCtx)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, timeoutCancel := context.WithTimeout(ctx, timeout)

	cancel := func() {
		timeoutCancel()
		ctxCancel()
		allocCancel()
	}
	return ctx, cancel
}

// Navigate opens the target URL and waits for the document body.
func Navigate(ctx context.Context, url string) error {
	return chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitVisible("body", chromedp.ByQuery),
	)
}

// WaitText blocks until an element containing the given text is present in
// the DOM. Matches Playwright's text selector semantics via an XPath
// contains() search.
func WaitText(ctx context.Context, text string) error {
	xpath := fmt.Sprintf(`//*[contains(text(),%s)]`, xpathLiteral(text))
	return chromedp.Run(ctx, chromedp.WaitReady(xpath, chromedp.BySearch))
}

// Screenshot captures the full rendered page as an image. Quality 100
// produces PNG; anything lower makes chromedp emit JPEG instead.
func Screenshot(ctx context.Context, quality int) ([]byte, error) {
	if quality <= 0 {
		quality = 100
	}
	var buf []byte
	if err := chromedp.Run(ctx, chromedp.FullScreenshot(&buf, quality)); err != nil {
		return nil, err
	}
	return buf, nil
}

// SetViewport emulates a fixed viewport size before navigation.
func SetViewport(ctx context.Context, width, height int64) error {
	return chromedp.Run(ctx, chromedp.EmulateViewport(width, height))
}

// ParseViewport parses a WxH string such as "1280x720".
func ParseViewport(s string) (int64, int64, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("viewport %q: want WxH, e.g. 1280x720", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("viewport %q: bad width", s)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("viewport %q: bad height", s)
	}
	return int64(w), int64(h), nil
}

// xpathLiteral quotes s for use inside an XPath expression. XPath 1.0 has no
// escape syntax, so strings containing both quote kinds need concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, `'`) {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	var b strings.Builder
	b.WriteString("concat(")
	for i, part := range strings.Split(s, `'`) {
		if i > 0 {
			b.WriteString(`,"'",`)
		}
		b.WriteString("'" + part + "'")
	}
	b.WriteString(")")
	return b.String()
}

// JSErrorCollector listens for JS exceptions and console.error calls.
// Attach before navigating.
type JSErrorCollector struct {
	mu     sync.Mutex
	errors []string
}

// NewJSErrorCollector registers a CDP event listener on the tab context.
func NewJSErrorCollector(ctx context.Context) *JSErrorCollector {
	c := &JSErrorCollector{}

	chromedp.ListenTarget(ctx, func(ev interface{}) {
		c.mu.Lock()
		defer c.mu.Unlock()

		switch e := ev.(type) {
		case *runtime.EventExceptionThrown:
			desc := e.ExceptionDetails.Text
			if e.ExceptionDetails.Exception != nil && e.ExceptionDetails.Exception.Description != "" {
				desc = e.ExceptionDetails.Exception.Description
			}
			if strings.Contains(desc, "Content Security Policy") {
				return
			}
			c.errors = append(c.errors, fmt.Sprintf("EXCEPTION: %s", desc))

		case *runtime.EventConsoleAPICalled:
			if e.Type == runtime.APITypeError {
				var parts []string
				for _, arg := range e.Args {
					if arg.Value != nil {
						parts = append(parts, string(arg.Value))
					} else if arg.Description != "" {
						parts = append(parts, arg.Description)
					}
				}
				if len(parts) > 0 {
					msg := strings.Join(parts, " ")
					if !strings.Contains(msg, "favicon") && !strings.Contains(msg, "Content Security Policy") {
						c.errors = append(c.errors, fmt.Sprintf("console.error: %s", msg))
					}
				}
			}
		}
	})

	return c
}

// Errors returns a copy of the collected messages.
func (c *JSErrorCollector) Errors() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.errors))
	copy(out, c.errors)
	return out
}

// HasErrors reports whether any JS error was observed.
func (c *JSErrorCollector) HasErrors() bool {
	return len(c.Errors()) > 0
}
