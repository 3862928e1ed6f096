package capture

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestRun_RejectsEmptyRequest(t *testing.T) {
	r := NewRunner(nil, nil)

	cases := []struct {
		name string
		req  Request
	}{
		{"missing url", Request{WaitText: "LOADING", OutputPath: "out.png"}},
		{"missing wait text", Request{TargetURL: "http://localhost:8081", OutputPath: "out.png"}},
		{"missing output", Request{TargetURL: "http://localhost:8081", WaitText: "LOADING"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := r.Run(context.Background(), tc.req); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestNavigationError_Message(t *testing.T) {
	cause := errors.New("net::ERR_CONNECTION_REFUSED")
	err := &NavigationError{URL: "http://localhost:1", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("NavigationError should unwrap to its cause")
	}
	want := "navigate http://localhost:1: net::ERR_CONNECTION_REFUSED"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestWaitTimeoutError_Message(t *testing.T) {
	err := &WaitTimeoutError{Text: "LOADING", Timeout: 30 * time.Second, Err: context.DeadlineExceeded}

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("WaitTimeoutError should unwrap to its cause")
	}
	want := `text "LOADING" did not appear within 30s: context deadline exceeded`
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestIsNavigationError(t *testing.T) {
	err := fmt.Errorf("run failed: %w", &NavigationError{URL: "http://x", Err: errors.New("refused")})
	if !IsNavigationError(err) {
		t.Error("wrapped NavigationError not detected")
	}
	if IsNavigationError(errors.New("other")) {
		t.Error("unrelated error classified as navigation failure")
	}
}

func TestIsWaitTimeout(t *testing.T) {
	err := fmt.Errorf("run failed: %w", &WaitTimeoutError{Text: "LOADING", Timeout: time.Second, Err: context.DeadlineExceeded})
	if !IsWaitTimeout(err) {
		t.Error("wrapped WaitTimeoutError not detected")
	}
	if !IsWaitTimeout(context.DeadlineExceeded) {
		t.Error("bare deadline error should classify as a wait timeout")
	}
	if IsWaitTimeout(errors.New("other")) {
		t.Error("unrelated error classified as timeout")
	}
}

func TestNewRunner_Defaults(t *testing.T) {
	r := NewRunner(nil, nil)
	if r.browserCfg == nil {
		t.Fatal("expected default browser config")
	}
	if !r.browserCfg.Headless {
		t.Error("expected headless default")
	}
	if r.log == nil {
		t.Error("expected a silent logger, got nil")
	}
}
