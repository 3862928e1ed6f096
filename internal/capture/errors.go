package capture

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// NavigationError means the target address never answered: DNS failure,
// connection refused, or the tab dying before the document loaded.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigate %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// WaitTimeoutError means the page loaded but the expected text never
// appeared within the deadline.
type WaitTimeoutError struct {
	Text    string
	Timeout time.Duration
	Err     error
}

func (e *WaitTimeoutError) Error() string {
	return fmt.Sprintf("text %q did not appear within %s: %v", e.Text, e.Timeout, e.Err)
}

func (e *WaitTimeoutError) Unwrap() error { return e.Err }

// IsNavigationError reports whether err wraps a NavigationError.
func IsNavigationError(err error) bool {
	var ne *NavigationError
	return errors.As(err, &ne)
}

// IsWaitTimeout reports whether err wraps a WaitTimeoutError.
func IsWaitTimeout(err error) bool {
	var we *WaitTimeoutError
	if errors.As(err, &we) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
