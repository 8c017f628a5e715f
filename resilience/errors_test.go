package resilience

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrRateLimitExceeded", ErrRateLimitExceeded},
		{"ErrTimeout", ErrTimeout},
		{"ErrPanic", ErrPanic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Errorf("%s is nil", tt.name)
			}
			if tt.err.Error() == "" {
				t.Errorf("%s has empty message", tt.name)
			}
		})
	}
}

func TestTimeoutError_Is(t *testing.T) {
	err := error(&TimeoutError{Timeout: 3 * time.Second})

	if !errors.Is(err, ErrTimeout) {
		t.Error("TimeoutError should match ErrTimeout")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("TimeoutError should match context.DeadlineExceeded")
	}
	if errors.Is(err, context.Canceled) {
		t.Error("TimeoutError should not match context.Canceled")
	}
	if !strings.Contains(err.Error(), "3s") {
		t.Errorf("Error() = %q, want it to mention the budget", err.Error())
	}
}

func TestPanicError(t *testing.T) {
	cause := errors.New("boom")
	err := error(&PanicError{Value: cause, Stack: []byte("goroutine 1")})

	if !errors.Is(err, ErrPanic) {
		t.Error("PanicError should match ErrPanic")
	}
	if !errors.Is(err, cause) {
		t.Error("PanicError should unwrap an error panic value")
	}
	if err.Error() != "panic: boom" {
		t.Errorf("Error() = %q, want %q", err.Error(), "panic: boom")
	}

	nonErr := &PanicError{Value: 42}
	if nonErr.Unwrap() != nil {
		t.Errorf("Unwrap() = %v, want nil for non-error value", nonErr.Unwrap())
	}
}
