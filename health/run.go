package health

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/jonwraymond/healthjson/resilience"
)

// attempt is the undecorated outcome of executing a check.
type attempt struct {
	status  ComponentStatus
	elapsed time.Duration
	err     error
	detail  string
}

// RunWithTimeout executes check once, bounded by timeout, and folds every
// outcome into a ComponentResult. It never returns an error and never panics.
//
// If ctx ends while waiting, the check is reported as timed out with the
// cancellation cause as its diagnostic. A check still running when its result
// is returned is abandoned; whatever it does later is ignored.
func RunWithTimeout(ctx context.Context, check Check, timeout time.Duration, includeDetails bool) ComponentResult {
	return newComponentResult(check, execute(ctx, check, timeout), includeDetails)
}

func execute(ctx context.Context, check Check, timeout time.Duration) attempt {
	start := time.Now()
	err := resilience.ExecuteWithTimeout(ctx, timeout, check.Execute)
	elapsed := time.Since(start)

	a := attempt{elapsed: elapsed, err: err}
	switch {
	case err == nil:
		a.status = ComponentHealthy
	case ownTimeout(ctx, err, timeout):
		a.status = ComponentTimedOut
		a.detail = fmt.Sprintf("health check %q timed out after %s", check.Name(), timeout)
	case ctx.Err() != nil && errors.Is(err, context.Cause(ctx)):
		a.status = ComponentTimedOut
		a.detail = fmt.Sprintf("health check %q interrupted after %s: %v", check.Name(), elapsed, err)
	default:
		a.status = ComponentUnhealthy
		a.detail = err.Error()
	}
	return a
}

// ownTimeout reports whether err is the deadline of this execution rather
// than an enclosing deadline that ended ctx.
func ownTimeout(ctx context.Context, err error, timeout time.Duration) bool {
	var te *resilience.TimeoutError
	if !errors.As(err, &te) || te.Timeout != timeout {
		return false
	}
	var outer *resilience.TimeoutError
	return !errors.As(context.Cause(ctx), &outer) || outer != te
}

func newComponentResult(check Check, a attempt, includeDetails bool) ComponentResult {
	cr := ComponentResult{
		Name:    check.Name(),
		Status:  a.status,
		Elapsed: a.elapsed,
	}
	if !includeDetails {
		return cr
	}

	cr.Metadata = metadataOf(check)
	if a.status.Failed() {
		cr.ErrorDetail = a.detail
		cr.DiagnosticTrace = diagnosticTrace(a.err)
	}
	return cr
}

// metadataOf copies the check's metadata. A panicking Metadata is treated as
// having none.
func metadataOf(check Check) (md map[string]string) {
	defer func() {
		if recover() != nil {
			md = nil
		}
	}()
	src := check.Metadata()
	if len(src) == 0 {
		return nil
	}
	return maps.Clone(src)
}

// diagnosticTrace renders err for operators: the goroutine stack for a
// panic, otherwise the error tree with concrete types, one error per line.
func diagnosticTrace(err error) string {
	if err == nil {
		return ""
	}

	var pe *resilience.PanicError
	if errors.As(err, &pe) {
		return fmt.Sprintf("%s\n\n%s", pe.Error(), pe.Stack)
	}

	var b strings.Builder
	writeErrorTree(&b, err, 0)
	return strings.TrimRight(b.String(), "\n")
}

func writeErrorTree(b *strings.Builder, err error, depth int) {
	if depth > 0 {
		b.WriteString(strings.Repeat("  ", depth-1))
		b.WriteString("caused by: ")
	}
	fmt.Fprintf(b, "%T: %s\n", err, err.Error())

	switch x := err.(type) {
	case interface{ Unwrap() error }:
		if inner := x.Unwrap(); inner != nil {
			writeErrorTree(b, inner, depth+1)
		}
	case interface{ Unwrap() []error }:
		for _, inner := range x.Unwrap() {
			if inner != nil {
				writeErrorTree(b, inner, depth+1)
			}
		}
	}
}
