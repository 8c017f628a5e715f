package health

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/healthjson/observe"
)

// EngineConfig configures an Engine.
type EngineConfig struct {
	// MaxConcurrency bounds how many checks run at once. Zero or negative
	// means one goroutine per check. A queued check's timeout starts when it
	// is dispatched, so the bound never changes a check's status.
	MaxConcurrency int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithMaxConcurrency bounds the number of checks running at once.
func WithMaxConcurrency(n int) EngineOption {
	return func(e *Engine) {
		e.config.MaxConcurrency = n
	}
}

// WithInstrumentation wraps every check dispatch with mw.
func WithInstrumentation(mw *observe.Middleware) EngineOption {
	return func(e *Engine) {
		if mw != nil {
			e.mw = mw
		}
	}
}

// Engine runs check collections and aggregates their outcomes.
//
// Contract:
//   - Concurrency: safe for concurrent use; invocations share no state.
//   - Context: ctx bounds the wait for every check. When it ends, checks
//     still running are reported as timed out.
//   - Errors: only contract violations are returned. Check failures and
//     timeouts become component statuses.
type Engine struct {
	config EngineConfig
	mw     *observe.Middleware
}

// NewEngine creates an Engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{mw: observe.NopMiddleware()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() EngineConfig {
	return e.config
}

var defaultEngine = NewEngine()

// ExecuteChecks runs checks with the default Engine.
func ExecuteChecks(ctx context.Context, checks []Check, opts Options) (Result, error) {
	return defaultEngine.ExecuteChecks(ctx, checks, opts)
}

// ExecuteChecks filters checks by opts.Include and opts.Exclude, runs the
// survivors concurrently each under opts.Timeout, and aggregates the
// outcomes. It blocks until every dispatched check has resolved or timed out.
//
// An empty collection, before or after filtering, is healthy.
func (e *Engine) ExecuteChecks(ctx context.Context, checks []Check, opts Options) (Result, error) {
	if err := validate(checks, opts); err != nil {
		return Result{}, err
	}

	start := time.Now()

	include := NewNameSet(opts.Include...)
	exclude := NewNameSet(opts.Exclude...)
	selected := make([]Check, 0, len(checks))
	for _, c := range checks {
		if ShouldInclude(c, include, exclude) {
			selected = append(selected, c)
		}
	}

	components := make([]ComponentResult, len(selected))

	var g errgroup.Group
	if e.config.MaxConcurrency > 0 {
		g.SetLimit(e.config.MaxConcurrency)
	}
	for i, c := range selected {
		run := e.mw.Wrap(func(ctx context.Context, _ observe.CheckMeta) (string, error) {
			a := execute(ctx, c, opts.Timeout)
			components[i] = newComponentResult(c, a, opts.IncludeDetails)
			return a.status.String(), a.err
		})
		g.Go(func() error {
			_, _ = run(ctx, observe.CheckMeta{Name: c.Name(), Metadata: metadataOf(c)})
			return nil
		})
	}
	_ = g.Wait()

	statuses := make([]ComponentStatus, len(components))
	for i, c := range components {
		statuses[i] = c.Status
	}

	res := Result{
		Status:  AggregateStatus(statuses),
		Elapsed: time.Since(start),
		Version: opts.Version,
		BuildID: opts.BuildID,
	}
	if opts.IncludeDetails {
		slices.SortFunc(components, func(a, b ComponentResult) int {
			return strings.Compare(a.Name, b.Name)
		})
		res.Components = components
	}

	e.mw.ObserveReport(ctx, res.Status.String(), len(components), res.Elapsed)
	return res, nil
}

func validate(checks []Check, opts Options) error {
	var errs []error
	if err := opts.Validate(); err != nil {
		errs = append(errs, err)
	}
	for i, c := range checks {
		if c == nil {
			errs = append(errs, fmt.Errorf("%w: check %d is nil", ErrInvalidOptions, i))
			continue
		}
		name, ok := nameOf(c)
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("%w: check %d name panicked", ErrInvalidOptions, i))
		case name == "":
			errs = append(errs, fmt.Errorf("%w: check %d has an empty name", ErrInvalidOptions, i))
		}
	}
	return errors.Join(errs...)
}

// nameOf calls check.Name, reporting false if it panics. A typed nil such
// as (*CheckFunc)(nil) passes the nil interface test but panics here.
func nameOf(check Check) (name string, ok bool) {
	defer func() {
		if recover() != nil {
			name, ok = "", false
		}
	}()
	return check.Name(), true
}
