package health

import (
	"context"
	"fmt"
	"strings"
)

// compositeCheck runs a whole check collection as one check.
type compositeCheck struct {
	name   string
	source CheckSource
	engine *Engine
	opts   Options
}

// Composite returns a Check that runs every check from source through
// engine and fails with ErrCheckFailed when the aggregate is unhealthy.
// A nil engine uses the default Engine.
//
// Details are always collected so the error can name the failing
// components; opts.IncludeDetails is ignored.
func Composite(name string, source CheckSource, engine *Engine, opts Options) Check {
	if engine == nil {
		engine = defaultEngine
	}
	opts.IncludeDetails = true
	return &compositeCheck{name: name, source: source, engine: engine, opts: opts}
}

func (c *compositeCheck) Name() string {
	return c.name
}

func (c *compositeCheck) Execute(ctx context.Context) error {
	res, err := c.engine.ExecuteChecks(ctx, c.source.Checks(), c.opts)
	if err != nil {
		return err
	}
	if res.Status == StatusHealthy {
		return nil
	}

	var failed []string
	for _, comp := range res.Components {
		if comp.Status.Failed() {
			failed = append(failed, comp.Name+"="+comp.Status.String())
		}
	}
	return fmt.Errorf("%w: %s", ErrCheckFailed, strings.Join(failed, ", "))
}

func (c *compositeCheck) Metadata() map[string]string {
	md := map[string]string{"kind": "composite"}
	if c.opts.Version != "" {
		md["version"] = c.opts.Version
	}
	return md
}
