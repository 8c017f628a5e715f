package health

import (
	"fmt"
	"time"
)

// Options configures one ExecuteChecks invocation.
//
// Options is a value: the engine reads it and never keeps a reference to its
// slices, so a caller may reuse or mutate them after the call returns.
type Options struct {
	// Include lists the check names to run. Empty includes every check.
	Include []string

	// Exclude lists the check names to skip. Empty excludes nothing.
	// A name present in both lists is excluded.
	Exclude []string

	// Timeout bounds each check independently. Must be positive.
	Timeout time.Duration

	// IncludeDetails attaches components, metadata, error detail and
	// diagnostic traces to the result. It is decided by the caller; the
	// engine never evaluates who is asking.
	IncludeDetails bool

	// Version is echoed back in the result. Empty means absent.
	Version string

	// BuildID is echoed back in the result. Empty means absent.
	BuildID string
}

// Validate reports whether the options satisfy the ExecuteChecks contract.
func (o Options) Validate() error {
	if o.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidOptions, o.Timeout)
	}
	return nil
}

// NameSet is a set of check names.
type NameSet map[string]struct{}

// NewNameSet builds a set from names. Duplicates collapse.
func NewNameSet(names ...string) NameSet {
	set := make(NameSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Has reports whether name is in the set.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Empty reports whether the set has no names.
func (s NameSet) Empty() bool {
	return len(s) == 0
}

// ShouldInclude reports whether check survives the include/exclude filter.
// An empty include set admits every name; exclude always wins.
func ShouldInclude(check Check, include, exclude NameSet) bool {
	name := check.Name()
	included := include.Empty() || include.Has(name)
	excluded := !exclude.Empty() && exclude.Has(name)
	return included && !excluded
}
