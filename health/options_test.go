package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

func named(name string) Check {
	return NewCheckFunc(name, func(context.Context) error { return nil })
}

func TestShouldInclude(t *testing.T) {
	tests := []struct {
		name    string
		check   string
		include []string
		exclude []string
		want    bool
	}{
		{"no filters", "A", nil, nil, true},
		{"included by name", "A", []string{"A"}, nil, true},
		{"not in include", "B", []string{"A"}, nil, false},
		{"excluded", "A", nil, []string{"A"}, false},
		{"exclude wins", "A", []string{"A"}, []string{"A"}, false},
		{"exclude other", "A", nil, []string{"B"}, true},
		{"case sensitive", "api", []string{"API"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShouldInclude(named(tt.check), NewNameSet(tt.include...), NewNameSet(tt.exclude...))
			if got != tt.want {
				t.Errorf("ShouldInclude(%q, %v, %v) = %v, want %v", tt.check, tt.include, tt.exclude, got, tt.want)
			}
		})
	}
}

func TestNameSet(t *testing.T) {
	s := NewNameSet("a", "b", "a")
	if len(s) != 2 {
		t.Errorf("len = %d, want 2", len(s))
	}
	if !s.Has("a") || s.Has("c") {
		t.Errorf("Has mismatch: %v", s)
	}
	if s.Empty() || !NewNameSet().Empty() {
		t.Error("Empty mismatch")
	}
}

func TestOptions_Validate(t *testing.T) {
	if err := (Options{Timeout: 1}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	for _, timeout := range []time.Duration{0, -time.Second} {
		err := Options{Timeout: timeout}.Validate()
		if !errors.Is(err, ErrInvalidOptions) {
			t.Errorf("Validate(timeout=%s) error = %v, want ErrInvalidOptions", timeout, err)
		}
	}
}
