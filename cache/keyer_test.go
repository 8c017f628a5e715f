package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/jonwraymond/healthjson/health"
)

func TestDefaultKeyer_Deterministic(t *testing.T) {
	k := NewDefaultKeyer("")
	a, err := k.Key([]string{"db", "api"}, health.Options{Include: []string{"b", "a", "a"}, Timeout: time.Second})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	b, err := k.Key([]string{"api", "db"}, health.Options{Include: []string{"a", "b"}, Timeout: time.Second})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	if a != b {
		t.Errorf("Key() = %q and %q, want equal", a, b)
	}
	if !strings.HasPrefix(a, "health:") || len(a) != len("health:")+16 {
		t.Errorf("Key() = %q, want health:<16 hex>", a)
	}
}

func TestDefaultKeyer_Distinguishes(t *testing.T) {
	k := NewDefaultKeyer("svc")
	base := health.Options{Timeout: time.Second}
	names := []string{"db"}

	variants := []struct {
		name  string
		names []string
		opts  health.Options
	}{
		{"details", names, health.Options{Timeout: time.Second, IncludeDetails: true}},
		{"timeout", names, health.Options{Timeout: 2 * time.Second}},
		{"include", names, health.Options{Timeout: time.Second, Include: []string{"db"}}},
		{"exclude", names, health.Options{Timeout: time.Second, Exclude: []string{"db"}}},
		{"version", names, health.Options{Timeout: time.Second, Version: "1"}},
		{"checks", []string{"db", "cache"}, base},
	}

	want, err := k.Key(names, base)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	if !strings.HasPrefix(want, "svc:") {
		t.Errorf("Key() = %q, want svc: prefix", want)
	}
	for _, v := range variants {
		got, err := k.Key(v.names, v.opts)
		if err != nil {
			t.Fatalf("%s: Key() error = %v", v.name, err)
		}
		if got == want {
			t.Errorf("%s: Key() = base key, want a different key", v.name)
		}
	}
}
