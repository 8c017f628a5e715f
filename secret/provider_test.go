package secret

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEnvProvider(t *testing.T) {
	t.Setenv("HJ_TOKEN", "abc")
	p := EnvProvider{}

	got, err := p.Resolve(context.Background(), "HJ_TOKEN")
	if err != nil || got != "abc" {
		t.Errorf("Resolve() = (%q, %v)", got, err)
	}
	if _, err := p.Resolve(context.Background(), "HJ_NOT_SET_ANYWHERE"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestFileProvider(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "dsn"), []byte("postgres://u:p@db/app\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	abs := FileProvider{}
	got, err := abs.Resolve(context.Background(), filepath.Join(dir, "dsn"))
	if err != nil || got != "postgres://u:p@db/app" {
		t.Errorf("Resolve(abs) = (%q, %v)", got, err)
	}

	rel := FileProvider{Dir: dir}
	got, err = rel.Resolve(context.Background(), "dsn")
	if err != nil || got != "postgres://u:p@db/app" {
		t.Errorf("Resolve(rel) = (%q, %v)", got, err)
	}

	if _, err := rel.Resolve(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
