package config

import (
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: `d: 3s`, want: 3 * time.Second},
		{in: `d: 1500`, want: 1500 * time.Millisecond},
		{in: `d: "250ms"`, want: 250 * time.Millisecond},
		{in: `d: ""`, want: 0},
		{in: `d: soon`, wantErr: true},
		{in: `d: [1, 2]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var v struct {
				D Duration `yaml:"d"`
			}
			err := yaml.Unmarshal([]byte(tt.in), &v)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%q) succeeded with %v", tt.in, v.D)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%q) error = %v", tt.in, err)
			}
			if v.D.Duration != tt.want {
				t.Errorf("Unmarshal(%q) = %v, want %v", tt.in, v.D.Duration, tt.want)
			}
		})
	}
}

func TestDuration_MarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(struct {
		D Duration `yaml:"d"`
	}{D: Duration{3 * time.Second}})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "d: 3s\n" {
		t.Errorf("Marshal() = %q", out)
	}
}
