package endpoint

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jonwraymond/healthjson/health"
)

func TestNewResponse_WithoutDetails(t *testing.T) {
	resp := NewResponse(health.Result{
		Status:  health.StatusUnhealthy,
		Elapsed: 1500 * time.Millisecond,
		Version: "0.0.0",
		BuildID: "0.0.0-00000000-0000",
	})

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"status":"UNHEALTHY","responseTimeMs":1500,"version":"0.0.0","buildId":"0.0.0-00000000-0000"}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestNewResponse_Components(t *testing.T) {
	resp := NewResponse(health.Result{
		Status: health.StatusUnhealthy,
		Components: []health.ComponentResult{
			{Name: "a", Status: health.ComponentHealthy, Elapsed: 3 * time.Millisecond, Metadata: map[string]string{"k": "v"}},
			{Name: "b", Status: health.ComponentUnhealthy, ErrorDetail: "boom", DiagnosticTrace: "*errors.errorString: boom"},
			{Name: "c", Status: health.ComponentTimedOut},
		},
	})

	if len(resp.Components) != 3 {
		t.Fatalf("len(Components) = %d, want 3", len(resp.Components))
	}
	wantStatus := []string{StatusHealthy, StatusUnhealthy, StatusTimedOut}
	for i, c := range resp.Components {
		if c.Status != wantStatus[i] {
			t.Errorf("Components[%d].Status = %s, want %s", i, c.Status, wantStatus[i])
		}
	}
	if resp.Components[0].ResponseTimeMs != 3 {
		t.Errorf("ResponseTimeMs = %d, want 3", resp.Components[0].ResponseTimeMs)
	}

	data, _ := json.Marshal(resp.Components[1])
	for _, field := range []string{`"errorDetails":"boom"`, `"stackTrace":"*errors.errorString: boom"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("json = %s, want field %s", data, field)
		}
	}
	data, _ = json.Marshal(resp.Components[0])
	if strings.Contains(string(data), "errorDetails") {
		t.Errorf("healthy component json = %s, want no errorDetails", data)
	}
}
