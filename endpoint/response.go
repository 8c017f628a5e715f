package endpoint

import (
	"time"

	"github.com/jonwraymond/healthjson/health"
)

// ContentType is the media type of health reports.
const ContentType = "application/health+json"

// Wire names of overall and component statuses.
const (
	StatusHealthy   = "HEALTHY"
	StatusUnhealthy = "UNHEALTHY"
	StatusTimedOut  = "TIMEDOUT"
)

// Response is the JSON body of a health report.
type Response struct {
	Status         string              `json:"status"`
	ResponseTimeMs int64               `json:"responseTimeMs"`
	Version        string              `json:"version,omitempty"`
	BuildID        string              `json:"buildId,omitempty"`
	Components     []ComponentResponse `json:"components,omitempty"`
}

// ComponentResponse is one component in a detailed report.
type ComponentResponse struct {
	Name           string            `json:"name"`
	Status         string            `json:"status"`
	ResponseTimeMs int64             `json:"responseTimeMs"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	ErrorDetails   string            `json:"errorDetails,omitempty"`
	StackTrace     string            `json:"stackTrace,omitempty"`
}

// NewResponse converts a health.Result to its wire form.
func NewResponse(r health.Result) Response {
	resp := Response{
		Status:         statusName(r.Status),
		ResponseTimeMs: millis(r.Elapsed),
		Version:        r.Version,
		BuildID:        r.BuildID,
	}
	if r.Components == nil {
		return resp
	}

	resp.Components = make([]ComponentResponse, 0, len(r.Components))
	for _, c := range r.Components {
		resp.Components = append(resp.Components, ComponentResponse{
			Name:           c.Name,
			Status:         componentStatusName(c.Status),
			ResponseTimeMs: millis(c.Elapsed),
			Metadata:       c.Metadata,
			ErrorDetails:   c.ErrorDetail,
			StackTrace:     c.DiagnosticTrace,
		})
	}
	return resp
}

func statusName(s health.Status) string {
	if s == health.StatusHealthy {
		return StatusHealthy
	}
	return StatusUnhealthy
}

func componentStatusName(s health.ComponentStatus) string {
	switch s {
	case health.ComponentHealthy:
		return StatusHealthy
	case health.ComponentTimedOut:
		return StatusTimedOut
	default:
		return StatusUnhealthy
	}
}

func millis(d time.Duration) int64 {
	return d.Milliseconds()
}

// errorResponse is the body of a rejected request.
type errorResponse struct {
	Error string `json:"error"`
}
