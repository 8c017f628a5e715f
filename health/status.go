package health

import "net/http"

// Status is the overall verdict of one ExecuteChecks invocation.
type Status int

const (
	// StatusHealthy means every included component is healthy.
	StatusHealthy Status = iota
	// StatusUnhealthy means at least one included component failed or timed out.
	StatusUnhealthy
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// HTTPStatus returns the response code conventionally paired with the status.
func (s Status) HTTPStatus() int {
	if s == StatusHealthy {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

// ComponentStatus is the outcome of running a single check once.
type ComponentStatus int

const (
	// ComponentHealthy indicates Execute returned nil within the timeout.
	ComponentHealthy ComponentStatus = iota
	// ComponentUnhealthy indicates Execute returned an error or panicked.
	ComponentUnhealthy
	// ComponentTimedOut indicates Execute did not resolve within the timeout,
	// or the caller stopped waiting for it.
	ComponentTimedOut
)

// String returns the string representation of the status.
func (s ComponentStatus) String() string {
	switch s {
	case ComponentHealthy:
		return "healthy"
	case ComponentUnhealthy:
		return "unhealthy"
	case ComponentTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Failed reports whether the status counts against the overall verdict.
func (s ComponentStatus) Failed() bool {
	return s == ComponentUnhealthy || s == ComponentTimedOut
}

// AggregateStatus folds component statuses into an overall status.
// Returns Unhealthy if any status is Unhealthy or TimedOut, Healthy otherwise,
// including for an empty set.
func AggregateStatus(statuses []ComponentStatus) Status {
	for _, s := range statuses {
		if s.Failed() {
			return StatusUnhealthy
		}
	}
	return StatusHealthy
}
