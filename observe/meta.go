package observe

import "maps"

// CheckMeta identifies a health check for telemetry purposes.
type CheckMeta struct {
	Name     string            // Check name (required)
	Metadata map[string]string // Static check metadata (optional)
}

// SpanName returns the deterministic span name for this check.
// Format: health.check.<name>
func (m CheckMeta) SpanName() string {
	return "health.check." + m.Name
}

// Clone returns a copy of m that does not share the metadata map.
func (m CheckMeta) Clone() CheckMeta {
	return CheckMeta{Name: m.Name, Metadata: maps.Clone(m.Metadata)}
}
