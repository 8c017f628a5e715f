package checks

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
)

// DefaultCriticalThreshold is the usage ratio at which Memory fails.
const DefaultCriticalThreshold = 0.95

// MemoryConfig configures a Memory check.
type MemoryConfig struct {
	// CriticalThreshold is the fraction of MaxAlloc that fails the check.
	// Must be in (0, 1]; anything else falls back to 0.95.
	CriticalThreshold float64

	// MaxAlloc is the allocation ceiling in bytes. Zero uses the memory
	// obtained from the OS (MemStats.Sys).
	MaxAlloc uint64
}

// Memory checks heap allocation against a ceiling.
type Memory struct {
	base
	config    MemoryConfig
	readStats func(*runtime.MemStats)
}

// NewMemory creates a memory check.
func NewMemory(name string, config MemoryConfig, opts ...Option) (*Memory, error) {
	if config.CriticalThreshold <= 0 || config.CriticalThreshold > 1 {
		config.CriticalThreshold = DefaultCriticalThreshold
	}
	tags := map[string]string{
		"critical_threshold": strconv.FormatFloat(config.CriticalThreshold, 'f', -1, 64),
	}
	if config.MaxAlloc > 0 {
		tags["max_alloc"] = strconv.FormatUint(config.MaxAlloc, 10)
	}
	_, b, err := newSettings("memory", name, tags, opts)
	if err != nil {
		return nil, err
	}
	return &Memory{base: b, config: config, readStats: runtime.ReadMemStats}, nil
}

// Config returns the effective configuration.
func (m *Memory) Config() MemoryConfig {
	return m.config
}

// Execute fails with ErrMemoryCritical when usage reaches the threshold.
func (m *Memory) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var stats runtime.MemStats
	m.readStats(&stats)

	maxAlloc := m.config.MaxAlloc
	if maxAlloc == 0 {
		maxAlloc = stats.Sys
	}
	if maxAlloc == 0 {
		// No ceiling to compare against.
		return nil
	}

	usage := float64(stats.Alloc) / float64(maxAlloc)
	if usage >= m.config.CriticalThreshold {
		return fmt.Errorf("%w: %.1f%% of %d bytes (threshold %.1f%%)",
			ErrMemoryCritical, usage*100, maxAlloc, m.config.CriticalThreshold*100)
	}
	return nil
}
