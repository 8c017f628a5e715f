package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/jonwraymond/healthjson/health"
)

// Keyer derives cache keys for health reports.
//
// Contract:
// - Determinism: the order of names, Include and Exclude does not matter.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	// Key derives a key from the names of the checks in scope and the
	// execution options.
	Key(names []string, opts health.Options) (string, error)
}

// DefaultKeyer derives SHA-256 based keys.
type DefaultKeyer struct {
	prefix string
}

// NewDefaultKeyer creates a keyer whose keys start with prefix. An empty
// prefix means "health".
func NewDefaultKeyer(prefix string) *DefaultKeyer {
	if prefix == "" {
		prefix = "health"
	}
	return &DefaultKeyer{prefix: prefix}
}

// keyInput is the canonical form hashed into a key.
type keyInput struct {
	Names   []string `json:"n"`
	Include []string `json:"i"`
	Exclude []string `json:"e"`
	Timeout int64    `json:"t"`
	Details bool     `json:"d"`
	Version string   `json:"v"`
	BuildID string   `json:"b"`
}

// Key returns <prefix>:<hash>, where hash is the first 16 hex characters of
// SHA-256 over the canonical JSON of the inputs.
func (k *DefaultKeyer) Key(names []string, opts health.Options) (string, error) {
	canonical, err := json.Marshal(keyInput{
		Names:   sortedSet(names),
		Include: sortedSet(opts.Include),
		Exclude: sortedSet(opts.Exclude),
		Timeout: opts.Timeout.Nanoseconds(),
		Details: opts.IncludeDetails,
		Version: opts.Version,
		BuildID: opts.BuildID,
	})
	if err != nil {
		return "", fmt.Errorf("cache: failed to canonicalize options: %w", err)
	}

	hash := sha256.Sum256(canonical)
	return fmt.Sprintf("%s:%s", k.prefix, hex.EncodeToString(hash[:8])), nil
}

func sortedSet(s []string) []string {
	out := slices.Clone(s)
	slices.Sort(out)
	return slices.Compact(out)
}

var _ Keyer = (*DefaultKeyer)(nil)
