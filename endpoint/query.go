package endpoint

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// LevelDetailed is the level query value that requests component details.
const LevelDetailed = "detailed"

// maxTimeoutMs is the largest timeoutMs that fits in a time.Duration.
const maxTimeoutMs = math.MaxInt64 / int64(time.Millisecond)

// ErrBadQuery indicates a malformed query parameter.
var ErrBadQuery = errors.New("endpoint: bad query")

// Query is the parsed form of a health request's parameters.
type Query struct {
	Include  []string
	Exclude  []string
	Timeout  time.Duration // zero means the handler default
	Detailed bool
}

// ParseQuery parses include, exclude, timeoutMs and level.
func ParseQuery(values url.Values) (Query, error) {
	q := Query{
		Include: names(values, "include", "includeComponents"),
		Exclude: names(values, "exclude", "excludeComponents"),
	}

	if raw := values.Get("timeoutMs"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ms <= 0 {
			return Query{}, fmt.Errorf("%w: timeoutMs must be a positive integer, got %q", ErrBadQuery, raw)
		}
		if ms > maxTimeoutMs {
			return Query{}, fmt.Errorf("%w: timeoutMs must be at most %d, got %q", ErrBadQuery, maxTimeoutMs, raw)
		}
		q.Timeout = time.Duration(ms) * time.Millisecond
	}

	switch level := values.Get("level"); level {
	case "":
	case LevelDetailed:
		q.Detailed = true
	default:
		return Query{}, fmt.Errorf("%w: unsupported level %q", ErrBadQuery, level)
	}

	return q, nil
}

// names collects every value of keys, splitting on commas and dropping
// blanks.
func names(values url.Values, keys ...string) []string {
	var out []string
	for _, key := range keys {
		for _, v := range values[key] {
			for part := range strings.SplitSeq(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
		}
	}
	return out
}
