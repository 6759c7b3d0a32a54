package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader maps environment variables onto configuration paths.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a loader for variables starting with prefix, which
// includes the trailing underscore, e.g. "SCROLLVIEW_".
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, mapping: defaultEnvMapping(), lookup: os.LookupEnv}
}

// NewEnvLoaderWithLookup creates a loader reading variables through
// lookup instead of the process environment.
func NewEnvLoaderWithLookup(prefix string, lookup func(string) (string, bool)) *EnvLoader {
	l := NewEnvLoader(prefix)
	l.lookup = lookup
	return l
}

// defaultEnvMapping lists variable suffixes and the path each sets.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"THRESHOLD":       "scroll_area.overflow_edge_threshold",
		"SCROLL_TIMEOUT":  "scroll_area.scroll_timeout",
		"MIN_THUMB_SIZE":  "scroll_area.min_thumb_size",
		"KEEP_MOUNTED":    "scroll_area.keep_mounted",
		"DIRECTION":       "scroll_area.direction",
		"AUTO_HIDE":       "scroll_area.auto_hide",
		"LOG_LEVEL":       "logging.level",
		"LOG_FILE":        "logging.file",
		"SESSION_ENABLED": "session.enabled",
		"SESSION_PATH":    "session.path",
	}
}

// AddMapping maps prefix+suffix onto path.
func (l *EnvLoader) AddMapping(suffix, path string) {
	l.mapping[suffix] = path
}

// Load implements Loader. Empty values count as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	out := make(map[string]any)
	for suffix, path := range l.mapping {
		if v, ok := l.lookup(l.prefix + suffix); ok {
			setPath(out, path, parseValue(v))
		}
	}
	return out, nil
}

// parseValue guesses the type of an environment value. Durations stay
// strings; package config parses them where a duration is expected.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}
