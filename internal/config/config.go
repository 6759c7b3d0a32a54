package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dshills/scrollarea/internal/config/loader"
	"github.com/dshills/scrollarea/internal/logging"
	"github.com/dshills/scrollarea/internal/renderer"
	"github.com/dshills/scrollarea/internal/renderer/core"
	"github.com/dshills/scrollarea/internal/scrollarea"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "SCROLLVIEW_"

// ScrollAreaConfig tunes the scroll area.
type ScrollAreaConfig struct {
	Threshold     scrollarea.OverflowEdgeThreshold
	ScrollTimeout time.Duration

	// MinThumbSize is in cells.
	MinThumbSize float64
	KeepMounted  bool
	Direction    scrollarea.Direction

	// AutoHide draws the tracks only while hovering or scrolling.
	AutoHide bool
}

// ThemeConfig holds "#rrggbb" colors for the scroll area chrome. Empty
// entries keep the built-in theme.
type ThemeConfig struct {
	Track       string
	Thumb       string
	ThumbActive string
	Corner      string
	Edge        string
}

// LoggingConfig selects the log level and destination. An empty File
// discards log output, since stderr is the terminal being drawn on.
type LoggingConfig struct {
	Level string
	File  string
}

// SessionConfig controls persistence of scroll offsets between runs.
type SessionConfig struct {
	Enabled bool
	Path    string
}

// Config is the typed configuration of the pager.
type Config struct {
	ScrollArea ScrollAreaConfig
	Theme      ThemeConfig
	Logging    LoggingConfig
	Session    SessionConfig

	// Source is the file the configuration was read from, if any.
	Source string
}

// Default returns the built-in configuration.
func Default() *Config {
	c, _ := decode(defaultMap())
	return c
}

func defaultMap() map[string]any {
	return map[string]any{
		"scroll_area": map[string]any{
			"overflow_edge_threshold": int64(0),
			"scroll_timeout":          scrollarea.ScrollTimeout.String(),
			"min_thumb_size":          int64(1),
			"keep_mounted":            false,
			"direction":               "ltr",
			"auto_hide":               false,
		},
		"theme": map[string]any{},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
		"session": map[string]any{
			"enabled": true,
			"path":    "",
		},
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs  loader.FileSystem
	env func(string) (string, bool)
}

// WithFS reads configuration files from fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) { o.fs = fsys }
}

// WithEnv reads overrides through lookup instead of the process
// environment.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(o *options) { o.env = lookup }
}

// Load builds the configuration from the defaults, the file at path (TOML
// or YAML by extension, skipped when path is empty or the file is
// missing) and the SCROLLVIEW_ environment overrides, then validates it.
func Load(path string, opts ...Option) (*Config, error) {
	o := options{fs: loader.DefaultFS()}
	for _, opt := range opts {
		opt(&o)
	}

	merged := defaultMap()
	if path != "" {
		l, err := loader.ForPath(o.fs, path)
		if err != nil {
			return nil, err
		}
		file, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, file)
	}

	env := loader.NewEnvLoader(EnvPrefix)
	if o.env != nil {
		env = loader.NewEnvLoaderWithLookup(EnvPrefix, o.env)
	}
	overrides, err := env.Load()
	if err != nil {
		return nil, err
	}
	merged = loader.DeepMerge(merged, overrides)

	c, err := decode(merged)
	if err != nil {
		return nil, err
	}
	c.Source = path
	return c, nil
}

// decoder reads typed values out of the merged map and collects every
// type error instead of stopping at the first.
type decoder struct {
	m    map[string]any
	errs ValidationErrors
}

func (d *decoder) fail(code ValidationErrorCode, path string, v any, format string, args ...any) {
	d.errs = append(d.errs, &ValidationError{
		Path:    path,
		Value:   v,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

func (d *decoder) str(path string) string {
	v, ok := loader.Lookup(d.m, path)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.fail(ErrCodeTypeMismatch, path, v, "expected string, got %s", typeName(v))
	}
	return s
}

func (d *decoder) boolean(path string) bool {
	v, ok := loader.Lookup(d.m, path)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		d.fail(ErrCodeTypeMismatch, path, v, "expected bool, got %s", typeName(v))
	}
	return b
}

func (d *decoder) number(path string) float64 {
	v, ok := loader.Lookup(d.m, path)
	if !ok {
		return 0
	}
	f, ok := toFloat(v)
	if !ok {
		d.fail(ErrCodeTypeMismatch, path, v, "expected number, got %s", typeName(v))
	}
	return f
}

func (d *decoder) duration(path string) time.Duration {
	v, ok := loader.Lookup(d.m, path)
	if !ok {
		return 0
	}
	switch x := v.(type) {
	case string:
		dur, err := time.ParseDuration(x)
		if err != nil {
			d.fail(ErrCodeTypeMismatch, path, v, "invalid duration: %v", err)
		}
		return dur
	case int64:
		return time.Duration(x) * time.Millisecond
	}
	d.fail(ErrCodeTypeMismatch, path, v, "expected duration string or milliseconds, got %s", typeName(v))
	return 0
}

// threshold accepts a single number for all four edges or a table with
// x_start, x_end, y_start and y_end.
func (d *decoder) threshold(path string) scrollarea.OverflowEdgeThreshold {
	v, ok := loader.Lookup(d.m, path)
	if !ok {
		return scrollarea.OverflowEdgeThreshold{}
	}
	if f, ok := toFloat(v); ok {
		return scrollarea.UniformThreshold(f)
	}
	if _, ok := v.(map[string]any); !ok {
		d.fail(ErrCodeTypeMismatch, path, v, "expected number or table, got %s", typeName(v))
		return scrollarea.OverflowEdgeThreshold{}
	}
	t := scrollarea.OverflowEdgeThreshold{
		XStart: d.number(path + ".x_start"),
		XEnd:   d.number(path + ".x_end"),
		YStart: d.number(path + ".y_start"),
		YEnd:   d.number(path + ".y_end"),
	}
	return t.Normalize()
}

func decode(m map[string]any) (*Config, error) {
	d := &decoder{m: m}
	c := &Config{
		ScrollArea: ScrollAreaConfig{
			Threshold:     d.threshold("scroll_area.overflow_edge_threshold"),
			ScrollTimeout: d.duration("scroll_area.scroll_timeout"),
			MinThumbSize:  d.number("scroll_area.min_thumb_size"),
			KeepMounted:   d.boolean("scroll_area.keep_mounted"),
			AutoHide:      d.boolean("scroll_area.auto_hide"),
		},
		Theme: ThemeConfig{
			Track:       d.str("theme.track"),
			Thumb:       d.str("theme.thumb"),
			ThumbActive: d.str("theme.thumb_active"),
			Corner:      d.str("theme.corner"),
			Edge:        d.str("theme.edge"),
		},
		Logging: LoggingConfig{
			Level: d.str("logging.level"),
			File:  d.str("logging.file"),
		},
		Session: SessionConfig{
			Enabled: d.boolean("session.enabled"),
			Path:    d.str("session.path"),
		},
	}

	switch dir := strings.ToLower(d.str("scroll_area.direction")); dir {
	case "", "ltr":
		c.ScrollArea.Direction = scrollarea.LTR
	case "rtl":
		c.ScrollArea.Direction = scrollarea.RTL
	default:
		d.fail(ErrCodeInvalidEnum, "scroll_area.direction", dir, "must be ltr or rtl")
	}

	c.validate(d)
	if len(d.errs) > 0 {
		return c, d.errs
	}
	return c, nil
}

func (c *Config) validate(d *decoder) {
	if c.ScrollArea.ScrollTimeout < 0 {
		d.fail(ErrCodeOutOfRange, "scroll_area.scroll_timeout", c.ScrollArea.ScrollTimeout, "must not be negative")
	}
	if c.ScrollArea.MinThumbSize < 0 || math.IsNaN(c.ScrollArea.MinThumbSize) {
		d.fail(ErrCodeOutOfRange, "scroll_area.min_thumb_size", c.ScrollArea.MinThumbSize, "must not be negative")
	}
	if !logging.ValidLevel(c.Logging.Level) {
		d.fail(ErrCodeInvalidEnum, "logging.level", c.Logging.Level, "unknown level")
	}
	colors := map[string]string{
		"theme.track":        c.Theme.Track,
		"theme.thumb":        c.Theme.Thumb,
		"theme.thumb_active": c.Theme.ThumbActive,
		"theme.corner":       c.Theme.Corner,
		"theme.edge":         c.Theme.Edge,
	}
	for _, path := range sortedKeys(colors) {
		if v := colors[path]; v != "" {
			if _, err := core.ParseColor(v); err != nil {
				d.fail(ErrCodePatternMismatch, path, v, "invalid color: %v", err)
			}
		}
	}
}

// Errors unwraps a Load error into its validation failures.
func Errors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Logging.Level)
}

// RendererTheme applies the configured colors over base. Colors are
// validated by Load, so parse failures leave base untouched.
func (c *Config) RendererTheme(base renderer.Theme) renderer.Theme {
	fg := func(s *core.Style, hex string) {
		if col, err := core.ParseColor(hex); err == nil && hex != "" {
			*s = s.WithForeground(col)
		}
	}
	fg(&base.Track, c.Theme.Track)
	fg(&base.Thumb, c.Theme.Thumb)
	fg(&base.ThumbActive, c.Theme.ThumbActive)
	fg(&base.Edge, c.Theme.Edge)
	if col, err := core.ParseColor(c.Theme.Corner); err == nil && c.Theme.Corner != "" {
		base.Corner = base.Corner.WithBackground(col)
	}
	base.AutoHide = c.ScrollArea.AutoHide
	return base
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64, float64:
		return "number"
	case map[string]any:
		return "table"
	case []any:
		return "array"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", v)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
