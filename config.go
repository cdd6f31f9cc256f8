package ecs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options configures a World at construction time.
type Options struct {
	logger    Logger
	loggerSet bool

	// InitialEntityCapacity hints how many entity slots to reserve up
	// front. Zero means no pre-allocation.
	InitialEntityCapacity int `yaml:"initialEntityCapacity"`

	// QueryCacheEnabled toggles the query result cache. Disabling it
	// is occasionally useful for diffing against a full rescan.
	QueryCacheEnabled bool `yaml:"queryCacheEnabled"`

	// TrackChanges enables the per-component added/removed/changed
	// bookkeeping described in the change tracking module. Off by
	// default since most worlds don't need it.
	TrackChanges bool `yaml:"trackChanges"`

	// Debug enables warnings on undefined-behavior boundaries: direct
	// mutators on a dead entity, duplicate system registration, and
	// similar silent no-ops.
	Debug bool `yaml:"debug"`
}

func defaultOptions() Options {
	return Options{
		logger:            noopLogger{},
		QueryCacheEnabled: true,
	}
}

// Option mutates Options at World construction time.
type Option func(*Options)

// WithLogger configures the world's diagnostic logger. Set explicitly,
// this overrides the zap logger WithDebug(true) would otherwise wire
// in by default.
func WithLogger(l Logger) Option {
	return func(o *Options) { o.logger = l; o.loggerSet = true }
}

// WithInitialEntityCapacity hints the entity registry's starting size.
func WithInitialEntityCapacity(n int) Option {
	return func(o *Options) { o.InitialEntityCapacity = n }
}

// WithQueryCacheEnabled toggles the query result cache.
func WithQueryCacheEnabled(enabled bool) Option {
	return func(o *Options) { o.QueryCacheEnabled = enabled }
}

// WithTrackChanges enables per-component added/removed/changed sets.
func WithTrackChanges(enabled bool) Option {
	return func(o *Options) { o.TrackChanges = enabled }
}

// WithDebug enables warnings on undefined-behavior boundaries.
func WithDebug(enabled bool) Option {
	return func(o *Options) { o.Debug = enabled }
}

// LoadOptionsFile reads a YAML document at path into an Options value,
// suitable for passing on as WithInitialEntityCapacity/WithQueryCacheEnabled.
func LoadOptionsFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("ecs: read options file: %w", err)
	}
	return LoadOptions(data)
}

// LoadOptions decodes a YAML document into an Options value.
func LoadOptions(data []byte) (Options, error) {
	opts := defaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("ecs: decode options: %w", err)
	}
	return opts, nil
}
