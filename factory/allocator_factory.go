package factory

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/opd-ai/framebuffer/interfaces"
	"github.com/opd-ai/framebuffer/limits"
	"github.com/opd-ai/framebuffer/metrics"
	"github.com/opd-ai/framebuffer/real"
	"github.com/opd-ai/framebuffer/testing"
	"github.com/opd-ai/framebuffer/video"
	"github.com/sirupsen/logrus"
)

// Environment variables read by NewAllocatorFactory.
const (
	EnvAllocator       = "FRAMEBUFFER_ALLOCATOR"
	EnvStrideAlignment = "FRAMEBUFFER_STRIDE_ALIGNMENT"
	EnvMaxDimension    = "FRAMEBUFFER_MAX_DIMENSION"
	EnvZeroFill        = "FRAMEBUFFER_ZERO_FILL"
	EnvMetrics         = "FRAMEBUFFER_METRICS"
)

// AllocatorFactory creates allocators and buffer allocators based on configuration.
// It is safe for concurrent use; all methods are protected by an internal mutex.
type AllocatorFactory struct {
	mu            sync.RWMutex
	defaultConfig *interfaces.AllocatorConfig
}

// TestConfigOption is a functional option for customizing test allocator configuration.
type TestConfigOption func(*interfaces.AllocatorConfig)

// NewAllocatorFactory creates a new factory with default configuration and
// FRAMEBUFFER_* environment overrides applied.
func NewAllocatorFactory() *AllocatorFactory {
	defaultConfig := createDefaultConfig()
	applyEnvironmentOverrides(defaultConfig)
	logConfigurationInfo("NewAllocatorFactory", defaultConfig)

	return &AllocatorFactory{
		defaultConfig: defaultConfig,
	}
}

// NewAllocatorFactoryFromFile creates a factory from a YAML configuration file.
// Environment overrides take precedence over the file.
func NewAllocatorFactoryFromFile(path string) (*AllocatorFactory, error) {
	config, err := LoadConfigFile(path)
	if err != nil {
		return nil, err
	}
	applyEnvironmentOverrides(config)
	logConfigurationInfo("NewAllocatorFactoryFromFile", config)

	return &AllocatorFactory{
		defaultConfig: config,
	}, nil
}

// createDefaultConfig initializes the default allocator configuration.
//
// Default Value Rationale:
//   - Kind: pool - steady-state video reuses the same few frame sizes
//   - StrideAlignment: 1 - tightly packed rows, the layout consumers expect from plain I420
//   - MaxDimension: limits.MaxFrameDimension
//   - ZeroFill: false - producers overwrite every visible sample anyway
func createDefaultConfig() *interfaces.AllocatorConfig {
	return interfaces.DefaultAllocatorConfig()
}

// LoadConfigFile reads a YAML allocator configuration. Keys missing from the
// file keep their default values.
//
//	kind: mmap
//	stride_alignment: 64
//	max_dimension: 4096
//	zero_fill: true
//	metrics: true
func LoadConfigFile(path string) (*interfaces.AllocatorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read allocator config: %w", err)
	}

	config := createDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse allocator config %s: %w", path, err)
	}
	config.Kind = strings.ToLower(strings.TrimSpace(config.Kind))
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("allocator config %s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "LoadConfigFile",
		"path":     path,
		"kind":     config.Kind,
	}).Debug("Loaded allocator configuration file")

	return config, nil
}

// applyEnvironmentOverrides updates configuration based on environment variables.
// It checks for FRAMEBUFFER_* environment variables and overrides values if valid ones are found.
func applyEnvironmentOverrides(config *interfaces.AllocatorConfig) {
	parseAllocatorSetting(config)
	parseIntSetting(EnvStrideAlignment, &config.StrideAlignment, 1, limits.MaxStrideAlignment, func(v int) bool {
		return limits.ValidateAlignment(v) == nil
	})
	parseIntSetting(EnvMaxDimension, &config.MaxDimension, limits.MinFrameDimension, limits.MaxFrameDimension, nil)
	parseBoolSetting(EnvZeroFill, &config.ZeroFill)
	parseBoolSetting(EnvMetrics, &config.Metrics)
}

// parseAllocatorSetting updates Kind from FRAMEBUFFER_ALLOCATOR. Unknown kinds
// are logged and ignored.
func parseAllocatorSetting(config *interfaces.AllocatorConfig) {
	kindStr := os.Getenv(EnvAllocator)
	if kindStr == "" {
		return
	}
	kind := strings.ToLower(strings.TrimSpace(kindStr))
	switch kind {
	case interfaces.AllocatorHeap, interfaces.AllocatorPool, interfaces.AllocatorMmap, interfaces.AllocatorTracking:
		config.Kind = kind
	default:
		logrus.WithFields(logrus.Fields{
			"function":    "parseAllocatorSetting",
			"env_var":     EnvAllocator,
			"value":       kindStr,
			"using_value": config.Kind,
		}).Warn("Unknown FRAMEBUFFER_ALLOCATOR value, using default")
	}
}

// parseIntSetting updates *target from an integer environment variable. It
// validates the value is within [lo, hi] and passes check, logging a warning
// and keeping the current value otherwise.
func parseIntSetting(envVar string, target *int, lo, hi int, check func(int) bool) {
	str := os.Getenv(envVar)
	if str == "" {
		return
	}
	value, err := strconv.Atoi(str)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "parseIntSetting",
			"env_var":     envVar,
			"value":       str,
			"error":       err.Error(),
			"using_value": *target,
		}).Warn("Failed to parse environment variable, using default")
		return
	}
	if value < lo || value > hi || (check != nil && !check(value)) {
		logrus.WithFields(logrus.Fields{
			"function":    "parseIntSetting",
			"env_var":     envVar,
			"value":       value,
			"min":         lo,
			"max":         hi,
			"using_value": *target,
		}).Warn("Environment variable value out of bounds, using default")
		return
	}
	*target = value
}

// parseBoolSetting updates *target from a boolean environment variable.
func parseBoolSetting(envVar string, target *bool) {
	str := os.Getenv(envVar)
	if str == "" {
		return
	}
	value, err := strconv.ParseBool(str)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "parseBoolSetting",
			"env_var":     envVar,
			"value":       str,
			"error":       err.Error(),
			"using_value": *target,
		}).Warn("Failed to parse environment variable, using default")
		return
	}
	*target = value
}

// logConfigurationInfo logs the final configuration settings for debugging purposes.
func logConfigurationInfo(function string, config *interfaces.AllocatorConfig) {
	logrus.WithFields(logrus.Fields{
		"function":         function,
		"kind":             config.Kind,
		"stride_alignment": config.StrideAlignment,
		"max_dimension":    config.MaxDimension,
		"zero_fill":        config.ZeroFill,
		"metrics":          config.Metrics,
	}).Info("Created allocator factory with configuration")
}

// CreateAllocator creates a memory allocator based on the current configuration
func (f *AllocatorFactory) CreateAllocator() (interfaces.Allocator, error) {
	return f.CreateAllocatorWithConfig(nil)
}

// CreateAllocatorWithConfig creates a memory allocator with custom configuration.
// A nil config uses the factory default.
func (f *AllocatorFactory) CreateAllocatorWithConfig(config *interfaces.AllocatorConfig) (interfaces.Allocator, error) {
	if config == nil {
		config = f.GetCurrentConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":  "CreateAllocatorWithConfig",
		"kind":      config.Kind,
		"zero_fill": config.ZeroFill,
		"metrics":   config.Metrics,
	}).Info("Creating allocator implementation")

	var alloc interfaces.Allocator
	switch config.Kind {
	case interfaces.AllocatorHeap:
		alloc = real.NewHeapAllocator()
	case interfaces.AllocatorPool:
		alloc = real.NewPoolAllocator(config.ZeroFill)
	case interfaces.AllocatorMmap:
		alloc = real.NewMmapAllocator()
	case interfaces.AllocatorTracking:
		alloc = testing.NewTrackingAllocator(real.NewHeapAllocator())
	default:
		return nil, fmt.Errorf("%w: %q", interfaces.ErrInvalidAllocatorKind, config.Kind)
	}

	if config.Metrics {
		alloc = metrics.Instrument(alloc)
	}
	return alloc, nil
}

// CreateBufferAllocator creates a video.BufferAllocator using the current configuration
func (f *AllocatorFactory) CreateBufferAllocator() (*video.BufferAllocator, error) {
	return f.CreateBufferAllocatorWithConfig(nil)
}

// CreateBufferAllocatorWithConfig creates a video.BufferAllocator with custom configuration.
func (f *AllocatorFactory) CreateBufferAllocatorWithConfig(config *interfaces.AllocatorConfig) (*video.BufferAllocator, error) {
	if config == nil {
		config = f.GetCurrentConfig()
	}
	alloc, err := f.CreateAllocatorWithConfig(config)
	if err != nil {
		return nil, err
	}
	return video.NewBufferAllocator(alloc,
		video.WithStrideAlignment(config.StrideAlignment),
		video.WithMaxDimension(config.MaxDimension),
	)
}

// InstallDefault makes a buffer allocator built from the current configuration
// the video package default and returns the one it replaced.
func (f *AllocatorFactory) InstallDefault() (*video.BufferAllocator, error) {
	ba, err := f.CreateBufferAllocator()
	if err != nil {
		return nil, err
	}
	prev := video.SetDefaultAllocator(ba)

	logrus.WithFields(logrus.Fields{
		"function":  "InstallDefault",
		"allocator": ba.Allocator().Name(),
	}).Info("Installed default buffer allocator")

	return prev, nil
}

// WithStrideAlignment sets a custom stride alignment for the test configuration.
func WithStrideAlignment(alignment int) TestConfigOption {
	return func(c *interfaces.AllocatorConfig) {
		c.StrideAlignment = alignment
	}
}

// WithMaxDimension sets a custom max dimension for the test configuration.
func WithMaxDimension(maxDimension int) TestConfigOption {
	return func(c *interfaces.AllocatorConfig) {
		c.MaxDimension = maxDimension
	}
}

// CreateTrackingForTesting creates a buffer allocator backed by a tracking
// allocator, returning both so tests can assert on leaks.
// Default test configuration uses: StrideAlignment=1, MaxDimension=limits.MaxFrameDimension.
func (f *AllocatorFactory) CreateTrackingForTesting(opts ...TestConfigOption) (*video.BufferAllocator, *testing.TrackingAllocator, error) {
	testConfig := &interfaces.AllocatorConfig{
		Kind:            interfaces.AllocatorTracking,
		StrideAlignment: limits.DefaultStrideAlignment,
		MaxDimension:    limits.MaxFrameDimension,
	}

	// Apply optional overrides
	for _, opt := range opts {
		opt(testConfig)
	}
	if err := testConfig.Validate(); err != nil {
		return nil, nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":         "CreateTrackingForTesting",
		"stride_alignment": testConfig.StrideAlignment,
		"max_dimension":    testConfig.MaxDimension,
	}).Info("Creating tracking allocator for testing")

	tracker := testing.NewTrackingAllocator(real.NewHeapAllocator())
	ba, err := video.NewBufferAllocator(tracker,
		video.WithStrideAlignment(testConfig.StrideAlignment),
		video.WithMaxDimension(testConfig.MaxDimension),
	)
	if err != nil {
		return nil, nil, err
	}
	return ba, tracker, nil
}

// GetCurrentConfig returns a copy of the current default configuration
func (f *AllocatorFactory) GetCurrentConfig() *interfaces.AllocatorConfig {
	f.mu.RLock()
	defer f.mu.RUnlock()

	c := *f.defaultConfig
	return &c
}

// UpdateConfig validates config and makes it the factory's default configuration
func (f *AllocatorFactory) UpdateConfig(config *interfaces.AllocatorConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "UpdateConfig",
		"old_kind": f.defaultConfig.Kind,
		"new_kind": config.Kind,
	}).Info("Updating factory configuration")

	c := *config
	f.defaultConfig = &c

	return nil
}
