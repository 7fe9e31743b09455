// Package rconfig loads the Processor's runtime configuration from YAML,
// grounded on funvibe-funxy's internal/ext.LoadConfig/ParseConfig
// (read file, yaml.Unmarshal, validate, fill defaults) and validated the
// way broady-tygor validates its own request structs: struct tags read
// by a shared *validator.Validate instance rather than hand-rolled field
// checks.
package rconfig

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// CachePolicy holds cache settings for Processor.ResolveRuntimeType's
// memoization (spec.md §4.1.6/§5). Parse validates it; no code in this
// module reads it, so it does not change how a Processor caches.
type CachePolicy struct {
	// Enabled is the configured on/off switch for cache reuse.
	Enabled bool `yaml:"enabled"`
	// MaxEntries is the configured bound on cached carriers; 0 means
	// unbounded, and a negative value is rejected by Parse.
	MaxEntries int `yaml:"maxEntries" validate:"gte=0"`
}

// DecoratorToggle names one of the intersection decorators (§4.2/§6.4,
// `types.DecoratorRegistry`) together with an on/off flag for it.
type DecoratorToggle struct {
	Name    string `yaml:"name" validate:"required"`
	Enabled bool   `yaml:"enabled"`
}

// ProcessorConfig is the top-level `reflectdump`/`reflectd` config file
// shape (spec.md's AMBIENT STACK "Configuration" section).
type ProcessorConfig struct {
	// Cache configures §4.1.6's opt-in memoization.
	Cache CachePolicy `yaml:"cache"`
	// Decorators lists decorator toggles; Parse validates each entry, and
	// no code in this module applies them to a DecoratorRegistry.
	Decorators []DecoratorToggle `yaml:"decorators"`
	// HistoryPath names a pkg/diagnostics SQLite invocation log; no code
	// in this module reads it (reflectdump takes its log path as a flag).
	HistoryPath string `yaml:"historyPath"`
	// ListenAddr is cmd/reflectd's gRPC bind address.
	ListenAddr string `yaml:"listenAddr" validate:"omitempty,hostname_port"`
}

// Default returns the zero-config baseline: caching on, no history log,
// bound to localhost.
func Default() ProcessorConfig {
	return ProcessorConfig{
		Cache:      CachePolicy{Enabled: true, MaxEntries: 0},
		ListenAddr: "127.0.0.1:7433",
	}
}

// Load reads and parses path, applying defaults for anything the file
// omits and rejecting an invalid configuration outright — mirroring
// internal/ext.LoadConfig's read-then-validate-then-default order,
// except defaults are seeded before unmarshal here so a partial YAML
// document layers on top of Default() instead of a zero value.
func Load(path string) (ProcessorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProcessorConfig{}, fmt.Errorf("rconfig: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes.
func Parse(data []byte) (ProcessorConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ProcessorConfig{}, fmt.Errorf("rconfig: parsing config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return ProcessorConfig{}, fmt.Errorf("rconfig: invalid config: %w", err)
	}
	for _, d := range cfg.Decorators {
		if err := validate.Struct(d); err != nil {
			return ProcessorConfig{}, fmt.Errorf("rconfig: invalid decorator toggle: %w", err)
		}
	}
	return cfg, nil
}

// ValidateOptions runs the same shared validator over reflectvm's public
// options struct, per SPEC_FULL's "validates ProcessorConfig and
// reflectvm.Options after decode" — kept here rather than in
// pkg/reflectvm so that package has no reason to import a validation
// library for a struct with a single bool field.
func ValidateOptions(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("rconfig: invalid options: %w", err)
	}
	return nil
}
