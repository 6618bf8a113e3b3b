// Package config resolves MAGDS's configuration through the same
// four-level hierarchy qubicDB-qubicdb's pkg/core/brain.go uses — built-in
// defaults, overlaid by an optional YAML file, overlaid by MAGDS_*
// environment variables, overlaid by explicit CLI-flag overrides — trimmed
// to what a single-threaded in-memory engine actually needs: no network
// listeners, no storage paths.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EngineConfig groups the activation engine's tunables.
type EngineConfig struct {
	// HorizontalEpsilon is the horizontal-propagation cutoff (spec.md
	// §4.3.3, Open Question 1). It is resolved and validated here only:
	// the epsilon the engine uses is the argument passed to
	// Store.SensorActivate, and pkg/predict passes 0 with horizontal
	// propagation off.
	HorizontalEpsilon float64 `yaml:"horizontalEpsilon"`

	// DefaultFeatureWeight is resolved and validated here only; Predict
	// does not read it and always weights every feature 1.0.
	DefaultFeatureWeight float32 `yaml:"defaultFeatureWeight"`

	// MaxNeurons is resolved and validated here only; Store.Ingest does
	// not read it and creates one object neuron per row without a cap.
	MaxNeurons int `yaml:"maxNeurons"`
}

// IngestConfig groups the CSV adapter's null handling and type-inference
// tunables.
type IngestConfig struct {
	// NullTokens are the raw field values treated as "no value".
	NullTokens []string `yaml:"nullTokens"`

	// InferenceSampleSize caps how many non-null rows are sampled to
	// infer a column's ScalarTag.
	InferenceSampleSize int `yaml:"inferenceSampleSize"`
}

// MCPConfig groups the MCP tool server's exposure and rate-limit settings.
type MCPConfig struct {
	// Enabled is resolved through every configuration layer, but the
	// serve-mcp command does not read it: that command starts the MCP
	// tool server whenever it is run.
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP route for MCP transport.
	Path string `yaml:"path"`

	// RateLimitRPS controls per-client rate limiting in requests/second.
	// 0 disables MCP rate limiting.
	RateLimitRPS float64 `yaml:"rateLimitRPS"`

	// RateLimitBurst controls burst capacity for MCP rate limiting.
	RateLimitBurst int `yaml:"rateLimitBurst"`
}

// Config is the root configuration object for a MAGDS process.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Ingest IngestConfig `yaml:"ingest"`
	MCP    MCPConfig    `yaml:"mcp"`
}

// DefaultConfig returns a Config populated with sane defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			HorizontalEpsilon:    0.01,
			DefaultFeatureWeight: 1.0,
			MaxNeurons:           1_000_000,
		},
		Ingest: IngestConfig{
			NullTokens:          []string{"", "NA", "NaN", "null"},
			InferenceSampleSize: 50,
		},
		MCP: MCPConfig{
			Enabled:        false,
			Path:           "/mcp",
			RateLimitRPS:   30,
			RateLimitBurst: 60,
		},
	}
}

// ConfigFromFile reads a YAML configuration file and merges it on top of
// the built-in defaults. Fields absent from the file retain their
// defaults.
func ConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// ConfigFromEnv applies MAGDS_* environment variable overrides to cfg. If
// cfg is nil a new default Config is created first.
//
//	MAGDS_HORIZONTAL_EPSILON      → Engine.HorizontalEpsilon
//	MAGDS_DEFAULT_FEATURE_WEIGHT  → Engine.DefaultFeatureWeight
//	MAGDS_MAX_NEURONS             → Engine.MaxNeurons
//	MAGDS_NULL_TOKENS             → Ingest.NullTokens (comma-separated)
//	MAGDS_INFERENCE_SAMPLE_SIZE   → Ingest.InferenceSampleSize
//	MAGDS_MCP_ENABLED             → MCP.Enabled       ("true"/"false")
//	MAGDS_MCP_PATH                → MCP.Path
//	MAGDS_MCP_RATE_LIMIT_RPS      → MCP.RateLimitRPS  (float)
//	MAGDS_MCP_RATE_LIMIT_BURST    → MCP.RateLimitBurst (integer)
func ConfigFromEnv(cfg *Config) *Config {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	setEnvFloat("MAGDS_HORIZONTAL_EPSILON", &cfg.Engine.HorizontalEpsilon)
	setEnvFloat32("MAGDS_DEFAULT_FEATURE_WEIGHT", &cfg.Engine.DefaultFeatureWeight)
	setEnvInt("MAGDS_MAX_NEURONS", &cfg.Engine.MaxNeurons)

	setEnvCSV("MAGDS_NULL_TOKENS", &cfg.Ingest.NullTokens)
	setEnvInt("MAGDS_INFERENCE_SAMPLE_SIZE", &cfg.Ingest.InferenceSampleSize)

	setEnvBool("MAGDS_MCP_ENABLED", &cfg.MCP.Enabled)
	setEnvStr("MAGDS_MCP_PATH", &cfg.MCP.Path)
	setEnvFloat("MAGDS_MCP_RATE_LIMIT_RPS", &cfg.MCP.RateLimitRPS)
	setEnvInt("MAGDS_MCP_RATE_LIMIT_BURST", &cfg.MCP.RateLimitBurst)

	return cfg
}

// LoadConfig implements the full four-level configuration hierarchy:
//  1. Start with built-in defaults.
//  2. If configPath is non-empty, overlay the YAML file.
//  3. Apply MAGDS_* environment variable overrides.
//  4. The caller may then apply CLIOverrides via ApplyCLIOverrides.
func LoadConfig(configPath string) (*Config, error) {
	var cfg *Config

	if configPath != "" {
		var err error
		cfg, err = ConfigFromFile(configPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = DefaultConfig()
	}

	cfg = ConfigFromEnv(cfg)
	return cfg, nil
}

// Validate performs structural validation of the entire configuration,
// checked in the same top-to-bottom order as the struct, returning a
// descriptive error for the first invalid field encountered.
func (c *Config) Validate() error {
	if c.Engine.HorizontalEpsilon < 0 {
		return fmt.Errorf("engine.horizontalEpsilon must be >= 0, got %f", c.Engine.HorizontalEpsilon)
	}
	if c.Engine.DefaultFeatureWeight <= 0 {
		return fmt.Errorf("engine.defaultFeatureWeight must be > 0, got %f", c.Engine.DefaultFeatureWeight)
	}
	if c.Engine.MaxNeurons < 1 {
		return fmt.Errorf("engine.maxNeurons must be >= 1, got %d", c.Engine.MaxNeurons)
	}

	if c.Ingest.InferenceSampleSize < 0 {
		return fmt.Errorf("ingest.inferenceSampleSize must be >= 0, got %d", c.Ingest.InferenceSampleSize)
	}

	mcpPath := strings.TrimSpace(c.MCP.Path)
	if mcpPath == "" {
		mcpPath = "/mcp"
	}
	if !strings.HasPrefix(mcpPath, "/") {
		return fmt.Errorf("mcp.path must start with '/'")
	}
	c.MCP.Path = mcpPath
	if c.MCP.RateLimitRPS < 0 {
		return fmt.Errorf("mcp.rateLimitRPS must be >= 0")
	}
	if c.MCP.RateLimitBurst < 0 {
		return fmt.Errorf("mcp.rateLimitBurst must be >= 0")
	}

	return nil
}

// ---------------------------------------------------------------------------
// Environment variable helpers, copied in spirit from qubicDB-qubicdb's
// pkg/core/brain.go.
// ---------------------------------------------------------------------------

func setEnvStr(key string, target *string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func setEnvBool(key string, target *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*target = b
		}
	}
}

func setEnvInt(key string, target *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}

func setEnvFloat(key string, target *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*target = f
		}
	}
}

func setEnvFloat32(key string, target *float32) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			*target = float32(f)
		}
	}
}

func setEnvCSV(key string, target *[]string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		*target = out
	}
}

// ---------------------------------------------------------------------------
// CLI flag overrides — final layer of the configuration hierarchy.
// ---------------------------------------------------------------------------

// CLIOverrides carries optional values set via command-line flags.
// Pointer fields are nil when the flag was not explicitly provided,
// distinguishing "not set" from the zero value.
type CLIOverrides struct {
	HorizontalEpsilon    *float64
	DefaultFeatureWeight *float32
	MaxNeurons           *int
	InferenceSampleSize  *int
	MCPEnabled           *bool
	MCPPath              *string
	MCPRateLimitRPS      *float64
	MCPRateLimitBurst    *int
}

// ApplyCLIOverrides patches cfg with any explicitly-set CLI flags, leaving
// every other field at whatever the earlier hierarchy layers resolved.
func (c *Config) ApplyCLIOverrides(o *CLIOverrides) {
	if o == nil {
		return
	}
	if o.HorizontalEpsilon != nil {
		c.Engine.HorizontalEpsilon = *o.HorizontalEpsilon
	}
	if o.DefaultFeatureWeight != nil {
		c.Engine.DefaultFeatureWeight = *o.DefaultFeatureWeight
	}
	if o.MaxNeurons != nil {
		c.Engine.MaxNeurons = *o.MaxNeurons
	}
	if o.InferenceSampleSize != nil {
		c.Ingest.InferenceSampleSize = *o.InferenceSampleSize
	}
	if o.MCPEnabled != nil {
		c.MCP.Enabled = *o.MCPEnabled
	}
	if o.MCPPath != nil {
		c.MCP.Path = *o.MCPPath
	}
	if o.MCPRateLimitRPS != nil {
		c.MCP.RateLimitRPS = *o.MCPRateLimitRPS
	}
	if o.MCPRateLimitBurst != nil {
		c.MCP.RateLimitBurst = *o.MCPRateLimitBurst
	}
}

// ToIngestOptions converts IngestConfig into pkg/ingest.Options' shape.
// Defined here (rather than in pkg/ingest) to avoid pkg/ingest depending
// on pkg/config.
func (c IngestConfig) ToIngestOptions() (nullTokens []string, inferenceSampleSize int) {
	return c.NullTokens, c.InferenceSampleSize
}
