package config

import (
	"os"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig should validate, got: %v", err)
	}
}

func TestValidateRejectsBadMCPPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MCP.Path = "mcp"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for a path missing a leading slash")
	}
}

func TestValidateRejectsNonPositiveFeatureWeight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.DefaultFeatureWeight = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero DefaultFeatureWeight")
	}
}

func TestConfigFromEnvOverridesDefaults(t *testing.T) {
	os.Setenv("MAGDS_HORIZONTAL_EPSILON", "0.25")
	os.Setenv("MAGDS_MCP_ENABLED", "true")
	defer os.Unsetenv("MAGDS_HORIZONTAL_EPSILON")
	defer os.Unsetenv("MAGDS_MCP_ENABLED")

	cfg := ConfigFromEnv(nil)
	if cfg.Engine.HorizontalEpsilon != 0.25 {
		t.Errorf("HorizontalEpsilon = %v, want 0.25", cfg.Engine.HorizontalEpsilon)
	}
	if !cfg.MCP.Enabled {
		t.Error("MCP.Enabled should be true from env")
	}
}

func TestApplyCLIOverridesOnlyTouchesSetFields(t *testing.T) {
	cfg := DefaultConfig()
	originalWeight := cfg.Engine.DefaultFeatureWeight

	epsilon := 0.5
	cfg.ApplyCLIOverrides(&CLIOverrides{HorizontalEpsilon: &epsilon})

	if cfg.Engine.HorizontalEpsilon != 0.5 {
		t.Errorf("HorizontalEpsilon = %v, want 0.5", cfg.Engine.HorizontalEpsilon)
	}
	if cfg.Engine.DefaultFeatureWeight != originalWeight {
		t.Errorf("DefaultFeatureWeight should be untouched, got %v", cfg.Engine.DefaultFeatureWeight)
	}
}
