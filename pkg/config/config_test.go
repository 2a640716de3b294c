package config

import (
	"os"
	"strings"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	os.Unsetenv("CPU_LOW")
	os.Unsetenv("CPU_HIGH")
	os.Unsetenv("MEMORY_LOW")
	os.Unsetenv("MEMORY_HIGH")
	os.Unsetenv("PROMETHEUS_URL")

	cfg := NewConfig()

	if cfg.Thresholds.CPULow != 20 || cfg.Thresholds.CPUHigh != 80 {
		t.Errorf("Expected default CPU thresholds 20/80, got %.0f/%.0f",
			cfg.Thresholds.CPULow, cfg.Thresholds.CPUHigh)
	}

	if cfg.Thresholds.MemoryLow != 30 || cfg.Thresholds.MemoryHigh != 80 {
		t.Errorf("Expected default memory thresholds 30/80, got %.0f/%.0f",
			cfg.Thresholds.MemoryLow, cfg.Thresholds.MemoryHigh)
	}

	if cfg.SavingsRate != 0.30 {
		t.Errorf("Expected savings rate 0.30, got %.2f", cfg.SavingsRate)
	}

	if cfg.PrometheusURL != "http://localhost:9090" {
		t.Errorf("Expected default Prometheus URL, got %s", cfg.PrometheusURL)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got: %v", err)
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	os.Setenv("CPU_LOW", "10")
	os.Setenv("CPU_HIGH", "90")
	os.Setenv("GEMINI_API_KEY", "test-key")
	defer os.Unsetenv("CPU_LOW")
	defer os.Unsetenv("CPU_HIGH")
	defer os.Unsetenv("GEMINI_API_KEY")

	cfg := NewConfig()

	if cfg.Thresholds.CPULow != 10 {
		t.Errorf("Expected CPU_LOW 10 from env, got %.0f", cfg.Thresholds.CPULow)
	}

	if cfg.Thresholds.CPUHigh != 90 {
		t.Errorf("Expected CPU_HIGH 90 from env, got %.0f", cfg.Thresholds.CPUHigh)
	}

	if cfg.GeminiAPIKey != "test-key" {
		t.Errorf("Expected Gemini key from env, got %s", cfg.GeminiAPIKey)
	}
}

func TestInvalidEnvValues(t *testing.T) {
	os.Setenv("CPU_LOW", "invalid")
	defer os.Unsetenv("CPU_LOW")

	cfg := NewConfig()

	// Should fall back to default
	if cfg.Thresholds.CPULow != 20 {
		t.Errorf("Expected fallback to default 20, got %.0f", cfg.Thresholds.CPULow)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name          string
		setupConfig   func(*Config)
		expectError   bool
		errorContains string
	}{
		{
			name:        "valid default config",
			setupConfig: func(c *Config) {},
			expectError: false,
		},
		{
			name: "inverted CPU thresholds",
			setupConfig: func(c *Config) {
				c.Thresholds.CPULow = 90
				c.Thresholds.CPUHigh = 10
			},
			expectError:   true,
			errorContains: "CPU thresholds",
		},
		{
			name: "memory threshold above 100",
			setupConfig: func(c *Config) {
				c.Thresholds.MemoryHigh = 120
			},
			expectError:   true,
			errorContains: "memory thresholds",
		},
		{
			name: "savings rate above 1",
			setupConfig: func(c *Config) {
				c.SavingsRate = 1.5
			},
			expectError:   true,
			errorContains: "savings rate",
		},
		{
			name: "storage enabled without database",
			setupConfig: func(c *Config) {
				c.StorageEnabled = true
				c.DatabaseURL = ""
			},
			expectError:   true,
			errorContains: "DATABASE_URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.setupConfig(cfg)

			err := cfg.Validate()

			if tt.expectError && err == nil {
				t.Errorf("Expected error but got none")
			}

			if !tt.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}

			if tt.expectError && err != nil && !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("Expected error containing '%s', got '%s'", tt.errorContains, err.Error())
			}
		})
	}
}
