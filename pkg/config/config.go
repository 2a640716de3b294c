package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Thresholds holds the utilization boundaries the classifier compares
// snapshots against. All values are percentages.
type Thresholds struct {
	CPULow     float64
	CPUHigh    float64
	MemoryLow  float64
	MemoryHigh float64
}

// Config holds application configuration
type Config struct {
	// Classification
	Thresholds Thresholds

	// Savings estimate
	SavingsRate         float64 // fraction of cost recoverable per idle VM
	SavingsCPUThreshold float64
	SavingsMemThreshold float64

	// Collection
	Provider      string
	Region        string
	Subscription  string
	Project       string
	PrometheusURL string

	// Enhancer
	GeminiAPIKey    string
	GeminiModel     string
	EnhancerTimeout time.Duration

	// Storage
	StorageEnabled bool
	DatabaseURL    string

	// Output
	OutputFormat string // text, json, csv
	Verbose      bool
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		Thresholds: Thresholds{
			CPULow:     getEnvFloat("CPU_LOW", 20),
			CPUHigh:    getEnvFloat("CPU_HIGH", 80),
			MemoryLow:  getEnvFloat("MEMORY_LOW", 30),
			MemoryHigh: getEnvFloat("MEMORY_HIGH", 80),
		},
		SavingsRate:         0.30,
		SavingsCPUThreshold: 30,
		SavingsMemThreshold: 30,
		Provider:            getEnv("CLOUD_PROVIDER", "aws"),
		Region:              getEnv("CLOUD_REGION", "us-east-1"),
		Subscription:        getEnv("AZURE_SUBSCRIPTION_ID", ""),
		Project:             getEnv("GCP_PROJECT_ID", ""),
		PrometheusURL:       getEnv("PROMETHEUS_URL", "http://localhost:9090"),
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		GeminiModel:         getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		EnhancerTimeout:     30 * time.Second,
		StorageEnabled:      getEnvBool("STORAGE_ENABLED", false),
		DatabaseURL:         getEnv("DATABASE_URL", "host=localhost port=5432 user=costuser password=devpassword dbname=vmoptimizer sslmode=disable"),
		OutputFormat:        "text",
		Verbose:             false,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	t := c.Thresholds
	if t.CPULow < 0 || t.CPUHigh > 100 || t.CPULow >= t.CPUHigh {
		return fmt.Errorf("CPU thresholds must satisfy 0 <= low < high <= 100, got %.0f/%.0f", t.CPULow, t.CPUHigh)
	}
	if t.MemoryLow < 0 || t.MemoryHigh > 100 || t.MemoryLow >= t.MemoryHigh {
		return fmt.Errorf("memory thresholds must satisfy 0 <= low < high <= 100, got %.0f/%.0f", t.MemoryLow, t.MemoryHigh)
	}
	if c.SavingsRate < 0 || c.SavingsRate > 1 {
		return fmt.Errorf("savings rate must be in [0,1], got %.2f", c.SavingsRate)
	}
	if c.StorageEnabled && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set when storage is enabled")
	}
	if c.EnhancerTimeout < time.Second {
		return fmt.Errorf("enhancer timeout must be at least 1s")
	}
	return nil
}
