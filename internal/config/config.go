package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all photon tool configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// SDK reconciliation
	SDK SDKConfig `yaml:"sdk"`

	// Shader compilation
	Shaders ShadersConfig `yaml:"shaders"`

	// Workspace setup steps run after reconciliation
	Setup SetupConfig `yaml:"setup"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "photon",
		Version: "0.1.0",

		SDK: SDKConfig{
			EnvVar:          "VULKAN_SDK",
			RequiredVersion: "1.3.",
			InstallVersion:  "1.3.261.1",
			Product:         "VulkanSDK",
			DownloadHost:    "sdk.lunarg.com",
			VendorDir:       "Photon/vendor/Vulkan",
			DebugLibrary:    "Lib/shaderc_sharedd.lib",
		},

		Shaders: ShadersConfig{
			Parallelism:    1,
			MaxOutputBytes: 10 * 1024 * 1024,
		},

		Setup: SetupConfig{
			Submodules: true,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultConfigPath returns the config file location inside a workspace.
func DefaultConfigPath(workspace string) string {
	return filepath.Join(workspace, ".photon", "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Missing file means defaults
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("PHOTON_SDK_HOST"); host != "" {
		c.SDK.DownloadHost = host
	}
	if level := os.Getenv("PHOTON_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if p := os.Getenv("PHOTON_SHADER_PARALLELISM"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			c.Shaders.Parallelism = n
		}
	}
}

// ValidLogLevels lists the accepted logging.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.SDK.EnvVar == "" {
		return fmt.Errorf("sdk.env_var must not be empty")
	}
	if c.SDK.RequiredVersion == "" {
		return fmt.Errorf("sdk.required_version must not be empty")
	}
	if c.SDK.InstallVersion == "" {
		return fmt.Errorf("sdk.install_version must not be empty")
	}
	if c.SDK.DownloadHost == "" {
		return fmt.Errorf("sdk.download_host must not be empty")
	}
	if c.Shaders.Parallelism < 1 {
		return fmt.Errorf("shaders.parallelism must be at least 1, got %d", c.Shaders.Parallelism)
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	return nil
}
