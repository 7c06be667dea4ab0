package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearOverrides(t *testing.T) {
	t.Helper()
	t.Setenv("PHOTON_SDK_HOST", "")
	t.Setenv("PHOTON_LOG_LEVEL", "")
	t.Setenv("PHOTON_SHADER_PARALLELISM", "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.SDK.EnvVar != "VULKAN_SDK" {
		t.Errorf("expected EnvVar=VULKAN_SDK, got %s", cfg.SDK.EnvVar)
	}
	if cfg.SDK.RequiredVersion != "1.3." {
		t.Errorf("expected RequiredVersion=1.3., got %s", cfg.SDK.RequiredVersion)
	}
	if cfg.SDK.InstallVersion != "1.3.261.1" {
		t.Errorf("expected InstallVersion=1.3.261.1, got %s", cfg.SDK.InstallVersion)
	}
	if cfg.Shaders.Parallelism != 1 {
		t.Errorf("expected Parallelism=1, got %d", cfg.Shaders.Parallelism)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearOverrides(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SDK.Product != "VulkanSDK" {
		t.Errorf("expected default product, got %s", cfg.SDK.Product)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearOverrides(t)

	path := DefaultConfigPath(t.TempDir())

	cfg := DefaultConfig()
	cfg.SDK.InstallVersion = "1.3.275.0"
	cfg.Shaders.Parallelism = 4
	cfg.Setup.ProjectGenerator = "scripts/Win-GenProjects.bat"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.SDK.InstallVersion != "1.3.275.0" {
		t.Errorf("expected InstallVersion=1.3.275.0, got %s", loaded.SDK.InstallVersion)
	}
	if loaded.Shaders.Parallelism != 4 {
		t.Errorf("expected Parallelism=4, got %d", loaded.Shaders.Parallelism)
	}
	if loaded.Setup.ProjectGenerator != "scripts/Win-GenProjects.bat" {
		t.Errorf("unexpected ProjectGenerator %q", loaded.Setup.ProjectGenerator)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearOverrides(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("sdk:\n  required_version: \"1.4.\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SDK.RequiredVersion != "1.4." {
		t.Errorf("expected RequiredVersion=1.4., got %s", cfg.SDK.RequiredVersion)
	}
	if cfg.SDK.EnvVar != "VULKAN_SDK" {
		t.Errorf("expected EnvVar default to survive, got %s", cfg.SDK.EnvVar)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("sdk: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := map[string]func(c *Config){
		"empty env var":     func(c *Config) { c.SDK.EnvVar = "" },
		"empty prefix":      func(c *Config) { c.SDK.RequiredVersion = "" },
		"empty install":     func(c *Config) { c.SDK.InstallVersion = "" },
		"empty host":        func(c *Config) { c.SDK.DownloadHost = "" },
		"zero parallelism":  func(c *Config) { c.Shaders.Parallelism = 0 },
		"unknown log level": func(c *Config) { c.Logging.Level = "chatty" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	lc := LoggingConfig{}
	if lc.IsCategoryEnabled("sdk") {
		t.Error("categories must be disabled without debug_mode")
	}
	lc.DebugMode = true
	if !lc.IsCategoryEnabled("sdk") {
		t.Error("categories default to enabled in debug_mode")
	}
	lc.Categories = map[string]bool{"sdk": false}
	if lc.IsCategoryEnabled("sdk") {
		t.Error("explicitly disabled category reported enabled")
	}
}
