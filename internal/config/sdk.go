package config

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// SDKConfig describes the native SDK the engine requires.
type SDKConfig struct {
	// Environment variable holding the SDK installation root
	EnvVar string `yaml:"env_var"`

	// Prefix that must appear in the installed version string
	RequiredVersion string `yaml:"required_version"`

	// Full version fetched when an install is needed
	InstallVersion string `yaml:"install_version"`

	// Product name used in the installer file name
	Product string `yaml:"product"`

	DownloadHost string `yaml:"download_host"`

	// Platform segment of the download URL; empty means derive from GOOS
	Platform string `yaml:"platform"`

	// Where the installer is downloaded, relative to the workspace
	VendorDir string `yaml:"vendor_dir"`

	// Library whose presence under the SDK root marks the debug component
	DebugLibrary string `yaml:"debug_library"`
}

// ResolvedPlatform returns the download platform segment.
func (s SDKConfig) ResolvedPlatform() string {
	if s.Platform != "" {
		return s.Platform
	}
	switch runtime.GOOS {
	case "darwin":
		return "mac"
	case "linux":
		return "linux"
	default:
		return "windows"
	}
}

// InstallerName returns the installer file name for InstallVersion.
func (s SDKConfig) InstallerName() string {
	return fmt.Sprintf("%s-%s-Installer.exe", s.Product, s.InstallVersion)
}

// InstallerURL returns the download URL for InstallVersion.
func (s SDKConfig) InstallerURL() string {
	return fmt.Sprintf("https://%s/sdk/download/%s/%s/%s",
		s.DownloadHost, s.InstallVersion, s.ResolvedPlatform(), s.InstallerName())
}

// InstallerPath returns where the installer is stored for a workspace.
func (s SDKConfig) InstallerPath(workspace string) string {
	dir := s.VendorDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(workspace, dir)
	}
	return filepath.Join(dir, s.InstallerName())
}
