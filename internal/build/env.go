// Package build assembles the environment handed to toolchain subprocesses.
//
// The SDK compilers are started with a curated environment rather than the
// raw os.Environ(): essential system variables, the SDK root variable, and
// the SDK binary/library directories placed first on the search paths, the
// same layout the LunarG setup-env scripts produce.
package build

import (
	"os"
	"path/filepath"
	"strings"

	"photon/internal/logging"
)

// essentialVars are copied from the current process when set.
var essentialVars = []string{
	"PATH",
	"HOME",
	"USER",
	"USERPROFILE",  // Required on Windows
	"LOCALAPPDATA", // Required on Windows
	"SYSTEMROOT",   // Windows DLL loading
	"TEMP",
	"TMP",
	"TMPDIR",
	"LANG",
	"LD_LIBRARY_PATH",
	"DYLD_LIBRARY_PATH",
}

// BinDir returns the SDK's executable directory for goos.
func BinDir(sdkRoot, goos string) string {
	if goos == "windows" {
		return filepath.Join(sdkRoot, "Bin")
	}
	return filepath.Join(sdkRoot, "bin")
}

// LibDir returns the SDK's shared-library directory for goos.
func LibDir(sdkRoot, goos string) string {
	if goos == "windows" {
		return filepath.Join(sdkRoot, "Lib")
	}
	return filepath.Join(sdkRoot, "lib")
}

// CompilerEnv returns the environment for SDK tool invocations.
// It merges:
// 1. Essential variables from the current process
// 2. The SDK root variable
// 3. The SDK bin directory at the front of PATH (and lib on the loader path)
func CompilerEnv(sdkEnvVar, sdkRoot, goos string) []string {
	logging.BuildDebug("Building compiler environment for SDK root: %s", sdkRoot)

	env := getBaseEnv()
	if sdkRoot == "" {
		return env
	}

	var overrides []string
	if sdkEnvVar != "" {
		overrides = append(overrides, sdkEnvVar+"="+sdkRoot)
	}
	overrides = append(overrides, prependPath(env, "PATH", BinDir(sdkRoot, goos)))
	switch goos {
	case "linux":
		overrides = append(overrides, prependPath(env, "LD_LIBRARY_PATH", LibDir(sdkRoot, goos)))
	case "darwin":
		overrides = append(overrides, prependPath(env, "DYLD_LIBRARY_PATH", LibDir(sdkRoot, goos)))
	}

	env = MergeEnv(env, overrides...)
	logging.Build("Compiler environment ready: %d vars, SDK root %s", len(env), sdkRoot)
	return env
}

// getBaseEnv returns the essential variables that are set in this process.
func getBaseEnv() []string {
	env := []string{}
	for _, key := range essentialVars {
		if val := os.Getenv(key); val != "" {
			env = append(env, key+"="+val)
		}
	}
	return env
}

// prependPath returns the KEY=VALUE entry that puts dir at the front of a
// list-style variable in env.
func prependPath(env []string, key, dir string) string {
	current, ok := envValue(env, key)
	if !ok || current == "" {
		return key + "=" + dir
	}
	return key + "=" + dir + string(filepath.ListSeparator) + current
}

// envValue returns the value of key in env.
func envValue(env []string, key string) (string, bool) {
	prefix := key + "="
	for _, e := range env {
		if strings.HasPrefix(e, prefix) {
			return strings.TrimPrefix(e, prefix), true
		}
	}
	return "", false
}

// setEnvKey sets or updates an environment variable.
func setEnvKey(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = key + "=" + value
			return env
		}
	}
	return append(env, key+"="+value)
}

// MergeEnv merges additional environment variables into base env.
// Later values override earlier ones.
func MergeEnv(base []string, additional ...string) []string {
	result := make([]string, len(base))
	copy(result, base)

	for _, add := range additional {
		parts := strings.SplitN(add, "=", 2)
		if len(parts) == 2 {
			result = setEnvKey(result, parts[0], parts[1])
		}
	}

	return result
}
