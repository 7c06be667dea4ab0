// Package sdk detects the installed Vulkan SDK and reconciles it with the
// version the engine requires.
//
// The reconciler is a small state machine. A valid installation ends in
// Validated. A missing or mismatched one asks the operator for consent and
// either stops (Aborted) or downloads and launches the installer, after which
// the run ends and must be repeated once the installer finishes.
package sdk

import (
	"os"
	"strings"
)

// Environment is an immutable snapshot of process environment variables.
type Environment map[string]string

// EnvironmentFromOS captures the current process environment.
func EnvironmentFromOS() Environment {
	return FromList(os.Environ())
}

// FromList builds an Environment from KEY=VALUE entries.
// Later entries win. Entries without '=' are ignored.
func FromList(entries []string) Environment {
	env := make(Environment, len(entries))
	for _, e := range entries {
		key, value, ok := strings.Cut(e, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// Lookup returns the value of key and whether it is set.
func (e Environment) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}
