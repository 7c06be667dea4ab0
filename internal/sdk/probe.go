package sdk

import (
	"os"
	"path/filepath"

	"photon/internal/config"
	"photon/internal/logging"
)

// Installation is what the probe found on this machine.
// Version and HasDebugComponent are zero when Root is empty.
type Installation struct {
	Root              string
	Version           string
	HasDebugComponent bool
}

// Present reports whether an SDK root was found.
func (i Installation) Present() bool {
	return i.Root != ""
}

// Prober reports the current SDK installation.
type Prober interface {
	Probe() Installation
}

// Probe reads the SDK indicator from an environment snapshot.
type Probe struct {
	env          Environment
	envVar       string
	debugLibrary string
}

// NewProbe creates a probe over env using the variable and debug library
// named in cfg.
func NewProbe(env Environment, cfg config.SDKConfig) *Probe {
	return &Probe{
		env:          env,
		envVar:       cfg.EnvVar,
		debugLibrary: cfg.DebugLibrary,
	}
}

// Probe returns the installation described by the environment.
// The variable's value is both the root and the version signal.
func (p *Probe) Probe() Installation {
	root, ok := p.env.Lookup(p.envVar)
	if !ok || root == "" {
		logging.SDKDebug("%s is not set", p.envVar)
		return Installation{}
	}

	inst := Installation{
		Root:    root,
		Version: root,
	}
	if p.debugLibrary != "" {
		lib := filepath.Join(root, filepath.FromSlash(p.debugLibrary))
		if info, err := os.Stat(lib); err == nil && !info.IsDir() {
			inst.HasDebugComponent = true
		}
	}

	logging.SDKDebug("Probed %s=%s (debug component: %v)", p.envVar, root, inst.HasDebugComponent)
	return inst
}
