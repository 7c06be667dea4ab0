package config

// SetupConfig configures the steps `photon setup` runs after the SDK check.
type SetupConfig struct {
	// Run `git submodule update --init --recursive`
	Submodules bool `yaml:"submodules"`

	// Project file generator (e.g. scripts/Win-GenProjects.bat); empty skips the step
	ProjectGenerator string `yaml:"project_generator,omitempty"`

	GeneratorArgs []string `yaml:"generator_args,omitempty"`
}
