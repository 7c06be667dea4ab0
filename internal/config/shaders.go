package config

// ShadersConfig configures batch shader compilation.
type ShadersConfig struct {
	// Compiler overrides the SDK-located glslc binary
	Compiler string `yaml:"compiler,omitempty"`

	// Number of concurrent compiler processes (1 = sequential)
	Parallelism int `yaml:"parallelism"`

	// When true, failed shaders do not produce a non-zero exit code
	AllowFailures bool `yaml:"allow_failures"`

	// Cap on captured stdout/stderr per compiler run
	MaxOutputBytes int64 `yaml:"max_output_bytes"`
}
