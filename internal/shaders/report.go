package shaders

import (
	"time"

	"github.com/google/uuid"
)

// CompileOutcome is the result of compiling one shader file.
type CompileOutcome struct {
	Source     ShaderFile
	OutputPath string
	Succeeded  bool
	ExitCode   int
	Stdout     string
	Stderr     string

	// Err is set when the compiler could not be run at all.
	Err      error
	Duration time.Duration
}

// Detail returns the text to show for the outcome: stdout on success, the
// diagnostic on failure.
func (o CompileOutcome) Detail() string {
	if o.Succeeded {
		return o.Stdout
	}
	if o.Stderr != "" {
		return o.Stderr
	}
	if o.Err != nil {
		return o.Err.Error()
	}
	return o.Stdout
}

// Report aggregates the outcomes of one batch.
type Report struct {
	RunID        uuid.UUID
	CompilerPath string
	Outcomes     []CompileOutcome
	Duration     time.Duration
}

func newReport(compilerPath string, n int) Report {
	return Report{
		RunID:        uuid.New(),
		CompilerPath: compilerPath,
		Outcomes:     make([]CompileOutcome, n),
	}
}

// Succeeded counts successful outcomes.
func (r Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Succeeded {
			n++
		}
	}
	return n
}

// Failed counts failed outcomes.
func (r Report) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// OK reports whether every shader compiled.
func (r Report) OK() bool {
	return r.Failed() == 0
}
