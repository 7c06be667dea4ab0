package tactile

import (
	"context"
)

// Executor runs a command to completion and captures its output.
type Executor interface {
	// Execute runs a command and returns its result. A non-nil error means
	// the command could not be validated; start failures are reported in
	// the result with Success=false.
	Execute(ctx context.Context, cmd Command) (*ExecutionResult, error)
}

// Launcher starts a program as an independent process.
type Launcher interface {
	// Launch starts the executable and returns as soon as the process
	// exists. It does not wait for it or observe its exit status.
	Launch(path string, args ...string) error
}
