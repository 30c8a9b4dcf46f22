// Package emoji provides the status symbols printed by CLI commands.
package emoji

// Status symbols.
const (
	// Success marks a completed operation or a passing check.
	Success = "✓"

	// Error marks a failed operation or check.
	Error = "✗"

	// Stop marks a shutdown in progress.
	Stop = "■"

	// Warning marks a partial result.
	Warning = "!"

	// Info marks informational output.
	Info = "i"
)
