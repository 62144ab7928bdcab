// Package exec runs local helper programs and captures their output.
package exec

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/rileyhilliard/rhino/internal/errors"
)

// Runner runs a program and captures its output. Capture satisfies it;
// tests substitute canned output.
type Runner func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, exitCode int, err error)

// Capture runs a program directly (no shell) and captures all output.
// Returns stdout, stderr, exit code, and any execution error.
// A non-zero exit is reported through exitCode with a nil error.
func Capture(ctx context.Context, name string, args ...string) (stdout, stderr []byte, exitCode int, err error) {
	command := exec.CommandContext(ctx, name, args...)

	var outBuf, errBuf bytes.Buffer
	command.Stdout = &outBuf
	command.Stderr = &errBuf

	runErr := command.Run()
	if runErr != nil {
		// Check if it's an exit error (command ran but returned non-zero)
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			return outBuf.Bytes(), errBuf.Bytes(), exitErr.ExitCode(), nil
		}
		// Actual execution failure
		return nil, nil, -1, errors.WrapWithCode(runErr, errors.ErrExec,
			"Couldn't run "+name,
			"Make sure "+name+" is installed and on your PATH.")
	}

	return outBuf.Bytes(), errBuf.Bytes(), 0, nil
}
