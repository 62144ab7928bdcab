package exec

import (
	stderrors "errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rileyhilliard/rhino/internal/errors"
)

// IsNotFound reports whether err means the program isn't installed.
func IsNotFound(err error) bool {
	return stderrors.Is(err, exec.ErrNotFound)
}

// HandleExecError wraps a non-zero exit with the program's own explanation.
// Returns nil for exit code 0.
func HandleExecError(name string, stdout, stderr string, exitCode int) error {
	if exitCode == 0 {
		return nil
	}

	// nvidia-smi reports driver problems on stdout
	detail := strings.TrimSpace(stderr)
	if detail == "" {
		detail = strings.TrimSpace(stdout)
	}
	if detail == "" {
		detail = "no output"
	}

	return errors.New(errors.ErrExec,
		fmt.Sprintf("%s exited with code %d", name, exitCode),
		detail)
}
