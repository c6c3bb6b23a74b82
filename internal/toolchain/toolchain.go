// Package toolchain answers questions about executables on the search path.
package toolchain

import (
	"os/exec"

	"github.com/Iron-Ham/nikit/internal/errors"
)

// Wrapper for exec.LookPath to allow testing
var execLookPath = exec.LookPath

// Volta is the optional runtime manager probed by RuntimePrefix.
const (
	VoltaCommand = "volta"
	VoltaPrefix  = "volta run"
)

// CommandExists reports whether an executable named name is resolvable on PATH.
func CommandExists(name string) bool {
	if name == "" {
		return false
	}
	_, err := execLookPath(name)
	return err == nil
}

// Resolve returns the full path of name, or a NotFoundError.
func Resolve(name string) (string, error) {
	path, err := execLookPath(name)
	if err != nil {
		return "", errors.NewNotFoundError("command", name).WithCause(errors.Join(errors.ErrCommandNotFound, err))
	}
	return path, nil
}

// RuntimePrefix returns "volta run" when volta is installed, otherwise "".
func RuntimePrefix() string {
	return Manager{Command: VoltaCommand, Prefix: VoltaPrefix}.ActivePrefix()
}

// Manager describes an optional runtime manager whose prefix is prepended to
// commands when its executable is installed.
type Manager struct {
	Command string
	Prefix  string
}

// ActivePrefix returns m.Prefix if m.Command is resolvable, otherwise "".
func (m Manager) ActivePrefix() string {
	if m.Command == "" || !CommandExists(m.Command) {
		return ""
	}
	return m.Prefix
}
