// Package invariant ends the process when a required condition does not hold.
package invariant

import (
	"fmt"
	"io"
	"os"
)

// Exiter prints diagnostics to Stderr and terminates through Exit.
type Exiter struct {
	Stderr io.Writer
	Exit   func(code int)
}

var std = Exiter{Stderr: os.Stderr, Exit: os.Exit}

// Check is a no-op when condition holds. Otherwise it exits with status 1
// after printing message to stderr, or with status 0 and no output when
// message is empty.
func Check(condition bool, message string) {
	std.Check(condition, message)
}

// Check is the Exiter form of the package-level Check.
func (e Exiter) Check(condition bool, message string) {
	if condition {
		return
	}

	if message != "" {
		fmt.Fprintln(e.Stderr, message)
		e.Exit(1)
		return
	}

	// No message means a deliberate, quiet stop.
	e.Exit(0)
}
