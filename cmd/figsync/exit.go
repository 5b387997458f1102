package main

import "fmt"

// exitError carries a process exit code back through cobra. A command
// returning one has already printed its own diagnostics.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func exitCode(code int) error {
	return &exitError{code: code}
}
