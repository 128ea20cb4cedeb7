// Package errors defines user-facing error types shared across the CLI.
// Errors carry a message, optional detail, and a suggestion so commands
// can fail with something actionable instead of a bare error string.
package errors

import (
	"fmt"
	"strings"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// CommandError represents a command execution error
type CommandError struct {
	Command    string
	ExitCode   int
	Message    string
	Suggestion string
}

func (e CommandError) Error() string {
	msg := fmt.Sprintf("Command '%s' failed", e.Command)
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit code: %d)", e.ExitCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// WrapCommandNotFound wraps a lookup failure for a child command binary
func WrapCommandNotFound(command string, err error) error {
	return UserError{
		Message:    fmt.Sprintf("Command '%s' not found", command),
		Suggestion: "Check that the command is installed and on your PATH",
		Err:        err,
	}
}

// NoCredentialError builds the error an API-client constructor returns
// when resolution comes back empty. It names every source that was
// consulted so the operator knows where to put a key.
func NoCredentialError(sources []string) error {
	return UserError{
		Message:    "No Anthropic API key available",
		Details:    "Checked " + strings.Join(sources, ", "),
		Suggestion: "Export ANTHROPIC_API_KEY, or sign in with Claude Code so the key is stored in your OS keychain",
	}
}
