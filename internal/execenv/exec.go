// Package execenv launches child processes with resolved credentials
// injected as ephemeral environment variables. The credential never
// touches the parent's own environment or any file.
package execenv

import (
	"context"
	"os"
	"os/exec"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/agencykit/claudekey/internal/credentials"
	ckerrors "github.com/agencykit/claudekey/internal/errors"
	"github.com/agencykit/claudekey/internal/logging"
)

// Executor handles running commands with ephemeral environment variables
type Executor struct {
	logger *logging.Logger
}

// New creates a new executor
func New(logger *logging.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Options configures command execution
type Options struct {
	Command       []string          // Command and arguments to run
	Environment   map[string]string // Variables to inject into the child
	AllowOverride bool              // Let pre-existing env vars win over injected ones
	PrintVars     bool              // Print injected variable names with masked values
	WorkingDir    string            // Working directory for the command
	Timeout       int               // Timeout in seconds (0 for no timeout)
}

// Exec runs a command with the provided environment variables
func (e *Executor) Exec(ctx context.Context, options Options) error {
	if len(options.Command) == 0 {
		return ckerrors.UserError{
			Message:    "No command specified",
			Suggestion: "Provide a command after -- (e.g., claudekey exec -- python agent.py)",
		}
	}

	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(options.Timeout)*time.Second)
		defer cancel()
	}

	cmdName := options.Command[0]
	if _, err := exec.LookPath(cmdName); err != nil {
		return ckerrors.WrapCommandNotFound(cmdName, err)
	}

	env := e.buildEnvironment(options.Environment, options.AllowOverride)

	if options.PrintVars {
		e.printEnvironment(options.Environment)
	}

	cmd := exec.CommandContext(ctx, cmdName, options.Command[1:]...)
	cmd.Env = env
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if options.WorkingDir != "" {
		cmd.Dir = options.WorkingDir
	}

	e.logger.Debug("Executing command: %s", redactedCommand(options.Command, options.Environment))
	e.logger.Debug("Environment variables injected: %d", len(options.Environment))

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			// Preserve the exit code from the child process
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				os.Exit(status.ExitStatus())
			}
			os.Exit(1)
		}
		return ckerrors.CommandError{
			Command:    redactedCommand(options.Command, options.Environment),
			Message:    err.Error(),
			Suggestion: "Check the command output above for details",
		}
	}

	return nil
}

// redactedCommand renders a command line with any injected secret
// values replaced, so neither logs nor error messages can echo a
// credential a caller put on the command line.
func redactedCommand(command []string, injected map[string]string) string {
	secrets := make([]string, 0, len(injected))
	for _, value := range injected {
		secrets = append(secrets, value)
	}
	return logging.Redact(strings.Join(command, " "), secrets)
}

// buildEnvironment merges the injected variables into the inherited
// environment. Injected values win unless allowOverride keeps an
// existing variable in place.
func (e *Executor) buildEnvironment(injected map[string]string, allowOverride bool) []string {
	envMap := make(map[string]string)

	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			envMap[parts[0]] = parts[1]
		}
	}

	for name, value := range injected {
		if allowOverride {
			if _, exists := envMap[name]; exists {
				e.logger.Debug("Keeping existing value for %s", name)
				continue
			}
		}
		envMap[name] = value
	}

	env := make([]string, 0, len(envMap))
	for name, value := range envMap {
		env = append(env, name+"="+value)
	}
	sort.Strings(env)
	return env
}

// printEnvironment lists the injected variables with masked values
func (e *Executor) printEnvironment(injected map[string]string) {
	names := make([]string, 0, len(injected))
	for name := range injected {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		e.logger.Info("%s=%s", name, credentials.MaskDefault(injected[name]))
	}
}
