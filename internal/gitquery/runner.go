// Package gitquery reads repository state by invoking the git executable.
package gitquery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

const (
	gitExecutableName = "git"

	commandFailedMessageFormat = "git %s failed: %s"
	startFailedMessageFormat   = "run git %s: %w"
	runningCommandLogMessage   = "running git"
	argumentsLogField          = "arguments"
	directoryLogField          = "directory"
)

// Runner executes a git subcommand and returns its standard output.
type Runner interface {
	Run(ctx context.Context, arguments ...string) (string, error)
}

// CommandError reports a git invocation that exited with a non-zero status.
type CommandError struct {
	Arguments []string
	Stderr    string
	Err       error
}

func (commandError *CommandError) Error() string {
	return fmt.Sprintf(commandFailedMessageFormat, strings.Join(commandError.Arguments, " "), commandError.Stderr)
}

func (commandError *CommandError) Unwrap() error {
	return commandError.Err
}

// ExecRunner runs git as a child process.
type ExecRunner struct {
	// WorkingDirectory is where git runs; empty means the current directory.
	WorkingDirectory string
	Logger           *zap.Logger
}

// NewExecRunner constructs an ExecRunner rooted at workingDirectory.
func NewExecRunner(workingDirectory string, logger *zap.Logger) *ExecRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{WorkingDirectory: workingDirectory, Logger: logger}
}

// Run executes git with the provided arguments and blocks until it exits.
func (runner *ExecRunner) Run(ctx context.Context, arguments ...string) (string, error) {
	logger := runner.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(runningCommandLogMessage, zap.Strings(argumentsLogField, arguments), zap.String(directoryLogField, runner.WorkingDirectory))

	// #nosec G204
	command := exec.CommandContext(ctx, gitExecutableName, arguments...)
	command.Dir = runner.WorkingDirectory
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	if runError := command.Run(); runError != nil {
		var exitError *exec.ExitError
		if errors.As(runError, &exitError) {
			return "", &CommandError{
				Arguments: append([]string{}, arguments...),
				Stderr:    strings.TrimSpace(stderr.String()),
				Err:       runError,
			}
		}
		return "", fmt.Errorf(startFailedMessageFormat, strings.Join(arguments, " "), runError)
	}
	return stdout.String(), nil
}

var _ Runner = (*ExecRunner)(nil)
