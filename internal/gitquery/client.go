package gitquery

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

const (
	insideWorkTreeOutput = "true"
	fallbackRootName     = "."

	notRepositoryWrapFormat = "%w: %w"
	directoryOption         = "-C"
)

// ErrNotRepository indicates that the working directory is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

var (
	verifyArguments    = []string{"rev-parse", "--is-inside-work-tree"}
	trackedArguments   = []string{"ls-files"}
	untrackedArguments = []string{"ls-files", "--others", "--exclude-standard"}
	ignoredArguments   = []string{"ls-files", "--others", "-i", "--exclude-standard"}
	topLevelArguments  = []string{"rev-parse", "--show-toplevel"}
)

// Snapshot captures everything a report needs from the repository.
// Tracked paths are relative to TopLevel.
type Snapshot struct {
	TopLevel       string
	Tracked        []string
	UntrackedCount int
	IgnoredCount   int
	RootName       string
}

// Client issues repository queries through a Runner.
type Client struct {
	runner Runner
}

// NewClient constructs a Client using runner.
func NewClient(runner Runner) *Client {
	return &Client{runner: runner}
}

// VerifyInsideRepository fails with ErrNotRepository when git does not consider the
// working directory part of a work tree. A git executable that cannot be started is
// reported as is.
func (client *Client) VerifyInsideRepository(ctx context.Context) error {
	output, runError := client.runner.Run(ctx, verifyArguments...)
	if runError != nil {
		var commandError *CommandError
		if errors.As(runError, &commandError) {
			return fmt.Errorf(notRepositoryWrapFormat, ErrNotRepository, runError)
		}
		return runError
	}
	if strings.TrimSpace(output) != insideWorkTreeOutput {
		return ErrNotRepository
	}
	return nil
}

// TopLevel returns the absolute path of the repository's top-level directory.
func (client *Client) TopLevel(ctx context.Context) (string, error) {
	output, runError := client.runner.Run(ctx, topLevelArguments...)
	if runError != nil {
		return "", runError
	}
	return strings.TrimSpace(output), nil
}

// ListTracked returns tracked paths relative to the repository root.
func (client *Client) ListTracked(ctx context.Context) ([]string, error) {
	topLevel, topLevelError := client.TopLevel(ctx)
	if topLevelError != nil {
		return nil, topLevelError
	}
	return client.listTrackedIn(ctx, topLevel)
}

// CountUntracked counts paths in the whole work tree that are neither tracked nor ignored.
func (client *Client) CountUntracked(ctx context.Context) (int, error) {
	topLevel, topLevelError := client.TopLevel(ctx)
	if topLevelError != nil {
		return 0, topLevelError
	}
	return client.countLinesIn(ctx, topLevel, untrackedArguments)
}

// CountIgnored counts untracked paths in the whole work tree excluded by ignore rules.
func (client *Client) CountIgnored(ctx context.Context) (int, error) {
	topLevel, topLevelError := client.TopLevel(ctx)
	if topLevelError != nil {
		return 0, topLevelError
	}
	return client.countLinesIn(ctx, topLevel, ignoredArguments)
}

// RootName returns the final segment of the repository's top-level directory.
func (client *Client) RootName(ctx context.Context) (string, error) {
	topLevel, topLevelError := client.TopLevel(ctx)
	if topLevelError != nil {
		return "", topLevelError
	}
	return lastPathSegment(topLevel), nil
}

// Snapshot resolves the top-level directory once, then runs every listing from it in
// sequence.
func (client *Client) Snapshot(ctx context.Context) (Snapshot, error) {
	topLevel, topLevelError := client.TopLevel(ctx)
	if topLevelError != nil {
		return Snapshot{}, topLevelError
	}
	tracked, trackedError := client.listTrackedIn(ctx, topLevel)
	if trackedError != nil {
		return Snapshot{}, trackedError
	}
	untrackedCount, untrackedError := client.countLinesIn(ctx, topLevel, untrackedArguments)
	if untrackedError != nil {
		return Snapshot{}, untrackedError
	}
	ignoredCount, ignoredError := client.countLinesIn(ctx, topLevel, ignoredArguments)
	if ignoredError != nil {
		return Snapshot{}, ignoredError
	}
	return Snapshot{
		TopLevel:       topLevel,
		Tracked:        tracked,
		UntrackedCount: untrackedCount,
		IgnoredCount:   ignoredCount,
		RootName:       lastPathSegment(topLevel),
	}, nil
}

func (client *Client) listTrackedIn(ctx context.Context, topLevel string) ([]string, error) {
	output, runError := client.runner.Run(ctx, inDirectory(topLevel, trackedArguments)...)
	if runError != nil {
		return nil, runError
	}
	return nonEmptyLines(output), nil
}

func (client *Client) countLinesIn(ctx context.Context, topLevel string, arguments []string) (int, error) {
	output, runError := client.runner.Run(ctx, inDirectory(topLevel, arguments)...)
	if runError != nil {
		return 0, runError
	}
	return len(nonEmptyLines(output)), nil
}

// inDirectory prefixes arguments with "-C directory" so git reports paths relative to it.
func inDirectory(directory string, arguments []string) []string {
	if directory == "" {
		return arguments
	}
	prefixed := make([]string, 0, len(arguments)+2)
	prefixed = append(prefixed, directoryOption, directory)
	return append(prefixed, arguments...)
}

func nonEmptyLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// lastPathSegment accepts either slash style; filesystem and drive roots yield ".".
func lastPathSegment(topLevel string) string {
	normalized := strings.TrimRight(strings.ReplaceAll(topLevel, "\\", "/"), "/")
	if normalized == "" {
		return fallbackRootName
	}
	segment := path.Base(normalized)
	if segment == "" || segment == "." || segment == "/" || strings.HasSuffix(segment, ":") {
		return fallbackRootName
	}
	return segment
}
