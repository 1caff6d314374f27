package gitquery

import (
	"context"
	"errors"
	"os/exec"
	"reflect"
	"strings"
	"testing"
)

type scriptedResponse struct {
	output string
	err    error
}

type scriptedRunner struct {
	responses map[string]scriptedResponse
	calls     []string
}

func (runner *scriptedRunner) Run(_ context.Context, arguments ...string) (string, error) {
	key := strings.Join(arguments, " ")
	runner.calls = append(runner.calls, key)
	response, exists := runner.responses[key]
	if !exists {
		return "", &CommandError{Arguments: arguments, Stderr: "unexpected invocation"}
	}
	return response.output, response.err
}

func TestClientSnapshotParsesOutput(t *testing.T) {
	t.Parallel()

	runner := &scriptedRunner{responses: map[string]scriptedResponse{
		"rev-parse --show-toplevel":                                             {output: "/home/user/projects/gitcat\n"},
		"-C /home/user/projects/gitcat ls-files":                                {output: "README.md\nsrc/main.ext\n\n"},
		"-C /home/user/projects/gitcat ls-files --others --exclude-standard":    {output: "scratch.txt\r\nnotes/todo.md\n"},
		"-C /home/user/projects/gitcat ls-files --others -i --exclude-standard": {output: ""},
	}}

	snapshot, snapshotError := NewClient(runner).Snapshot(context.Background())
	if snapshotError != nil {
		t.Fatalf("snapshot failed: %v", snapshotError)
	}

	expected := Snapshot{
		TopLevel:       "/home/user/projects/gitcat",
		Tracked:        []string{"README.md", "src/main.ext"},
		UntrackedCount: 2,
		IgnoredCount:   0,
		RootName:       "gitcat",
	}
	if !reflect.DeepEqual(snapshot, expected) {
		t.Fatalf("expected %+v, got %+v", expected, snapshot)
	}
	expectedCalls := []string{
		"rev-parse --show-toplevel",
		"-C /home/user/projects/gitcat ls-files",
		"-C /home/user/projects/gitcat ls-files --others --exclude-standard",
		"-C /home/user/projects/gitcat ls-files --others -i --exclude-standard",
	}
	if !reflect.DeepEqual(runner.calls, expectedCalls) {
		t.Fatalf("expected sequential calls %v, got %v", expectedCalls, runner.calls)
	}
}

func TestClientSnapshotStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	failure := &CommandError{Arguments: []string{"-C", "/repo", "ls-files", "--others", "--exclude-standard"}, Stderr: "fatal: bad index"}
	runner := &scriptedRunner{responses: map[string]scriptedResponse{
		"rev-parse --show-toplevel":                     {output: "/repo\n"},
		"-C /repo ls-files":                             {output: "a\n"},
		"-C /repo ls-files --others --exclude-standard": {err: failure},
	}}

	_, snapshotError := NewClient(runner).Snapshot(context.Background())
	var commandError *CommandError
	if !errors.As(snapshotError, &commandError) {
		t.Fatalf("expected CommandError, got %v", snapshotError)
	}
	if len(runner.calls) != 3 {
		t.Fatalf("expected the run to stop after the failure, got calls %v", runner.calls)
	}
}

func TestVerifyInsideRepository(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		response      scriptedResponse
		expectError   bool
		expectWrapped bool
		notWrapped    bool
	}{
		{
			name:     "inside_work_tree",
			response: scriptedResponse{output: "true\n"},
		},
		{
			name:        "inside_git_directory",
			response:    scriptedResponse{output: "false\n"},
			expectError: true,
		},
		{
			name: "git_reports_failure",
			response: scriptedResponse{err: &CommandError{
				Arguments: verifyArguments,
				Stderr:    "fatal: not a git repository (or any of the parent directories): .git",
			}},
			expectError:   true,
			expectWrapped: true,
		},
		{
			name:        "git_cannot_start",
			response:    scriptedResponse{err: errors.New(`run git rev-parse --is-inside-work-tree: exec: "git": executable file not found in $PATH`)},
			expectError: true,
			notWrapped:  true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			runner := &scriptedRunner{responses: map[string]scriptedResponse{
				"rev-parse --is-inside-work-tree": testCase.response,
			}}
			verifyError := NewClient(runner).VerifyInsideRepository(context.Background())
			if !testCase.expectError {
				if verifyError != nil {
					t.Fatalf("unexpected error: %v", verifyError)
				}
				return
			}
			if testCase.notWrapped {
				if verifyError == nil || errors.Is(verifyError, ErrNotRepository) {
					t.Fatalf("expected the start failure to surface unwrapped, got %v", verifyError)
				}
				return
			}
			if !errors.Is(verifyError, ErrNotRepository) {
				t.Fatalf("expected ErrNotRepository, got %v", verifyError)
			}
			var commandError *CommandError
			if errors.As(verifyError, &commandError) != testCase.expectWrapped {
				t.Fatalf("unexpected CommandError wrapping in %v", verifyError)
			}
		})
	}
}

func TestClientListingsRunFromTopLevel(t *testing.T) {
	t.Parallel()

	runner := &scriptedRunner{responses: map[string]scriptedResponse{
		"rev-parse --show-toplevel":                              {output: "/srv/widget\n"},
		"-C /srv/widget ls-files":                                {output: "README.md\nsrc/main.ext\n"},
		"-C /srv/widget ls-files --others --exclude-standard":    {output: "scratch.txt\n"},
		"-C /srv/widget ls-files --others -i --exclude-standard": {output: "a.log\nb.log\nc.log\n"},
	}}
	client := NewClient(runner)
	ctx := context.Background()

	tracked, trackedError := client.ListTracked(ctx)
	if trackedError != nil {
		t.Fatalf("list tracked: %v", trackedError)
	}
	if !reflect.DeepEqual(tracked, []string{"README.md", "src/main.ext"}) {
		t.Fatalf("unexpected tracked paths %v", tracked)
	}
	untrackedCount, untrackedError := client.CountUntracked(ctx)
	if untrackedError != nil || untrackedCount != 1 {
		t.Fatalf("expected 1 untracked file, got %d (%v)", untrackedCount, untrackedError)
	}
	ignoredCount, ignoredError := client.CountIgnored(ctx)
	if ignoredError != nil || ignoredCount != 3 {
		t.Fatalf("expected 3 ignored files, got %d (%v)", ignoredCount, ignoredError)
	}
	rootName, rootNameError := client.RootName(ctx)
	if rootNameError != nil || rootName != "widget" {
		t.Fatalf("expected root name widget, got %q (%v)", rootName, rootNameError)
	}
}

func TestInDirectory(t *testing.T) {
	t.Parallel()

	if got := inDirectory("", trackedArguments); !reflect.DeepEqual(got, trackedArguments) {
		t.Fatalf("expected arguments unchanged, got %v", got)
	}
	expected := []string{"-C", "/srv/widget", "ls-files", "--others", "--exclude-standard"}
	if got := inDirectory("/srv/widget", untrackedArguments); !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	if !reflect.DeepEqual(untrackedArguments, []string{"ls-files", "--others", "--exclude-standard"}) {
		t.Fatalf("expected shared argument slice to stay untouched, got %v", untrackedArguments)
	}
}

func TestLastPathSegment(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		topLevel string
		expected string
	}{
		{name: "unix_path", topLevel: "/srv/repos/widget", expected: "widget"},
		{name: "trailing_slash", topLevel: "/srv/repos/widget/", expected: "widget"},
		{name: "windows_path", topLevel: `C:\work\widget`, expected: "widget"},
		{name: "filesystem_root", topLevel: "/", expected: "."},
		{name: "drive_root", topLevel: "C:/", expected: "."},
		{name: "empty", topLevel: "", expected: "."},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			if got := lastPathSegment(testCase.topLevel); got != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestCommandErrorMessage(t *testing.T) {
	t.Parallel()

	underlying := &exec.ExitError{}
	commandError := &CommandError{
		Arguments: []string{"ls-files", "--others"},
		Stderr:    "fatal: something broke",
		Err:       underlying,
	}
	if got := commandError.Error(); got != "git ls-files --others failed: fatal: something broke" {
		t.Fatalf("unexpected message %q", got)
	}
	var exitError *exec.ExitError
	if !errors.As(commandError, &exitError) {
		t.Fatalf("expected CommandError to unwrap to exec.ExitError")
	}
}
