package execshell_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/urisync/internal/execshell"
)

const testMessageRepositoryPathConstant = "/work/a/b"

func gitCommand(arguments ...string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: arguments, WorkingDirectory: testMessageRepositoryPathConstant},
	}
}

func TestCommandMessageFormatterStartedMessages(testInstance *testing.T) {
	testCases := []struct {
		name     string
		command  execshell.ShellCommand
		expected string
	}{
		{
			name:     "show_ref",
			command:  gitCommand("show-ref", "--verify", "--quiet", "refs/heads/release"),
			expected: "Checking for local branch release in /work/a/b",
		},
		{
			name:     "symbolic_ref",
			command:  gitCommand("symbolic-ref", "-q", "HEAD"),
			expected: "Checking whether HEAD is attached in /work/a/b",
		},
		{
			name:     "checkout",
			command:  gitCommand("checkout", "master"),
			expected: "Switching /work/a/b to branch master",
		},
		{
			name:     "add",
			command:  gitCommand("add", "--", ".gitmodules"),
			expected: "Staging .gitmodules in /work/a/b",
		},
		{
			name:     "staged_diff",
			command:  gitCommand("diff", "--cached", "--quiet", "--ignore-submodules=none", "--", "b", "c"),
			expected: "Comparing staged b, c with HEAD in /work/a/b",
		},
		{
			name:     "commit",
			command:  gitCommand("commit", "-m", "Update URIs in submodule", "--", ".gitmodules"),
			expected: "Creating commit in /work/a/b with message \"Update URIs in submodule\"",
		},
		{
			name:     "fetch",
			command:  gitCommand("fetch", "origin"),
			expected: "Fetching from origin in /work/a/b",
		},
		{
			name:     "upstream",
			command:  gitCommand("rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}"),
			expected: "Checking upstream branch configuration in /work/a/b",
		},
		{
			name:     "current_branch",
			command:  gitCommand("rev-parse", "--abbrev-ref", "HEAD"),
			expected: "Identifying current branch in /work/a/b",
		},
		{
			name:     "superproject",
			command:  gitCommand("rev-parse", "--show-superproject-working-tree"),
			expected: "Looking up the superproject of /work/a/b",
		},
		{
			name:     "rebase",
			command:  gitCommand("rebase", "origin/master"),
			expected: "Rebasing /work/a/b onto origin/master",
		},
		{
			name:     "push",
			command:  gitCommand("push", "origin", "HEAD"),
			expected: "Pushing HEAD to origin from /work/a/b",
		},
		{
			name:     "generic",
			command:  gitCommand("status", "--short"),
			expected: "Running git status --short (in /work/a/b)",
		},
	}

	formatter := execshell.CommandMessageFormatter{}
	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, formatter.BuildStartedMessage(testCase.command))
		})
	}
}

func TestCommandMessageFormatterCompletedMessages(testInstance *testing.T) {
	testCases := []struct {
		name     string
		command  execshell.ShellCommand
		result   execshell.ExecutionResult
		expected string
	}{
		{
			name:     "branch_missing",
			command:  gitCommand("show-ref", "--verify", "--quiet", "refs/heads/release"),
			result:   execshell.ExecutionResult{ExitCode: 1},
			expected: "Local branch release does not exist in /work/a/b",
		},
		{
			name:     "detached_head",
			command:  gitCommand("symbolic-ref", "-q", "HEAD"),
			result:   execshell.ExecutionResult{ExitCode: 1},
			expected: "/work/a/b is in a detached HEAD state",
		},
		{
			name:     "attached_head",
			command:  gitCommand("symbolic-ref", "-q", "HEAD"),
			result:   execshell.ExecutionResult{StandardOutput: "refs/heads/master\n"},
			expected: "HEAD in /work/a/b points to refs/heads/master",
		},
		{
			name:     "staged_unchanged",
			command:  gitCommand("diff", "--cached", "--quiet", "--ignore-submodules=none", "--", ".gitmodules"),
			result:   execshell.ExecutionResult{},
			expected: "Staged .gitmodules in /work/a/b matches HEAD",
		},
		{
			name:     "staged_changed",
			command:  gitCommand("diff", "--cached", "--quiet", "--ignore-submodules=none", "--", ".gitmodules"),
			result:   execshell.ExecutionResult{ExitCode: 1},
			expected: "Staged .gitmodules in /work/a/b differs from HEAD",
		},
		{
			name:     "upstream_found",
			command:  gitCommand("rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}"),
			result:   execshell.ExecutionResult{StandardOutput: "upstream/main\n"},
			expected: "Upstream branch in /work/a/b is upstream/main",
		},
		{
			name:     "upstream_missing",
			command:  gitCommand("rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}"),
			result:   execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: no upstream configured"},
			expected: "No upstream branch configured in /work/a/b",
		},
		{
			name:     "no_superproject",
			command:  gitCommand("rev-parse", "--show-superproject-working-tree"),
			result:   execshell.ExecutionResult{},
			expected: "/work/a/b has no superproject",
		},
		{
			name:     "superproject_found",
			command:  gitCommand("rev-parse", "--show-superproject-working-tree"),
			result:   execshell.ExecutionResult{StandardOutput: "/work/a\n"},
			expected: "/work/a/b is a submodule of /work/a",
		},
		{
			name:     "push_rejected",
			command:  gitCommand("push", "origin", "HEAD"),
			result:   execshell.ExecutionResult{ExitCode: 1, StandardError: "rejected\n"},
			expected: "Failed to push HEAD to origin from /work/a/b (exit code 1: rejected)",
		},
	}

	formatter := execshell.CommandMessageFormatter{}
	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, formatter.BuildCompletedMessage(testCase.command, testCase.result))
		})
	}
}

func TestCommandMessageFormatterExecutionFailure(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}
	message := formatter.BuildExecutionFailureMessage(gitCommand("fetch", "origin"), errors.New("executable file not found"))
	require.Equal(testInstance, "Unable to fetch from origin in /work/a/b: executable file not found", message)
}

func TestCommandMessageFormatterExpectedNegativeOutcome(testInstance *testing.T) {
	testCases := []struct {
		name     string
		command  execshell.ShellCommand
		result   execshell.ExecutionResult
		expected bool
	}{
		{name: "missing_branch", command: gitCommand("show-ref", "--verify", "--quiet", "refs/heads/x"), result: execshell.ExecutionResult{ExitCode: 1}, expected: true},
		{name: "detached_head", command: gitCommand("symbolic-ref", "-q", "HEAD"), result: execshell.ExecutionResult{ExitCode: 1}, expected: true},
		{name: "staged_changes", command: gitCommand("diff", "--cached", "--quiet"), result: execshell.ExecutionResult{ExitCode: 1}, expected: true},
		{name: "no_upstream", command: gitCommand("rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}"), result: execshell.ExecutionResult{ExitCode: 128}, expected: true},
		{name: "push_failure", command: gitCommand("push", "origin", "HEAD"), result: execshell.ExecutionResult{ExitCode: 1}, expected: false},
		{name: "diff_error", command: gitCommand("diff", "--cached", "--quiet"), result: execshell.ExecutionResult{ExitCode: 129}, expected: false},
	}

	formatter := execshell.CommandMessageFormatter{}
	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, formatter.IsExpectedNegativeOutcome(testCase.command, testCase.result))
		})
	}
}
