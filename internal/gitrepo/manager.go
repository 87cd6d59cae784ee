package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/urisync/internal/execshell"
)

const (
	gitRevParseSubcommandConstant            = "rev-parse"
	gitAbbrevRefFlagConstant                 = "--abbrev-ref"
	gitSymbolicFullNameFlagConstant          = "--symbolic-full-name"
	gitUpstreamReferenceConstant             = "@{u}"
	gitHeadReferenceConstant                 = "HEAD"
	gitShowSuperprojectFlagConstant          = "--show-superproject-working-tree"
	gitSymbolicRefSubcommandConstant         = "symbolic-ref"
	gitQuietShortFlagConstant                = "-q"
	gitShowRefSubcommandConstant             = "show-ref"
	gitVerifyFlagConstant                    = "--verify"
	gitQuietFlagConstant                     = "--quiet"
	gitLocalBranchReferencePrefixConstant    = "refs/heads/"
	gitCheckoutSubcommandConstant            = "checkout"
	gitAddSubcommandConstant                 = "add"
	gitDiffSubcommandConstant                = "diff"
	gitCachedFlagConstant                    = "--cached"
	gitIgnoreNoSubmodulesFlagConstant        = "--ignore-submodules=none"
	gitCommitSubcommandConstant              = "commit"
	gitMessageFlagConstant                   = "-m"
	gitPathspecSeparatorConstant             = "--"
	gitFetchSubcommandConstant               = "fetch"
	gitRebaseSubcommandConstant              = "rebase"
	gitPushSubcommandConstant                = "push"
	gitTerminalPromptEnvironmentNameConstant = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisableValueConstant    = "0"
	gitProbeNegativeExitCodeConstant         = 1
	gitExecutorNotConfiguredMessageConstant  = "git executor not configured"
	requiredValueMessageConstant             = "value required"
	requiredArgumentTemplateConstant         = "%s: %s"
	detachedHeadBranchMessageConstant        = "HEAD is detached"
)

// ErrGitExecutorNotConfigured indicates the manager was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorNotConfiguredMessageConstant)

// ErrDetachedHead indicates a branch name was requested while HEAD points at a commit.
var ErrDetachedHead = errors.New(detachedHeadBranchMessageConstant)

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// InvalidArgumentError reports a missing required argument.
type InvalidArgumentError struct {
	FieldName string
}

// Error describes the missing argument.
func (argumentError InvalidArgumentError) Error() string {
	return fmt.Sprintf(requiredArgumentTemplateConstant, argumentError.FieldName, requiredValueMessageConstant)
}

// RepositoryManager runs repository-level git operations.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// LocalBranchExists reports whether refs/heads/<branchName> exists.
func (manager *RepositoryManager) LocalBranchExists(executionContext context.Context, repositoryPath string, branchName string) (bool, error) {
	if len(strings.TrimSpace(branchName)) == 0 {
		return false, InvalidArgumentError{FieldName: "branch"}
	}
	return manager.probe(executionContext, repositoryPath, gitShowRefSubcommandConstant, gitVerifyFlagConstant, gitQuietFlagConstant, gitLocalBranchReferencePrefixConstant+branchName)
}

// CheckoutBranch switches the working tree to branchName.
func (manager *RepositoryManager) CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	if len(strings.TrimSpace(branchName)) == 0 {
		return InvalidArgumentError{FieldName: "branch"}
	}
	_, executionError := manager.run(executionContext, repositoryPath, gitCheckoutSubcommandConstant, branchName)
	return executionError
}

// IsHeadAttached reports whether HEAD is a symbolic reference to a branch.
func (manager *RepositoryManager) IsHeadAttached(executionContext context.Context, repositoryPath string) (bool, error) {
	return manager.probe(executionContext, repositoryPath, gitSymbolicRefSubcommandConstant, gitQuietShortFlagConstant, gitHeadReferenceConstant)
}

// GetCurrentBranch returns the checked-out branch name or ErrDetachedHead.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.run(executionContext, repositoryPath, gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant)
	if executionError != nil {
		return "", executionError
	}
	branchName := strings.TrimSpace(executionResult.StandardOutput)
	if len(branchName) == 0 || branchName == gitHeadReferenceConstant {
		return "", ErrDetachedHead
	}
	return branchName, nil
}

// GetUpstreamBranch returns the short name of the tracked upstream, such as "origin/master".
// The boolean is false when the current branch tracks nothing.
func (manager *RepositoryManager) GetUpstreamBranch(executionContext context.Context, repositoryPath string) (string, bool, error) {
	executionResult, executionError := manager.run(executionContext, repositoryPath, gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitSymbolicFullNameFlagConstant, gitUpstreamReferenceConstant)
	if executionError != nil {
		if _, exited := execshell.ExitCodeOf(executionError); exited {
			return "", false, nil
		}
		return "", false, executionError
	}
	upstream := strings.TrimSpace(executionResult.StandardOutput)
	return upstream, len(upstream) > 0, nil
}

// StagePaths adds the paths, relative to the repository, to the index.
func (manager *RepositoryManager) StagePaths(executionContext context.Context, repositoryPath string, paths []string) error {
	if len(paths) == 0 {
		return InvalidArgumentError{FieldName: "paths"}
	}
	arguments := append([]string{gitAddSubcommandConstant, gitPathspecSeparatorConstant}, paths...)
	_, executionError := manager.run(executionContext, repositoryPath, arguments...)
	return executionError
}

// HasStagedChanges reports whether the index differs from HEAD for the paths. Submodule ignore
// settings from .gitmodules or diff.ignoreSubmodules are overridden so a moved gitlink always counts.
func (manager *RepositoryManager) HasStagedChanges(executionContext context.Context, repositoryPath string, paths []string) (bool, error) {
	if len(paths) == 0 {
		return false, InvalidArgumentError{FieldName: "paths"}
	}
	arguments := append([]string{gitDiffSubcommandConstant, gitCachedFlagConstant, gitQuietFlagConstant, gitIgnoreNoSubmodulesFlagConstant, gitPathspecSeparatorConstant}, paths...)
	unchanged, probeError := manager.probe(executionContext, repositoryPath, arguments...)
	if probeError != nil {
		return false, probeError
	}
	return !unchanged, nil
}

// Commit records the staged content of the paths with the message.
func (manager *RepositoryManager) Commit(executionContext context.Context, repositoryPath string, message string, paths []string) error {
	if len(strings.TrimSpace(message)) == 0 {
		return InvalidArgumentError{FieldName: "message"}
	}
	if len(paths) == 0 {
		return InvalidArgumentError{FieldName: "paths"}
	}
	arguments := append([]string{gitCommitSubcommandConstant, gitMessageFlagConstant, message, gitPathspecSeparatorConstant}, paths...)
	_, executionError := manager.run(executionContext, repositoryPath, arguments...)
	return executionError
}

// Fetch updates remote-tracking references from remoteName.
func (manager *RepositoryManager) Fetch(executionContext context.Context, repositoryPath string, remoteName string) error {
	if len(strings.TrimSpace(remoteName)) == 0 {
		return InvalidArgumentError{FieldName: "remote"}
	}
	_, executionError := manager.run(executionContext, repositoryPath, gitFetchSubcommandConstant, remoteName)
	return executionError
}

// Rebase replays local commits on top of upstream.
func (manager *RepositoryManager) Rebase(executionContext context.Context, repositoryPath string, upstream string) error {
	if len(strings.TrimSpace(upstream)) == 0 {
		return InvalidArgumentError{FieldName: "upstream"}
	}
	_, executionError := manager.run(executionContext, repositoryPath, gitRebaseSubcommandConstant, upstream)
	return executionError
}

// PushHead pushes HEAD to the same-named branch on remoteName.
func (manager *RepositoryManager) PushHead(executionContext context.Context, repositoryPath string, remoteName string) error {
	if len(strings.TrimSpace(remoteName)) == 0 {
		return InvalidArgumentError{FieldName: "remote"}
	}
	_, executionError := manager.run(executionContext, repositoryPath, gitPushSubcommandConstant, remoteName, gitHeadReferenceConstant)
	return executionError
}

// GetSuperprojectRoot returns the working tree of the repository that uses repositoryPath as a
// submodule, or an empty string when there is none.
func (manager *RepositoryManager) GetSuperprojectRoot(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.run(executionContext, repositoryPath, gitRevParseSubcommandConstant, gitShowSuperprojectFlagConstant)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// probe runs a command whose exit code answers a yes/no question: 0 is yes, 1 is no.
func (manager *RepositoryManager) probe(executionContext context.Context, repositoryPath string, arguments ...string) (bool, error) {
	_, executionError := manager.run(executionContext, repositoryPath, arguments...)
	if executionError == nil {
		return true, nil
	}
	if exitCode, exited := execshell.ExitCodeOf(executionError); exited && exitCode == gitProbeNegativeExitCodeConstant {
		return false, nil
	}
	return false, executionError
}

func (manager *RepositoryManager) run(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return execshell.ExecutionResult{}, InvalidArgumentError{FieldName: "repository"}
	}
	return manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptDisableValueConstant},
	})
}
