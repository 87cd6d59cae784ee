package propagation

import (
	"context"

	"github.com/temirov/urisync/internal/repopath"
)

const (
	commitOutcomeCommittedStringConstant = "committed"
	commitOutcomeUnchangedStringConstant = "unchanged"
	upstreamSeparatorConstant            = "/"
)

// RepositoryManager is the git surface the propagation components drive.
type RepositoryManager interface {
	LocalBranchExists(executionContext context.Context, repositoryPath string, branchName string) (bool, error)
	CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error
	IsHeadAttached(executionContext context.Context, repositoryPath string) (bool, error)
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	GetUpstreamBranch(executionContext context.Context, repositoryPath string) (string, bool, error)
	StagePaths(executionContext context.Context, repositoryPath string, paths []string) error
	HasStagedChanges(executionContext context.Context, repositoryPath string, paths []string) (bool, error)
	Commit(executionContext context.Context, repositoryPath string, message string, paths []string) error
	Fetch(executionContext context.Context, repositoryPath string, remoteName string) error
	Rebase(executionContext context.Context, repositoryPath string, upstream string) error
	PushHead(executionContext context.Context, repositoryPath string, remoteName string) error
	GetSuperprojectRoot(executionContext context.Context, repositoryPath string) (string, error)
}

// SubmoduleRegistry answers whether a path is registered in a parent's .gitmodules.
type SubmoduleRegistry interface {
	IsRegistered(repositoryPath string, relativePath string) (bool, error)
}

// RepositoryValidator checks references before anything is changed.
type RepositoryValidator interface {
	ValidateReferences(references []repopath.GitModulesReference) error
}

// CommitOutcome distinguishes a new commit from a no-op.
type CommitOutcome string

// Commit outcomes.
const (
	CommitOutcomeCommitted CommitOutcome = CommitOutcome(commitOutcomeCommittedStringConstant)
	CommitOutcomeUnchanged CommitOutcome = CommitOutcome(commitOutcomeUnchangedStringConstant)
)

// CommitRequest describes one commit of specific paths.
type CommitRequest struct {
	Repository repopath.RepositoryPath
	// Paths are relative to Repository.
	Paths   []string
	Message string
}

// UpstreamRef names the branch a repository is rebased onto.
type UpstreamRef struct {
	Remote string
	Branch string
}

// String renders the reference as remote/branch.
func (upstream UpstreamRef) String() string {
	if len(upstream.Remote) == 0 {
		return upstream.Branch
	}
	return upstream.Remote + upstreamSeparatorConstant + upstream.Branch
}

// BranchSelection records which branch a repository was put on.
type BranchSelection struct {
	Branch string
	// CheckedOut is false when the attached HEAD was kept as is.
	CheckedOut bool
	// FallbackUsed is true when the configured branch did not exist locally.
	FallbackUsed bool
}
