package propagation

import (
	"context"
	"strings"

	"github.com/temirov/urisync/internal/repopath"
)

// UpstreamResolver decides which remote branch a repository is rebased onto.
type UpstreamResolver struct {
	repositoryManager RepositoryManager
	remoteName        string
}

// NewUpstreamResolver constructs an UpstreamResolver that synthesizes references on remoteName.
func NewUpstreamResolver(repositoryManager RepositoryManager, remoteName string) (*UpstreamResolver, error) {
	if repositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	return &UpstreamResolver{repositoryManager: repositoryManager, remoteName: remoteName}, nil
}

// Resolve returns the tracked upstream verbatim when one is configured. Otherwise it returns
// <remote>/<current branch> without checking that the remote branch exists.
func (resolver *UpstreamResolver) Resolve(executionContext context.Context, repository repopath.RepositoryPath) (UpstreamRef, error) {
	trackedUpstream, tracking, upstreamError := resolver.repositoryManager.GetUpstreamBranch(executionContext, repository.String())
	if upstreamError != nil {
		return UpstreamRef{}, UpstreamResolutionError{Repository: repository.String(), Cause: upstreamError}
	}
	if tracking {
		remoteName, branchName, separated := strings.Cut(trackedUpstream, upstreamSeparatorConstant)
		if !separated {
			return UpstreamRef{Branch: trackedUpstream}, nil
		}
		return UpstreamRef{Remote: remoteName, Branch: branchName}, nil
	}

	currentBranch, branchError := resolver.repositoryManager.GetCurrentBranch(executionContext, repository.String())
	if branchError != nil {
		return UpstreamRef{}, UpstreamResolutionError{Repository: repository.String(), Cause: branchError}
	}
	return UpstreamRef{Remote: resolver.remoteName, Branch: currentBranch}, nil
}
