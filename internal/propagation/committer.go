package propagation

import (
	"context"

	"github.com/temirov/urisync/internal/repopath"
)

// ChangeCommitter stages paths and commits them only when the staged content differs from HEAD.
type ChangeCommitter struct {
	repositoryManager RepositoryManager
}

// NewChangeCommitter constructs a ChangeCommitter.
func NewChangeCommitter(repositoryManager RepositoryManager) (*ChangeCommitter, error) {
	if repositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	return &ChangeCommitter{repositoryManager: repositoryManager}, nil
}

// Commit stages request.Paths and commits them with request.Message. When the staged paths match
// HEAD no commit is attempted and CommitOutcomeUnchanged is returned, so repeated calls are safe.
func (committer *ChangeCommitter) Commit(executionContext context.Context, request CommitRequest) (CommitOutcome, error) {
	repository := request.Repository.String()

	if stagingError := committer.repositoryManager.StagePaths(executionContext, repository, request.Paths); stagingError != nil {
		return "", StagingError{Repository: repository, Paths: request.Paths, Cause: stagingError}
	}

	changed, diffError := committer.repositoryManager.HasStagedChanges(executionContext, repository, request.Paths)
	if diffError != nil {
		return "", CommitError{Repository: repository, Paths: request.Paths, Cause: diffError}
	}
	if !changed {
		return CommitOutcomeUnchanged, nil
	}

	if commitError := committer.repositoryManager.Commit(executionContext, repository, request.Message, request.Paths); commitError != nil {
		return "", CommitError{Repository: repository, Paths: request.Paths, Cause: commitError}
	}
	return CommitOutcomeCommitted, nil
}

// NewCommitRequest builds a request for paths relative to repository.
func NewCommitRequest(repository repopath.RepositoryPath, message string, paths ...string) CommitRequest {
	return CommitRequest{Repository: repository, Paths: append([]string{}, paths...), Message: message}
}
