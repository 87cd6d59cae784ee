package propagation

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/urisync/internal/repopath"
)

const (
	logMessageBranchSelectedConstant  = "branch selected"
	logMessageFallbackBranchConstant  = "configured branch missing, using fallback"
	logFieldRepositoryConstant        = "repository"
	logFieldBranchConstant            = "branch"
	logFieldConfiguredBranchConstant  = "configured_branch"
	logFieldCheckedOutConstant        = "checked_out"
	attachedHeadBranchDisplayConstant = "HEAD"
)

// BranchSelector puts a repository on the branch that will receive commits.
type BranchSelector struct {
	repositoryManager RepositoryManager
	branch            string
	fallbackBranch    string
	logger            *zap.Logger
}

// NewBranchSelector constructs a BranchSelector. An empty branch means the attached HEAD is used.
func NewBranchSelector(repositoryManager RepositoryManager, branch string, fallbackBranch string, logger *zap.Logger) (*BranchSelector, error) {
	if repositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BranchSelector{repositoryManager: repositoryManager, branch: branch, fallbackBranch: fallbackBranch, logger: logger}, nil
}

// Select checks out the configured branch, or the fallback when it does not exist locally.
// Without a configured branch it only verifies that HEAD is attached and returns DetachedHeadError otherwise.
func (selector *BranchSelector) Select(executionContext context.Context, repository repopath.RepositoryPath) (BranchSelection, error) {
	if len(selector.branch) == 0 {
		attached, inspectionError := selector.repositoryManager.IsHeadAttached(executionContext, repository.String())
		if inspectionError != nil {
			return BranchSelection{}, BranchInspectionError{Repository: repository.String(), Cause: inspectionError}
		}
		if !attached {
			return BranchSelection{}, DetachedHeadError{Repository: repository.String()}
		}
		selector.logger.Debug(logMessageBranchSelectedConstant,
			zap.String(logFieldRepositoryConstant, repository.String()),
			zap.String(logFieldBranchConstant, attachedHeadBranchDisplayConstant),
			zap.Bool(logFieldCheckedOutConstant, false),
		)
		return BranchSelection{Branch: attachedHeadBranchDisplayConstant}, nil
	}

	selectedBranch := selector.branch
	exists, lookupError := selector.repositoryManager.LocalBranchExists(executionContext, repository.String(), selector.branch)
	if lookupError != nil {
		return BranchSelection{}, BranchInspectionError{Repository: repository.String(), Branch: selector.branch, Cause: lookupError}
	}
	if !exists {
		selectedBranch = selector.fallbackBranch
		selector.logger.Info(logMessageFallbackBranchConstant,
			zap.String(logFieldRepositoryConstant, repository.String()),
			zap.String(logFieldConfiguredBranchConstant, selector.branch),
			zap.String(logFieldBranchConstant, selectedBranch),
		)
	}

	if checkoutError := selector.repositoryManager.CheckoutBranch(executionContext, repository.String(), selectedBranch); checkoutError != nil {
		return BranchSelection{}, CheckoutError{Repository: repository.String(), Branch: selectedBranch, Cause: checkoutError}
	}
	selector.logger.Debug(logMessageBranchSelectedConstant,
		zap.String(logFieldRepositoryConstant, repository.String()),
		zap.String(logFieldBranchConstant, selectedBranch),
		zap.Bool(logFieldCheckedOutConstant, true),
	)
	return BranchSelection{Branch: selectedBranch, CheckedOut: true, FallbackUsed: !exists}, nil
}
