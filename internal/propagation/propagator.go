package propagation

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/temirov/urisync/internal/repopath"
)

const (
	logMessageRunStartedConstant        = "propagation started"
	logMessagePhaseStartedConstant      = "phase started"
	logMessageRepositorySyncedConstant  = "repository synchronized"
	logMessageRepositorySkippedConstant = "repository skipped"
	logMessageRunCompletedConstant      = "propagation completed"
	logFieldPhaseConstant               = "phase"
	logFieldRepositoryCountConstant     = "repositories"
	logFieldOrderingConstant            = "ordering"
	logFieldOutcomeConstant             = "outcome"
	logFieldUpstreamConstant            = "upstream"
	logFieldPathsConstant               = "paths"
	logFieldReasonConstant              = "reason"
	logFieldParentConstant              = "parent"
	logFieldCommittedCountConstant      = "committed"
	logFieldPushedCountConstant         = "pushed"
	gitModulesRelativePathConstant      = repopath.GitModulesFileNameConstant
)

// Dependencies describes the collaborators required by the Propagator.
type Dependencies struct {
	RepositoryManager   RepositoryManager
	SubmoduleRegistry   SubmoduleRegistry
	RepositoryValidator RepositoryValidator
	Logger              *zap.Logger
}

// Propagator drives both phases of a run.
type Propagator struct {
	repositoryManager   RepositoryManager
	submoduleRegistry   SubmoduleRegistry
	repositoryValidator RepositoryValidator
	logger              *zap.Logger
	configuration       Configuration
	branchSelector      *BranchSelector
	changeCommitter     *ChangeCommitter
	upstreamResolver    *UpstreamResolver
}

// submoduleLink ties a repository to the superproject that records it.
type submoduleLink struct {
	child        repopath.RepositoryPath
	parent       repopath.RepositoryPath
	relativePath string
}

func (link submoduleLink) hasParent() bool {
	return !link.parent.IsZero()
}

// NewPropagator validates dependencies and configuration and wires the components.
func NewPropagator(dependencies Dependencies, configuration Configuration) (*Propagator, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.SubmoduleRegistry == nil {
		return nil, ErrSubmoduleRegistryNotConfigured
	}
	if dependencies.RepositoryValidator == nil {
		return nil, ErrRepositoryValidatorNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sanitizedConfiguration := configuration.Sanitize()
	if validationError := sanitizedConfiguration.Validate(); validationError != nil {
		return nil, validationError
	}

	branchSelector, selectorError := NewBranchSelector(dependencies.RepositoryManager, sanitizedConfiguration.Branch, sanitizedConfiguration.FallbackBranch, logger)
	if selectorError != nil {
		return nil, selectorError
	}
	changeCommitter, committerError := NewChangeCommitter(dependencies.RepositoryManager)
	if committerError != nil {
		return nil, committerError
	}
	upstreamResolver, resolverError := NewUpstreamResolver(dependencies.RepositoryManager, sanitizedConfiguration.RemoteName)
	if resolverError != nil {
		return nil, resolverError
	}

	return &Propagator{
		repositoryManager:   dependencies.RepositoryManager,
		submoduleRegistry:   dependencies.SubmoduleRegistry,
		repositoryValidator: dependencies.RepositoryValidator,
		logger:              logger,
		configuration:       sanitizedConfiguration,
		branchSelector:      branchSelector,
		changeCommitter:     changeCommitter,
		upstreamResolver:    upstreamResolver,
	}, nil
}

// Run commits the rewritten .gitmodules files and propagates the new submodule commits to their parents.
// It stops at the first failure and returns the steps completed so far together with the error.
func (propagator *Propagator) Run(executionContext context.Context, references []repopath.GitModulesReference) (Report, error) {
	orderedReferences := propagator.orderReferences(repopath.Deduplicate(references))
	if validationError := propagator.repositoryValidator.ValidateReferences(orderedReferences); validationError != nil {
		return Report{}, validationError
	}

	repositories := make([]repopath.RepositoryPath, 0, len(orderedReferences))
	for _, reference := range orderedReferences {
		repositories = append(repositories, reference.RepositoryPath())
	}

	propagator.logger.Info(logMessageRunStartedConstant,
		zap.Int(logFieldRepositoryCountConstant, len(repositories)),
		zap.String(logFieldOrderingConstant, string(propagator.configuration.Ordering)),
	)

	runReport, submodulePhaseError := propagator.runSubmodulePhase(executionContext, repositories, Report{})
	if submodulePhaseError != nil {
		return runReport, submodulePhaseError
	}

	runReport, parentPhaseError := propagator.runParentPhase(executionContext, repositories, runReport)
	if parentPhaseError != nil {
		return runReport, parentPhaseError
	}

	propagator.logger.Info(logMessageRunCompletedConstant,
		zap.Int(logFieldCommittedCountConstant, runReport.CommittedCount()),
		zap.Int(logFieldPushedCountConstant, runReport.PushedCount()),
	)
	return runReport, nil
}

func (propagator *Propagator) orderReferences(references []repopath.GitModulesReference) []repopath.GitModulesReference {
	if propagator.configuration.Ordering == OrderingInput {
		return references
	}
	return repopath.OrderDeepestFirst(references)
}

func (propagator *Propagator) runSubmodulePhase(executionContext context.Context, repositories []repopath.RepositoryPath, runReport Report) (Report, error) {
	propagator.logger.Info(logMessagePhaseStartedConstant, zap.String(logFieldPhaseConstant, string(PhaseSubmodule)))

	for _, repository := range repositories {
		if contextError := executionContext.Err(); contextError != nil {
			return runReport, contextError
		}

		request := NewCommitRequest(repository, propagator.configuration.SubmoduleCommitMessage, gitModulesRelativePathConstant)
		step, synchronizeError := propagator.synchronizeRepository(executionContext, PhaseSubmodule, request)
		if synchronizeError != nil {
			return runReport, synchronizeError
		}
		runReport = runReport.withStep(step)
	}
	return runReport, nil
}

// synchronizeRepository walks one repository through branch selection, commit, fetch, rebase and push.
// The fetch, rebase and push steps run even when the commit was a no-op.
func (propagator *Propagator) synchronizeRepository(executionContext context.Context, phase Phase, request CommitRequest) (Step, error) {
	repository := request.Repository.String()
	step := Step{Phase: phase, Repository: repository, Paths: request.Paths}

	selection, selectionError := propagator.branchSelector.Select(executionContext, request.Repository)
	if selectionError != nil {
		return step, selectionError
	}
	step.Branch = selection.Branch

	outcome, commitError := propagator.changeCommitter.Commit(executionContext, request)
	if commitError != nil {
		return step, commitError
	}
	step.Outcome = outcome

	remoteName := propagator.configuration.RemoteName
	if fetchError := propagator.repositoryManager.Fetch(executionContext, repository, remoteName); fetchError != nil {
		return step, FetchError{Repository: repository, Remote: remoteName, Cause: fetchError}
	}

	upstream, resolutionError := propagator.upstreamResolver.Resolve(executionContext, request.Repository)
	if resolutionError != nil {
		return step, resolutionError
	}
	step.Upstream = upstream.String()

	if rebaseError := propagator.repositoryManager.Rebase(executionContext, repository, upstream.String()); rebaseError != nil {
		return step, RebaseError{Repository: repository, Upstream: upstream, Cause: rebaseError}
	}

	if pushError := propagator.repositoryManager.PushHead(executionContext, repository, remoteName); pushError != nil {
		return step, PushError{Repository: repository, Remote: remoteName, Cause: pushError}
	}
	step.Pushed = true

	propagator.logger.Info(logMessageRepositorySyncedConstant,
		zap.String(logFieldPhaseConstant, string(phase)),
		zap.String(logFieldRepositoryConstant, repository),
		zap.String(logFieldBranchConstant, step.Branch),
		zap.Strings(logFieldPathsConstant, request.Paths),
		zap.String(logFieldOutcomeConstant, string(outcome)),
		zap.String(logFieldUpstreamConstant, step.Upstream),
	)
	return step, nil
}

// runParentPhase records each repository's new commit in its superproject. Every child of a parent
// is committed together the first time that parent comes up; ProcessedParents skips it afterwards.
func (propagator *Propagator) runParentPhase(executionContext context.Context, repositories []repopath.RepositoryPath, runReport Report) (Report, error) {
	propagator.logger.Info(logMessagePhaseStartedConstant, zap.String(logFieldPhaseConstant, string(PhaseParent)))

	links, discoveryError := propagator.discoverSuperprojects(executionContext, repositories)
	if discoveryError != nil {
		return runReport, discoveryError
	}

	processedParents := ProcessedParents{}
	for _, link := range propagator.orderLinks(links) {
		if contextError := executionContext.Err(); contextError != nil {
			return runReport, contextError
		}

		var step Step
		var stepError error
		processedParents, step, stepError = propagator.propagateToParent(executionContext, link, links, processedParents)
		if stepError != nil {
			return runReport, stepError
		}
		runReport = runReport.withStep(step)
	}
	return runReport, nil
}

// discoverSuperprojects resolves and checks the parent of every repository before Phase 2 changes anything.
func (propagator *Propagator) discoverSuperprojects(executionContext context.Context, repositories []repopath.RepositoryPath) ([]submoduleLink, error) {
	links := make([]submoduleLink, 0, len(repositories))
	for _, repository := range repositories {
		superprojectRoot, lookupError := propagator.repositoryManager.GetSuperprojectRoot(executionContext, repository.String())
		if lookupError != nil {
			return nil, SuperprojectLookupError{Repository: repository.String(), Cause: lookupError}
		}
		if len(superprojectRoot) == 0 {
			links = append(links, submoduleLink{child: repository})
			continue
		}

		parent, parentError := repopath.NewRepositoryPath(superprojectRoot)
		if parentError != nil {
			return nil, SuperprojectLookupError{Repository: repository.String(), Cause: parentError}
		}
		relativePath, relativeError := repository.RelativeTo(parent)
		if relativeError != nil {
			return nil, SuperprojectLookupError{Repository: repository.String(), Cause: relativeError}
		}

		registered, registryError := propagator.submoduleRegistry.IsRegistered(parent.String(), relativePath)
		if registryError != nil {
			return nil, UnregisteredSubmoduleError{Parent: parent.String(), ChildPath: relativePath, Cause: registryError}
		}
		if !registered {
			return nil, UnregisteredSubmoduleError{Parent: parent.String(), ChildPath: relativePath}
		}

		links = append(links, submoduleLink{child: repository, parent: parent, relativePath: relativePath})
	}
	return links, nil
}

// orderLinks keeps the caller's order in input mode. In depth mode it orders by parent depth, deepest
// first, so a repository's own parent commit lands before that repository is recorded in its parent.
func (propagator *Propagator) orderLinks(links []submoduleLink) []submoduleLink {
	orderedLinks := append([]submoduleLink{}, links...)
	if propagator.configuration.Ordering == OrderingInput {
		return orderedLinks
	}
	sort.SliceStable(orderedLinks, func(leftIndex int, rightIndex int) bool {
		return orderedLinks[leftIndex].parent.Depth() > orderedLinks[rightIndex].parent.Depth()
	})
	return orderedLinks
}

func (propagator *Propagator) propagateToParent(executionContext context.Context, link submoduleLink, links []submoduleLink, processedParents ProcessedParents) (ProcessedParents, Step, error) {
	if !link.hasParent() {
		return processedParents, propagator.skippedStep(link, SkipReasonNoSuperproject), nil
	}
	if processedParents.Contains(link.parent) {
		return processedParents, propagator.skippedStep(link, SkipReasonParentProcessed), nil
	}

	request := NewCommitRequest(link.parent, propagator.configuration.ParentCommitMessage, childPathsOf(link.parent, links)...)
	step, synchronizeError := propagator.synchronizeRepository(executionContext, PhaseParent, request)
	if synchronizeError != nil {
		return processedParents, step, synchronizeError
	}
	return processedParents.With(link.parent), step, nil
}

func (propagator *Propagator) skippedStep(link submoduleLink, reason SkipReason) Step {
	fields := []zap.Field{
		zap.String(logFieldPhaseConstant, string(PhaseParent)),
		zap.String(logFieldRepositoryConstant, link.child.String()),
		zap.String(logFieldReasonConstant, string(reason)),
	}
	if link.hasParent() {
		fields = append(fields, zap.String(logFieldParentConstant, link.parent.String()))
	}
	propagator.logger.Debug(logMessageRepositorySkippedConstant, fields...)
	return Step{Phase: PhaseParent, Repository: link.child.String(), Skipped: reason}
}

// childPathsOf lists, in run order, the paths of every repository in the run recorded by parent.
func childPathsOf(parent repopath.RepositoryPath, links []submoduleLink) []string {
	childPaths := make([]string, 0)
	for _, link := range links {
		if link.hasParent() && link.parent.String() == parent.String() {
			childPaths = append(childPaths, link.relativePath)
		}
	}
	return childPaths
}
