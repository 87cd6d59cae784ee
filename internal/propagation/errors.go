package propagation

import (
	"errors"
	"fmt"
	"strings"
)

const (
	repositoryManagerNotConfiguredMessageConstant   = "repository manager not configured"
	submoduleRegistryNotConfiguredMessageConstant   = "submodule registry not configured"
	repositoryValidatorNotConfiguredMessageConstant = "repository validator not configured"
	detachedHeadTemplateConstant                    = "%s has a detached HEAD and no branch is configured"
	checkoutTemplateConstant                        = "unable to check out %s in %s: %v"
	branchLookupTemplateConstant                    = "unable to look up branch %s in %s: %v"
	headInspectionTemplateConstant                  = "unable to inspect HEAD in %s: %v"
	stagingTemplateConstant                         = "unable to stage %s in %s: %v"
	commitTemplateConstant                          = "unable to commit %s in %s: %v"
	fetchTemplateConstant                           = "unable to fetch %s in %s: %v"
	upstreamResolutionTemplateConstant              = "unable to resolve the upstream branch of %s: %v"
	rebaseTemplateConstant                          = "unable to rebase %s onto %s: %v"
	pushTemplateConstant                            = "unable to push %s to %s: %v"
	superprojectLookupTemplateConstant              = "unable to find the superproject of %s: %v"
	unregisteredSubmoduleTemplateConstant           = "%s is not registered as a submodule path in %s/.gitmodules"
	unregisteredSubmoduleCauseTemplateConstant      = "unable to read the submodule registry of %s: %v"
	pathListSeparatorConstant                       = ", "
)

// ErrRepositoryManagerNotConfigured indicates a missing repository manager dependency.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerNotConfiguredMessageConstant)

// ErrSubmoduleRegistryNotConfigured indicates a missing submodule registry dependency.
var ErrSubmoduleRegistryNotConfigured = errors.New(submoduleRegistryNotConfiguredMessageConstant)

// ErrRepositoryValidatorNotConfigured indicates a missing repository validator dependency.
var ErrRepositoryValidatorNotConfigured = errors.New(repositoryValidatorNotConfiguredMessageConstant)

// DetachedHeadError reports a repository whose HEAD is detached while no branch is configured.
type DetachedHeadError struct {
	Repository string
}

func (detachedError DetachedHeadError) Error() string {
	return fmt.Sprintf(detachedHeadTemplateConstant, detachedError.Repository)
}

// CheckoutError reports a failure while selecting the working branch.
type CheckoutError struct {
	Repository string
	Branch     string
	Cause      error
}

func (checkoutError CheckoutError) Error() string {
	return fmt.Sprintf(checkoutTemplateConstant, checkoutError.Branch, checkoutError.Repository, checkoutError.Cause)
}

// Unwrap exposes the underlying cause.
func (checkoutError CheckoutError) Unwrap() error {
	return checkoutError.Cause
}

// BranchInspectionError reports a failure while inspecting branches or HEAD before selection.
type BranchInspectionError struct {
	Repository string
	Branch     string
	Cause      error
}

func (inspectionError BranchInspectionError) Error() string {
	if len(inspectionError.Branch) == 0 {
		return fmt.Sprintf(headInspectionTemplateConstant, inspectionError.Repository, inspectionError.Cause)
	}
	return fmt.Sprintf(branchLookupTemplateConstant, inspectionError.Branch, inspectionError.Repository, inspectionError.Cause)
}

// Unwrap exposes the underlying cause.
func (inspectionError BranchInspectionError) Unwrap() error {
	return inspectionError.Cause
}

// StagingError reports a failure while adding paths to the index.
type StagingError struct {
	Repository string
	Paths      []string
	Cause      error
}

func (stagingError StagingError) Error() string {
	return fmt.Sprintf(stagingTemplateConstant, strings.Join(stagingError.Paths, pathListSeparatorConstant), stagingError.Repository, stagingError.Cause)
}

// Unwrap exposes the underlying cause.
func (stagingError StagingError) Unwrap() error {
	return stagingError.Cause
}

// CommitError reports a failure while comparing staged content or creating the commit.
type CommitError struct {
	Repository string
	Paths      []string
	Cause      error
}

func (commitError CommitError) Error() string {
	return fmt.Sprintf(commitTemplateConstant, strings.Join(commitError.Paths, pathListSeparatorConstant), commitError.Repository, commitError.Cause)
}

// Unwrap exposes the underlying cause.
func (commitError CommitError) Unwrap() error {
	return commitError.Cause
}

// FetchError reports a failed fetch.
type FetchError struct {
	Repository string
	Remote     string
	Cause      error
}

func (fetchError FetchError) Error() string {
	return fmt.Sprintf(fetchTemplateConstant, fetchError.Remote, fetchError.Repository, fetchError.Cause)
}

// Unwrap exposes the underlying cause.
func (fetchError FetchError) Unwrap() error {
	return fetchError.Cause
}

// UpstreamResolutionError reports that neither the tracked upstream nor the current branch could be read.
type UpstreamResolutionError struct {
	Repository string
	Cause      error
}

func (resolutionError UpstreamResolutionError) Error() string {
	return fmt.Sprintf(upstreamResolutionTemplateConstant, resolutionError.Repository, resolutionError.Cause)
}

// Unwrap exposes the underlying cause.
func (resolutionError UpstreamResolutionError) Unwrap() error {
	return resolutionError.Cause
}

// RebaseError reports a failed rebase; the repository is left mid-rebase for manual resolution.
type RebaseError struct {
	Repository string
	Upstream   UpstreamRef
	Cause      error
}

func (rebaseError RebaseError) Error() string {
	return fmt.Sprintf(rebaseTemplateConstant, rebaseError.Repository, rebaseError.Upstream, rebaseError.Cause)
}

// Unwrap exposes the underlying cause.
func (rebaseError RebaseError) Unwrap() error {
	return rebaseError.Cause
}

// PushError reports a rejected or failed push.
type PushError struct {
	Repository string
	Remote     string
	Cause      error
}

func (pushError PushError) Error() string {
	return fmt.Sprintf(pushTemplateConstant, pushError.Repository, pushError.Remote, pushError.Cause)
}

// Unwrap exposes the underlying cause.
func (pushError PushError) Unwrap() error {
	return pushError.Cause
}

// SuperprojectLookupError reports a failure while asking git for the enclosing repository.
type SuperprojectLookupError struct {
	Repository string
	Cause      error
}

func (lookupError SuperprojectLookupError) Error() string {
	return fmt.Sprintf(superprojectLookupTemplateConstant, lookupError.Repository, lookupError.Cause)
}

// Unwrap exposes the underlying cause.
func (lookupError SuperprojectLookupError) Unwrap() error {
	return lookupError.Cause
}

// UnregisteredSubmoduleError reports a child whose path is missing from the parent's .gitmodules,
// or a parent registry that could not be read.
type UnregisteredSubmoduleError struct {
	Parent    string
	ChildPath string
	Cause     error
}

func (unregisteredError UnregisteredSubmoduleError) Error() string {
	if unregisteredError.Cause != nil {
		return fmt.Sprintf(unregisteredSubmoduleCauseTemplateConstant, unregisteredError.Parent, unregisteredError.Cause)
	}
	return fmt.Sprintf(unregisteredSubmoduleTemplateConstant, unregisteredError.ChildPath, unregisteredError.Parent)
}

// Unwrap exposes the underlying cause, if any.
func (unregisteredError UnregisteredSubmoduleError) Unwrap() error {
	return unregisteredError.Cause
}
