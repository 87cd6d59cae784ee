package repopath

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
)

const (
	notDirectoryMessageConstant       = "not a directory"
	unresolvableHeadTemplateConstant  = "HEAD cannot be resolved: %w"
	missingGitModulesTemplateConstant = "%s is missing: %w"
)

var errNotDirectory = errors.New(notDirectoryMessageConstant)

// Validator confirms that references point at usable git working trees before anything is changed.
type Validator struct{}

// NewValidator constructs a Validator.
func NewValidator() Validator {
	return Validator{}
}

// ValidateRepository opens the working tree with go-git and resolves HEAD.
// Working trees whose .git is a gitdir file, as in submodules, are supported.
func (validator Validator) ValidateRepository(repositoryPath RepositoryPath) error {
	directoryInfo, statError := os.Stat(repositoryPath.String())
	if statError != nil {
		return RepositoryValidationError{Repository: repositoryPath.String(), Cause: statError}
	}
	if !directoryInfo.IsDir() {
		return RepositoryValidationError{Repository: repositoryPath.String(), Cause: errNotDirectory}
	}

	repository, openError := git.PlainOpenWithOptions(repositoryPath.String(), &git.PlainOpenOptions{EnableDotGitCommonDir: true})
	if openError != nil {
		return RepositoryValidationError{Repository: repositoryPath.String(), Cause: openError}
	}
	if _, headError := repository.Head(); headError != nil {
		return RepositoryValidationError{Repository: repositoryPath.String(), Cause: fmt.Errorf(unresolvableHeadTemplateConstant, headError)}
	}
	return nil
}

// ValidateReferences checks that every .gitmodules file exists and that its repository validates.
func (validator Validator) ValidateReferences(references []GitModulesReference) error {
	for _, reference := range references {
		if _, statError := os.Stat(reference.FilePath()); statError != nil {
			return RepositoryValidationError{
				Repository: reference.RepositoryPath().String(),
				Cause:      fmt.Errorf(missingGitModulesTemplateConstant, GitModulesFileNameConstant, statError),
			}
		}
		if validationError := validator.ValidateRepository(reference.RepositoryPath()); validationError != nil {
			return validationError
		}
	}
	return nil
}
