package repopath

import (
	"path/filepath"
	"strings"
)

const (
	// GitModulesFileNameConstant is the file every input reference must name.
	GitModulesFileNameConstant = ".gitmodules"

	notGitModulesReasonConstant = "final path element must be " + GitModulesFileNameConstant
)

// GitModulesReference names a .gitmodules file whose URIs were rewritten.
type GitModulesReference struct {
	filePath       string
	repositoryPath RepositoryPath
}

// NewGitModulesReference resolves the candidate against the process working directory, follows
// symbolic links in its directory and checks that it names a .gitmodules file.
func NewGitModulesReference(candidatePath string) (GitModulesReference, error) {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return GitModulesReference{}, InvalidReferenceError{Reference: candidatePath, Reason: emptyPathReasonConstant}
	}

	absolutePath, absoluteError := filepath.Abs(trimmedPath)
	if absoluteError != nil {
		return GitModulesReference{}, InvalidReferenceError{Reference: candidatePath, Reason: absoluteError.Error()}
	}
	if filepath.Base(absolutePath) != GitModulesFileNameConstant {
		return GitModulesReference{}, InvalidReferenceError{Reference: candidatePath, Reason: notGitModulesReasonConstant}
	}

	repositoryDirectory, resolveError := resolveSymbolicLinks(filepath.Dir(absolutePath))
	if resolveError != nil {
		return GitModulesReference{}, InvalidReferenceError{Reference: candidatePath, Reason: resolveError.Error()}
	}

	return GitModulesReference{
		filePath:       filepath.Join(repositoryDirectory, GitModulesFileNameConstant),
		repositoryPath: RepositoryPath{absolutePath: repositoryDirectory},
	}, nil
}

// FilePath returns the absolute path of the .gitmodules file.
func (reference GitModulesReference) FilePath() string {
	return reference.filePath
}

// RepositoryPath returns the working tree containing the .gitmodules file.
func (reference GitModulesReference) RepositoryPath() RepositoryPath {
	return reference.repositoryPath
}

// String returns the absolute path of the .gitmodules file.
func (reference GitModulesReference) String() string {
	return reference.filePath
}
