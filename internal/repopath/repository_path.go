package repopath

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

const (
	parentDirectoryElementConstant = ".."
	emptyPathReasonConstant        = "path is empty"
	notDescendantTemplateConstant  = "%s is not located inside %s"
)

var errEmptyRepositoryPath = errors.New(emptyPathReasonConstant)

// RepositoryPath is the cleaned absolute path of a git working tree. Symbolic links are resolved
// for paths that exist, so the value matches the paths git itself reports.
type RepositoryPath struct {
	absolutePath string
}

// NewRepositoryPath cleans the candidate, resolves it against the process working directory and
// follows symbolic links.
func NewRepositoryPath(candidatePath string) (RepositoryPath, error) {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return RepositoryPath{}, errEmptyRepositoryPath
	}
	absolutePath, absoluteError := filepath.Abs(trimmedPath)
	if absoluteError != nil {
		return RepositoryPath{}, absoluteError
	}
	physicalPath, resolveError := resolveSymbolicLinks(absolutePath)
	if resolveError != nil {
		return RepositoryPath{}, resolveError
	}
	return RepositoryPath{absolutePath: physicalPath}, nil
}

// resolveSymbolicLinks returns the physical location of an existing path. A missing path is
// returned unchanged and left for the Validator to reject.
func resolveSymbolicLinks(absolutePath string) (string, error) {
	physicalPath, evaluationError := filepath.EvalSymlinks(absolutePath)
	if evaluationError == nil {
		return physicalPath, nil
	}
	if errors.Is(evaluationError, fs.ErrNotExist) {
		return absolutePath, nil
	}
	return "", evaluationError
}

// String returns the absolute path.
func (repositoryPath RepositoryPath) String() string {
	return repositoryPath.absolutePath
}

// IsZero reports whether the path was never initialized.
func (repositoryPath RepositoryPath) IsZero() bool {
	return len(repositoryPath.absolutePath) == 0
}

// Depth counts the path components below the filesystem root.
func (repositoryPath RepositoryPath) Depth() int {
	volumeName := filepath.VolumeName(repositoryPath.absolutePath)
	withoutVolume := strings.TrimPrefix(repositoryPath.absolutePath, volumeName)
	depth := 0
	for _, element := range strings.Split(filepath.ToSlash(withoutVolume), "/") {
		if len(element) > 0 {
			depth++
		}
	}
	return depth
}

// RelativeTo returns the slash-separated path of the repository inside ancestor.
func (repositoryPath RepositoryPath) RelativeTo(ancestor RepositoryPath) (string, error) {
	relativePath, relativeError := filepath.Rel(ancestor.absolutePath, repositoryPath.absolutePath)
	if relativeError != nil {
		return "", relativeError
	}
	if relativePath == "." || relativePath == parentDirectoryElementConstant || strings.HasPrefix(relativePath, parentDirectoryElementConstant+string(filepath.Separator)) {
		return "", fmt.Errorf(notDescendantTemplateConstant, repositoryPath.absolutePath, ancestor.absolutePath)
	}
	return filepath.ToSlash(relativePath), nil
}
