package propagation_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/urisync/internal/repopath"
)

type fakeRepositoryManager struct {
	detachedRepositories map[string]bool
	localBranches        map[string][]string
	pendingChanges       map[string]map[string]bool
	trackedUpstreams     map[string]string
	currentBranches      map[string]string
	superprojects        map[string]string
	failures             map[string]error
	operations           []string
}

func newFakeRepositoryManager() *fakeRepositoryManager {
	return &fakeRepositoryManager{
		detachedRepositories: map[string]bool{},
		localBranches:        map[string][]string{},
		pendingChanges:       map[string]map[string]bool{},
		trackedUpstreams:     map[string]string{},
		currentBranches:      map[string]string{},
		superprojects:        map[string]string{},
		failures:             map[string]error{},
	}
}

func (manager *fakeRepositoryManager) record(operation string, repositoryPath string, arguments ...string) error {
	entry := strings.TrimSpace(fmt.Sprintf("%s %s %s", operation, repositoryPath, strings.Join(arguments, " ")))
	manager.operations = append(manager.operations, entry)
	if failure, found := manager.failures[operation+" "+repositoryPath]; found {
		return failure
	}
	return nil
}

// markPending records uncommitted working tree changes. A commit in a submodule marks the submodule
// path as changed in its superproject, mirroring how git reports a moved gitlink.
func (manager *fakeRepositoryManager) markPending(repositoryPath string, paths ...string) {
	if manager.pendingChanges[repositoryPath] == nil {
		manager.pendingChanges[repositoryPath] = map[string]bool{}
	}
	for _, path := range paths {
		manager.pendingChanges[repositoryPath][path] = true
	}
}

func (manager *fakeRepositoryManager) rewriteGitModules(repositoryPaths ...string) {
	for _, repositoryPath := range repositoryPaths {
		manager.markPending(repositoryPath, ".gitmodules")
	}
}

func (manager *fakeRepositoryManager) pendingPaths(repositoryPath string) []string {
	paths := make([]string, 0)
	for path := range manager.pendingChanges[repositoryPath] {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (manager *fakeRepositoryManager) operationsNamed(operation string) []string {
	matching := make([]string, 0)
	for _, entry := range manager.operations {
		if strings.HasPrefix(entry, operation+" ") {
			matching = append(matching, entry)
		}
	}
	return matching
}

func (manager *fakeRepositoryManager) LocalBranchExists(_ context.Context, repositoryPath string, branchName string) (bool, error) {
	if failure := manager.record("show-ref", repositoryPath, branchName); failure != nil {
		return false, failure
	}
	for _, localBranch := range manager.localBranches[repositoryPath] {
		if localBranch == branchName {
			return true, nil
		}
	}
	return false, nil
}

func (manager *fakeRepositoryManager) CheckoutBranch(_ context.Context, repositoryPath string, branchName string) error {
	if failure := manager.record("checkout", repositoryPath, branchName); failure != nil {
		return failure
	}
	manager.currentBranches[repositoryPath] = branchName
	return nil
}

func (manager *fakeRepositoryManager) IsHeadAttached(_ context.Context, repositoryPath string) (bool, error) {
	if failure := manager.record("symbolic-ref", repositoryPath); failure != nil {
		return false, failure
	}
	return !manager.detachedRepositories[repositoryPath], nil
}

func (manager *fakeRepositoryManager) GetCurrentBranch(_ context.Context, repositoryPath string) (string, error) {
	if failure := manager.record("current-branch", repositoryPath); failure != nil {
		return "", failure
	}
	if branchName, found := manager.currentBranches[repositoryPath]; found {
		return branchName, nil
	}
	return "master", nil
}

func (manager *fakeRepositoryManager) GetUpstreamBranch(_ context.Context, repositoryPath string) (string, bool, error) {
	if failure := manager.record("upstream", repositoryPath); failure != nil {
		return "", false, failure
	}
	upstream, tracking := manager.trackedUpstreams[repositoryPath]
	return upstream, tracking, nil
}

func (manager *fakeRepositoryManager) StagePaths(_ context.Context, repositoryPath string, paths []string) error {
	return manager.record("add", repositoryPath, paths...)
}

func (manager *fakeRepositoryManager) HasStagedChanges(_ context.Context, repositoryPath string, paths []string) (bool, error) {
	if failure := manager.record("diff", repositoryPath, paths...); failure != nil {
		return false, failure
	}
	for _, path := range paths {
		if manager.pendingChanges[repositoryPath][path] {
			return true, nil
		}
	}
	return false, nil
}

func (manager *fakeRepositoryManager) Commit(_ context.Context, repositoryPath string, message string, paths []string) error {
	if failure := manager.record("commit", repositoryPath, append([]string{message}, paths...)...); failure != nil {
		return failure
	}
	for _, path := range paths {
		delete(manager.pendingChanges[repositoryPath], path)
	}
	if superprojectRoot := manager.superprojects[repositoryPath]; len(superprojectRoot) > 0 {
		relativePath, _ := filepath.Rel(superprojectRoot, repositoryPath)
		manager.markPending(superprojectRoot, relativePath)
	}
	return nil
}

func (manager *fakeRepositoryManager) Fetch(_ context.Context, repositoryPath string, remoteName string) error {
	return manager.record("fetch", repositoryPath, remoteName)
}

func (manager *fakeRepositoryManager) Rebase(_ context.Context, repositoryPath string, upstream string) error {
	return manager.record("rebase", repositoryPath, upstream)
}

func (manager *fakeRepositoryManager) PushHead(_ context.Context, repositoryPath string, remoteName string) error {
	return manager.record("push", repositoryPath, remoteName)
}

func (manager *fakeRepositoryManager) GetSuperprojectRoot(_ context.Context, repositoryPath string) (string, error) {
	if failure := manager.record("superproject", repositoryPath); failure != nil {
		return "", failure
	}
	return manager.superprojects[repositoryPath], nil
}

type fakeSubmoduleRegistry struct {
	registered map[string][]string
	failure    error
}

func (registry fakeSubmoduleRegistry) IsRegistered(repositoryPath string, relativePath string) (bool, error) {
	if registry.failure != nil {
		return false, registry.failure
	}
	for _, registeredPath := range registry.registered[repositoryPath] {
		if registeredPath == relativePath {
			return true, nil
		}
	}
	return false, nil
}

type fakeRepositoryValidator struct {
	failure   error
	validated []string
}

func (validator *fakeRepositoryValidator) ValidateReferences(references []repopath.GitModulesReference) error {
	for _, reference := range references {
		validator.validated = append(validator.validated, reference.RepositoryPath().String())
	}
	return validator.failure
}

func references(repositoryPaths ...string) []repopath.GitModulesReference {
	gitModulesReferences := make([]repopath.GitModulesReference, 0, len(repositoryPaths))
	for _, repositoryPath := range repositoryPaths {
		reference, referenceError := repopath.NewGitModulesReference(repositoryPath + "/.gitmodules")
		if referenceError != nil {
			panic(referenceError)
		}
		gitModulesReferences = append(gitModulesReferences, reference)
	}
	return gitModulesReferences
}

func mustRepositoryPath(candidate string) repopath.RepositoryPath {
	repositoryPath, pathError := repopath.NewRepositoryPath(candidate)
	if pathError != nil {
		panic(pathError)
	}
	return repositoryPath
}
