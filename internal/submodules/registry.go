package submodules

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gopasspw/gitconfig"
)

const (
	gitModulesFileNameConstant        = ".gitmodules"
	submoduleSectionNameConstant      = "submodule"
	submodulePathKeyTemplateConstant  = "submodule.%s.path"
	registryConfigurationNameConstant = "urisync-gitmodules"
	registryEnvironmentPrefixConstant = "URISYNC_GITMODULES"
	registryReadErrorTemplateConstant = "unable to read %s in %s: %w"
	currentDirectoryPrefixConstant    = "./"
)

// Registry loads .gitmodules files through gitconfig, which handles quoting, escapes and comments.
type Registry struct{}

// NewRegistry constructs a Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// SubmodulePaths returns the sorted, normalized path of every [submodule "<name>"] section in the
// .gitmodules file at the root of repositoryPath. A missing file yields no paths.
func (registry *Registry) SubmodulePaths(repositoryPath string) ([]string, error) {
	gitModulesPath := filepath.Join(repositoryPath, gitModulesFileNameConstant)
	if _, statError := os.Stat(gitModulesPath); statError != nil {
		if errors.Is(statError, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(registryReadErrorTemplateConstant, gitModulesFileNameConstant, repositoryPath, statError)
	}

	configurations := newGitModulesConfigs()
	configurations.LoadAll(repositoryPath)

	submodulePaths := make([]string, 0)
	for _, submoduleName := range configurations.ListSubsections(submoduleSectionNameConstant) {
		submodulePath := configurations.GetLocal(fmt.Sprintf(submodulePathKeyTemplateConstant, submoduleName))
		if len(strings.TrimSpace(submodulePath)) == 0 {
			continue
		}
		submodulePaths = append(submodulePaths, normalizeSubmodulePath(submodulePath))
	}
	sort.Strings(submodulePaths)
	return submodulePaths, nil
}

// IsRegistered reports whether relativePath is a registered submodule of repositoryPath.
func (registry *Registry) IsRegistered(repositoryPath string, relativePath string) (bool, error) {
	submodulePaths, loadError := registry.SubmodulePaths(repositoryPath)
	if loadError != nil {
		return false, loadError
	}
	normalizedPath := normalizeSubmodulePath(relativePath)
	for _, submodulePath := range submodulePaths {
		if submodulePath == normalizedPath {
			return true, nil
		}
	}
	return false, nil
}

// newGitModulesConfigs points gitconfig at .gitmodules as the local scope and disables every
// other scope so user and system settings cannot leak into the registry.
func newGitModulesConfigs() *gitconfig.Configs {
	configurations := gitconfig.New()
	configurations.Name = registryConfigurationNameConstant
	configurations.SystemConfig = ""
	configurations.GlobalConfig = ""
	configurations.LocalConfig = gitModulesFileNameConstant
	configurations.EnvPrefix = registryEnvironmentPrefixConstant
	configurations.NoWrites = true
	return configurations
}

func normalizeSubmodulePath(candidatePath string) string {
	trimmedPath := strings.TrimSpace(filepath.ToSlash(candidatePath))
	trimmedPath = strings.TrimPrefix(trimmedPath, currentDirectoryPrefixConstant)
	return path.Clean(trimmedPath)
}
