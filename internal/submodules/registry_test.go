package submodules_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/urisync/internal/submodules"
)

const testGitModulesContentConstant = `# managed by hand
[submodule "b"]
	path = b
	url = ssh://git@newgit.example.com/srv/b.git
[submodule "vendor/lib"]
	path = ./vendor/lib
	url = https://newgit.example.com/lib.git
[submodule "orphan"]
	url = https://newgit.example.com/orphan.git
`

func writeGitModules(testInstance *testing.T, content string) string {
	testInstance.Helper()
	repositoryDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryDirectory, ".gitmodules"), []byte(content), 0o600))
	return repositoryDirectory
}

func TestRegistrySubmodulePaths(testInstance *testing.T) {
	repositoryDirectory := writeGitModules(testInstance, testGitModulesContentConstant)

	submodulePaths, loadError := submodules.NewRegistry().SubmodulePaths(repositoryDirectory)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []string{"b", "vendor/lib"}, submodulePaths)

	missingPaths, missingError := submodules.NewRegistry().SubmodulePaths(testInstance.TempDir())
	require.NoError(testInstance, missingError)
	require.Empty(testInstance, missingPaths)
}

func TestRegistryIsRegistered(testInstance *testing.T) {
	testCases := []struct {
		name         string
		content      *string
		relativePath string
		expected     bool
	}{
		{name: "registered", content: stringPointer(testGitModulesContentConstant), relativePath: "b", expected: true},
		{name: "nested_registered", content: stringPointer(testGitModulesContentConstant), relativePath: "vendor/lib", expected: true},
		{name: "unnormalized_path", content: stringPointer(testGitModulesContentConstant), relativePath: "./vendor/lib/", expected: true},
		{name: "unregistered", content: stringPointer(testGitModulesContentConstant), relativePath: "c", expected: false},
		{name: "section_without_path", content: stringPointer(testGitModulesContentConstant), relativePath: "orphan", expected: false},
		{name: "missing_file", content: nil, relativePath: "b", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			repositoryDirectory := testInstance.TempDir()
			if testCase.content != nil {
				repositoryDirectory = writeGitModules(testInstance, *testCase.content)
			}

			registered, registryError := submodules.NewRegistry().IsRegistered(repositoryDirectory, testCase.relativePath)
			require.NoError(testInstance, registryError)
			require.Equal(testInstance, testCase.expected, registered)
		})
	}
}

func stringPointer(value string) *string {
	return &value
}
