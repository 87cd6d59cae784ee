package repopath_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/temirov/urisync/internal/repopath"
)

func initializeCommittedRepository(testInstance *testing.T, repositoryDirectory string) {
	testInstance.Helper()

	repository, initError := git.PlainInit(repositoryDirectory, false)
	require.NoError(testInstance, initError)

	gitModulesPath := filepath.Join(repositoryDirectory, repopath.GitModulesFileNameConstant)
	require.NoError(testInstance, os.WriteFile(gitModulesPath, []byte("[submodule \"b\"]\n\tpath = b\n\turl = https://example.com/b.git\n"), 0o600))

	worktree, worktreeError := repository.Worktree()
	require.NoError(testInstance, worktreeError)
	_, addError := worktree.Add(repopath.GitModulesFileNameConstant)
	require.NoError(testInstance, addError)
	_, commitError := worktree.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Tester", Email: "tester@example.com", When: time.Unix(1700000000, 0)},
	})
	require.NoError(testInstance, commitError)
}

func TestValidatorValidateRepository(testInstance *testing.T) {
	testCases := []struct {
		name        string
		prepare     func(testInstance *testing.T, directory string) string
		expectError bool
	}{
		{
			name: "committed_repository",
			prepare: func(testInstance *testing.T, directory string) string {
				initializeCommittedRepository(testInstance, directory)
				return directory
			},
		},
		{
			name: "repository_without_commits",
			prepare: func(testInstance *testing.T, directory string) string {
				_, initError := git.PlainInit(directory, false)
				require.NoError(testInstance, initError)
				return directory
			},
			expectError: true,
		},
		{
			name: "plain_directory",
			prepare: func(testInstance *testing.T, directory string) string {
				return directory
			},
			expectError: true,
		},
		{
			name: "missing_directory",
			prepare: func(testInstance *testing.T, directory string) string {
				return filepath.Join(directory, "absent")
			},
			expectError: true,
		},
		{
			name: "regular_file",
			prepare: func(testInstance *testing.T, directory string) string {
				filePath := filepath.Join(directory, "file")
				require.NoError(testInstance, os.WriteFile(filePath, []byte("x"), 0o600))
				return filePath
			},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			candidateDirectory := testCase.prepare(testInstance, testInstance.TempDir())
			repositoryPath, pathError := repopath.NewRepositoryPath(candidateDirectory)
			require.NoError(testInstance, pathError)

			validationError := repopath.NewValidator().ValidateRepository(repositoryPath)
			if testCase.expectError {
				var repositoryValidationError repopath.RepositoryValidationError
				require.ErrorAs(testInstance, validationError, &repositoryValidationError)
				require.Equal(testInstance, repositoryPath.String(), repositoryValidationError.Repository)
				return
			}
			require.NoError(testInstance, validationError)
		})
	}
}

func TestValidatorValidateReferences(testInstance *testing.T) {
	repositoryDirectory := testInstance.TempDir()
	initializeCommittedRepository(testInstance, repositoryDirectory)

	validator := repopath.NewValidator()
	validReference := mustGitModulesReference(testInstance, filepath.Join(repositoryDirectory, repopath.GitModulesFileNameConstant))
	require.NoError(testInstance, validator.ValidateReferences([]repopath.GitModulesReference{validReference}))

	emptyDirectory := testInstance.TempDir()
	_, initError := git.PlainInit(emptyDirectory, false)
	require.NoError(testInstance, initError)
	missingFileReference := mustGitModulesReference(testInstance, filepath.Join(emptyDirectory, repopath.GitModulesFileNameConstant))

	validationError := validator.ValidateReferences([]repopath.GitModulesReference{validReference, missingFileReference})
	require.ErrorIs(testInstance, validationError, os.ErrNotExist)
}
