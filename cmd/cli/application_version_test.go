package cli

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

type stdoutCapture struct {
	original *os.File
	reader   *os.File
	writer   *os.File
}

func startStdoutCapture(t *testing.T) stdoutCapture {
	t.Helper()

	reader, writer, pipeError := os.Pipe()
	require.NoError(t, pipeError)

	capture := stdoutCapture{
		original: os.Stdout,
		reader:   reader,
		writer:   writer,
	}

	os.Stdout = writer
	return capture
}

func (capture *stdoutCapture) Stop(t *testing.T) string {
	t.Helper()

	os.Stdout = capture.original
	require.NoError(t, capture.writer.Close())

	capturedBytes, readError := io.ReadAll(capture.reader)
	require.NoError(t, readError)
	require.NoError(t, capture.reader.Close())

	output := string(capturedBytes)
	capture.reader = nil
	capture.writer = nil
	return output
}

func TestApplicationVersionFlagPrintsVersionAndExits(t *testing.T) {
	testCases := []struct {
		name           string
		arguments      []string
		expectExit     bool
		expectedOutput string
	}{
		{
			name:           "flag_only",
			arguments:      []string{"--version"},
			expectExit:     true,
			expectedOutput: "urisync version: v1.2.0\n",
		},
		{
			name:           "flag_beside_list_file",
			arguments:      []string{"modified-gitmodules.txt", "--version"},
			expectExit:     true,
			expectedOutput: "urisync version: v1.2.0\n",
		},
		{
			name:      "flag_after_terminator_is_list_file",
			arguments: []string{"--log-level", "error", "--", "--version"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			clearSyncEnvironment(t)
			t.Chdir(t.TempDir())

			application := NewApplication()
			application.versionResolver = func(context.Context) string {
				return "v1.2.0"
			}
			application.rootCommand.SetErr(io.Discard)

			exitCode := -1
			sentinel := "version-exit"
			application.exitFunction = func(code int) {
				exitCode = code
				panic(sentinel)
			}

			capture := startStdoutCapture(t)
			defer func() {
				if capture.reader != nil {
					_ = capture.Stop(t)
				}
			}()

			originalArgs := os.Args
			defer func() {
				os.Args = originalArgs
			}()
			os.Args = append([]string{"urisync"}, testCase.arguments...)

			if testCase.expectExit {
				require.PanicsWithValue(t, sentinel, func() {
					_ = application.Execute()
				})
				require.Equal(t, testCase.expectedOutput, capture.Stop(t))
				require.Equal(t, 0, exitCode)
				return
			}

			executionError := application.Execute()
			require.ErrorIs(t, executionError, os.ErrNotExist)
			require.Contains(t, executionError.Error(), "--version")
			require.Empty(t, capture.Stop(t))
			require.Equal(t, -1, exitCode)
		})
	}
}
