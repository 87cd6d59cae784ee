package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	pathListSeparatorConstant               = ", "
	flagPrefixConstant                      = "-"
	pathspecSeparatorConstant               = "--"
	localBranchReferencePrefixConstant      = "refs/heads/"
)

const (
	gitRevParseSubcommandNameConstant    = "rev-parse"
	gitAbbrevRefFlagConstant             = "--abbrev-ref"
	gitSymbolicFullNameFlagConstant      = "--symbolic-full-name"
	gitShowSuperprojectFlagConstant      = "--show-superproject-working-tree"
	gitUpstreamReferenceConstant         = "@{u}"
	gitHeadReferenceConstant             = "HEAD"
	gitSymbolicRefSubcommandNameConstant = "symbolic-ref"
	gitShowRefSubcommandNameConstant     = "show-ref"
	gitCheckoutSubcommandNameConstant    = "checkout"
	gitFetchSubcommandNameConstant       = "fetch"
	gitRebaseSubcommandNameConstant      = "rebase"
	gitPushSubcommandNameConstant        = "push"
	gitAddSubcommandNameConstant         = "add"
	gitDiffSubcommandNameConstant        = "diff"
	gitCommitSubcommandNameConstant      = "commit"
	gitMessageFlagConstant               = "-m"
)

const (
	gitCurrentBranchStartTemplateConstant            = "Identifying current branch in %s"
	gitCurrentBranchSuccessTemplateConstant          = "Current branch in %s is %s"
	gitCurrentBranchDetachedSuccessTemplateConstant  = "%s is in a detached HEAD state"
	gitCurrentBranchFailureTemplateConstant          = "Failed to identify current branch in %s (exit code %d%s)"
	gitCurrentBranchExecutionFailureTemplateConstant = "Unable to identify current branch in %s: %s"
	gitUpstreamStartTemplateConstant                 = "Checking upstream branch configuration in %s"
	gitUpstreamSuccessTemplateConstant               = "Upstream branch in %s is %s"
	gitUpstreamMissingTemplateConstant               = "No upstream branch configured in %s"
	gitUpstreamExecutionFailureTemplateConstant      = "Unable to check upstream branch configuration in %s: %s"
	gitSuperprojectStartTemplateConstant             = "Looking up the superproject of %s"
	gitSuperprojectSuccessTemplateConstant           = "%s is a submodule of %s"
	gitSuperprojectMissingTemplateConstant           = "%s has no superproject"
	gitSuperprojectFailureTemplateConstant           = "Failed to look up the superproject of %s (exit code %d%s)"
	gitSuperprojectExecutionFailureTemplateConstant  = "Unable to look up the superproject of %s: %s"
	gitHeadAttachmentStartTemplateConstant           = "Checking whether HEAD is attached in %s"
	gitHeadAttachedTemplateConstant                  = "HEAD in %s points to %s"
	gitHeadDetachedTemplateConstant                  = "%s is in a detached HEAD state"
	gitHeadAttachmentExecutionFailureTemplateConst   = "Unable to inspect HEAD in %s: %s"
	gitBranchLookupStartTemplateConstant             = "Checking for local branch %s in %s"
	gitBranchLookupSuccessTemplateConstant           = "Local branch %s exists in %s"
	gitBranchLookupMissingTemplateConstant           = "Local branch %s does not exist in %s"
	gitBranchLookupExecutionFailureTemplateConstant  = "Unable to check for local branch %s in %s: %s"
	gitCheckoutStartTemplateConstant                 = "Switching %s to branch %s"
	gitCheckoutSuccessTemplateConstant               = "%s now on branch %s"
	gitCheckoutFailureTemplateConstant               = "Failed to switch %s to branch %s (exit code %d%s)"
	gitCheckoutExecutionFailureTemplateConstant      = "Unable to switch %s to branch %s: %s"
	gitFetchStartTemplateConstant                    = "Fetching from %s in %s"
	gitFetchSuccessTemplateConstant                  = "Fetched from %s in %s"
	gitFetchFailureTemplateConstant                  = "Failed to fetch from %s in %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant         = "Unable to fetch from %s in %s: %s"
	gitRebaseStartTemplateConstant                   = "Rebasing %s onto %s"
	gitRebaseSuccessTemplateConstant                 = "Rebased %s onto %s"
	gitRebaseFailureTemplateConstant                 = "Failed to rebase %s onto %s (exit code %d%s)"
	gitRebaseExecutionFailureTemplateConstant        = "Unable to rebase %s onto %s: %s"
	gitPushStartTemplateConstant                     = "Pushing %s to %s from %s"
	gitPushSuccessTemplateConstant                   = "Pushed %s to %s from %s"
	gitPushFailureTemplateConstant                   = "Failed to push %s to %s from %s (exit code %d%s)"
	gitPushExecutionFailureTemplateConstant          = "Unable to push %s to %s from %s: %s"
	gitAddStartTemplateConstant                      = "Staging %s in %s"
	gitAddSuccessTemplateConstant                    = "Staged %s in %s"
	gitAddFailureTemplateConstant                    = "Failed to stage %s in %s (exit code %d%s)"
	gitAddExecutionFailureTemplateConstant           = "Unable to stage %s in %s: %s"
	gitStagedDiffStartTemplateConstant               = "Comparing staged %s with HEAD in %s"
	gitStagedDiffUnchangedTemplateConstant           = "Staged %s in %s matches HEAD"
	gitStagedDiffChangedTemplateConstant             = "Staged %s in %s differs from HEAD"
	gitStagedDiffFailureTemplateConstant             = "Failed to compare staged %s with HEAD in %s (exit code %d%s)"
	gitStagedDiffExecutionFailureTemplateConstant    = "Unable to compare staged %s with HEAD in %s: %s"
	gitCommitStartTemplateConstant                   = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant                 = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant                 = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant        = "Unable to create commit in %s with message %q: %s"
	gitProbeNegativeExitCodeConstant                 = 1
	gitUpstreamMissingExitCodeConstant               = 128
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildCompletedMessage formats a message for a finished command, using the output when it matters.
func (formatter CommandMessageFormatter) BuildCompletedMessage(command ShellCommand, result ExecutionResult) string {
	if result.ExitCode != 0 {
		return formatter.buildMessage(command, result, nil, messageStageFailure)
	}
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

// IsExpectedNegativeOutcome reports whether a non-zero exit is an answer rather than a failure.
//
// Probes such as show-ref --verify, symbolic-ref -q, diff --quiet and the upstream lookup signal
// "no" through their exit code.
func (formatter CommandMessageFormatter) IsExpectedNegativeOutcome(command ShellCommand, result ExecutionResult) bool {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return false
	}
	arguments := command.Details.Arguments
	switch strings.TrimSpace(arguments[0]) {
	case gitShowRefSubcommandNameConstant, gitSymbolicRefSubcommandNameConstant, gitDiffSubcommandNameConstant:
		return result.ExitCode == gitProbeNegativeExitCodeConstant
	case gitRevParseSubcommandNameConstant:
		return containsArgument(arguments, gitUpstreamReferenceConstant) && result.ExitCode == gitUpstreamMissingExitCodeConstant
	default:
		return false
	}
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch strings.TrimSpace(command.Details.Arguments[0]) {
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitSymbolicRefSubcommandNameConstant:
		return formatter.describeGitSymbolicRefMessage(command, result, failure, stage)
	case gitShowRefSubcommandNameConstant:
		return formatter.describeGitShowRefMessage(command, result, failure, stage)
	case gitCheckoutSubcommandNameConstant:
		return formatter.describeGitCheckoutMessage(command, result, failure, stage)
	case gitFetchSubcommandNameConstant:
		return formatter.describeGitFetchMessage(command, result, failure, stage)
	case gitRebaseSubcommandNameConstant:
		return formatter.describeGitRebaseMessage(command, result, failure, stage)
	case gitPushSubcommandNameConstant:
		return formatter.describeGitPushMessage(command, result, failure, stage)
	case gitAddSubcommandNameConstant:
		return formatter.describeGitAddMessage(command, result, failure, stage)
	case gitDiffSubcommandNameConstant:
		return formatter.describeGitDiffMessage(command, result, failure, stage)
	case gitCommitSubcommandNameConstant:
		return formatter.describeGitCommitMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	trimmedOutput := strings.TrimSpace(result.StandardOutput)

	if containsArgument(arguments, gitShowSuperprojectFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitSuperprojectStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			if len(trimmedOutput) == 0 {
				return fmt.Sprintf(gitSuperprojectMissingTemplateConstant, workingDirectory)
			}
			return fmt.Sprintf(gitSuperprojectSuccessTemplateConstant, workingDirectory, trimmedOutput)
		case messageStageFailure:
			return fmt.Sprintf(gitSuperprojectFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitSuperprojectExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if containsArgument(arguments, gitSymbolicFullNameFlagConstant) && containsArgument(arguments, gitUpstreamReferenceConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitUpstreamStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			if len(trimmedOutput) == 0 {
				return fmt.Sprintf(gitUpstreamMissingTemplateConstant, workingDirectory)
			}
			return fmt.Sprintf(gitUpstreamSuccessTemplateConstant, workingDirectory, trimmedOutput)
		case messageStageFailure:
			return fmt.Sprintf(gitUpstreamMissingTemplateConstant, workingDirectory)
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitUpstreamExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if containsArgument(arguments, gitAbbrevRefFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitCurrentBranchStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			if strings.EqualFold(trimmedOutput, gitHeadReferenceConstant) || len(trimmedOutput) == 0 {
				return fmt.Sprintf(gitCurrentBranchDetachedSuccessTemplateConstant, workingDirectory)
			}
			return fmt.Sprintf(gitCurrentBranchSuccessTemplateConstant, workingDirectory, trimmedOutput)
		case messageStageFailure:
			return fmt.Sprintf(gitCurrentBranchFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitCurrentBranchExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitSymbolicRefMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitHeadAttachmentStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitHeadAttachedTemplateConstant, workingDirectory, formatter.ensureValue(strings.TrimSpace(result.StandardOutput)))
	case messageStageFailure:
		return fmt.Sprintf(gitHeadDetachedTemplateConstant, workingDirectory)
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitHeadAttachmentExecutionFailureTemplateConst, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitShowRefMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	reference := formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:])
	branchName := formatter.ensureValue(strings.TrimPrefix(reference, localBranchReferencePrefixConstant))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitBranchLookupStartTemplateConstant, branchName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitBranchLookupSuccessTemplateConstant, branchName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitBranchLookupMissingTemplateConstant, branchName, workingDirectory)
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitBranchLookupExecutionFailureTemplateConstant, branchName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCheckoutMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	branchName := formatter.ensureValue(formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:]))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCheckoutStartTemplateConstant, workingDirectory, branchName)
	case messageStageSuccess:
		return fmt.Sprintf(gitCheckoutSuccessTemplateConstant, workingDirectory, branchName)
	case messageStageFailure:
		return fmt.Sprintf(gitCheckoutFailureTemplateConstant, workingDirectory, branchName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCheckoutExecutionFailureTemplateConstant, workingDirectory, branchName, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitFetchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName := formatter.ensureValue(formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:]))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitFetchStartTemplateConstant, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitFetchSuccessTemplateConstant, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitFetchFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitFetchExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRebaseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	upstream := formatter.ensureValue(formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:]))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRebaseStartTemplateConstant, workingDirectory, upstream)
	case messageStageSuccess:
		return fmt.Sprintf(gitRebaseSuccessTemplateConstant, workingDirectory, upstream)
	case messageStageFailure:
		return fmt.Sprintf(gitRebaseFailureTemplateConstant, workingDirectory, upstream, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitRebaseExecutionFailureTemplateConstant, workingDirectory, upstream, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitPushMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	positionalArguments := formatter.collectNonFlagArguments(command.Details.Arguments[1:])
	remoteName := fallbackUnknownValueLabelConstant
	reference := gitHeadReferenceConstant
	if len(positionalArguments) > 0 {
		remoteName = positionalArguments[0]
	}
	if len(positionalArguments) > 1 {
		reference = positionalArguments[1]
	}
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitPushStartTemplateConstant, reference, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitPushSuccessTemplateConstant, reference, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitPushFailureTemplateConstant, reference, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitPushExecutionFailureTemplateConstant, reference, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitAddMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	targetPaths := formatter.describePathspec(command.Details.Arguments)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitAddStartTemplateConstant, targetPaths, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitAddSuccessTemplateConstant, targetPaths, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitAddFailureTemplateConstant, targetPaths, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitAddExecutionFailureTemplateConstant, targetPaths, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitDiffMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	targetPaths := formatter.describePathspec(command.Details.Arguments)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitStagedDiffStartTemplateConstant, targetPaths, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitStagedDiffUnchangedTemplateConstant, targetPaths, workingDirectory)
	case messageStageFailure:
		if result.ExitCode == gitProbeNegativeExitCodeConstant {
			return fmt.Sprintf(gitStagedDiffChangedTemplateConstant, targetPaths, workingDirectory)
		}
		return fmt.Sprintf(gitStagedDiffFailureTemplateConstant, targetPaths, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitStagedDiffExecutionFailureTemplateConstant, targetPaths, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCommitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	commitMessage := formatter.extractCommitMessage(command.Details.Arguments)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCommitStartTemplateConstant, workingDirectory, commitMessage)
	case messageStageSuccess:
		return fmt.Sprintf(gitCommitSuccessTemplateConstant, workingDirectory, commitMessage)
	case messageStageFailure:
		return fmt.Sprintf(gitCommitFailureTemplateConstant, workingDirectory, commitMessage, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCommitExecutionFailureTemplateConstant, workingDirectory, commitMessage, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
	workingDirectorySuffix := emptyStringConstant
	if trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(trimmedWorkingDirectory) > 0 {
		workingDirectorySuffix = fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describePathspec(arguments []string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == pathspecSeparatorConstant && index+1 < len(arguments) {
			return strings.Join(arguments[index+1:], pathListSeparatorConstant)
		}
	}
	return formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments[1:]))
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return value
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	positionalArguments := formatter.collectNonFlagArguments(arguments)
	if len(positionalArguments) == 0 {
		return emptyStringConstant
	}
	return positionalArguments[0]
}

func (formatter CommandMessageFormatter) collectNonFlagArguments(arguments []string) []string {
	positionalArguments := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, flagPrefixConstant) {
			continue
		}
		positionalArguments = append(positionalArguments, trimmed)
	}
	return positionalArguments
}

func (formatter CommandMessageFormatter) extractCommitMessage(arguments []string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == gitMessageFlagConstant && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return fallbackUnknownValueLabelConstant
}

func containsArgument(arguments []string, expected string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == expected {
			return true
		}
	}
	return false
}
