package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/urisync/internal/execshell"
	"github.com/temirov/urisync/internal/gitrepo"
	"github.com/temirov/urisync/internal/propagation"
	"github.com/temirov/urisync/internal/repopath"
	"github.com/temirov/urisync/internal/report"
	"github.com/temirov/urisync/internal/submodules"
	"github.com/temirov/urisync/internal/ui"
	"github.com/temirov/urisync/internal/utils"
	flagutils "github.com/temirov/urisync/internal/utils/flags"
)

const (
	applicationNameConstant                       = "urisync"
	applicationUseConstant                        = "urisync [flags] <gitmodules-list-file>"
	applicationShortDescriptionConstant           = "Commit rewritten .gitmodules files and propagate them to parent repositories"
	applicationLongDescriptionConstant            = "urisync commits .gitmodules files whose submodule URIs were rewritten, records the new submodule commits in every parent repository and pushes each repository to its upstream branch. The argument is a file listing one .gitmodules path per line."
	configFileFlagNameConstant                    = "config"
	configFileFlagUsageConstant                   = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                      = "log-level"
	logLevelFlagUsageConstant                     = "Override the configured log level."
	logFormatFlagNameConstant                     = "log-format"
	logFormatFlagUsageConstant                    = "Override the configured log format."
	branchFlagNameConstant                        = "branch"
	branchFlagUsageConstant                       = "Branch to check out in every repository before committing. Empty keeps the attached HEAD."
	fallbackBranchFlagNameConstant                = "fallback-branch"
	fallbackBranchFlagUsageConstant               = "Branch to check out when --branch does not exist locally."
	remoteFlagNameConstant                        = "remote"
	remoteFlagUsageConstant                       = "Remote to fetch from and push to."
	orderingFlagNameConstant                      = "ordering"
	orderingFlagUsageConstant                     = "Process repositories deepest first or in list order."
	reportFlagNameConstant                        = "report"
	reportFlagUsageConstant                       = "Format of the run report printed after the run."
	versionFlagNameConstant                       = "version"
	versionFlagUsageConstant                      = "Print the urisync version and exit."
	versionFlagArgumentConstant                   = "--" + versionFlagNameConstant
	argumentTerminatorConstant                    = "--"
	versionOutputTemplateConstant                 = "%s version: %s\n"
	developmentVersionConstant                    = "development"
	buildInfoDevelopmentVersionConstant           = "(devel)"
	syncConfigurationKeyConstant                  = "sync"
	syncSubmoduleMessageConfigKeyConstant         = syncConfigurationKeyConstant + ".subcommit_message"
	syncParentMessageConfigKeyConstant            = syncConfigurationKeyConstant + ".commit_message"
	syncBranchConfigKeyConstant                   = syncConfigurationKeyConstant + ".branch"
	syncFallbackBranchConfigKeyConstant           = syncConfigurationKeyConstant + ".fallback_branch"
	syncRemoteConfigKeyConstant                   = syncConfigurationKeyConstant + ".remote"
	legacySubmoduleMessageEnvironmentNameConstant = "SUBCOMMITMSG"
	legacyParentMessageEnvironmentNameConstant    = "COMMITMSG"
	legacyBranchEnvironmentNameConstant           = "BRANCH"
	legacyFallbackBranchEnvironmentNameConstant   = "FALLBACKBRANCH"
	legacyRemoteEnvironmentNameConstant           = "REMOTE"
	environmentPrefixConstant                     = "URISYNC"
	configurationNameConstant                     = "config"
	configurationTypeConstant                     = "yaml"
	configurationInitializedMessageConstant       = "configuration initialized"
	configurationLogLevelFieldConstant            = "log_level"
	configurationLogFormatFieldConstant           = "log_format"
	configurationFileFieldConstant                = "config_file"
	configurationBranchFieldConstant              = "branch"
	configurationRemoteFieldConstant              = "remote"
	configurationOrderingFieldConstant            = "ordering"
	configurationLoadErrorTemplateConstant        = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant           = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant               = "unable to flush logger: %w"
	workingDirectoryErrorTemplateConstant         = "unable to determine working directory: %w"
	reportRenderErrorTemplateConstant             = "unable to render report: %w"
	partialReportMessageConstant                  = "run stopped before completion"
	referenceListLoadedMessageConstant            = "reference list loaded"
	logFieldListFileConstant                      = "list_file"
	logFieldReferenceCountConstant                = "references"
	logFieldCompletedStepsConstant                = "completed_steps"
	loggerNotInitializedMessageConstant           = "logger not initialized"
	defaultConfigurationSearchPathConstant        = "."
	exitCodeSuccessConstant                       = 0
	exitCodeFailureConstant                       = 1
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Sync   ApplicationSyncConfiguration   `mapstructure:"sync"`
}

// ApplicationCommonConfiguration stores logging configuration.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationSyncConfiguration stores the propagation settings and the report format.
type ApplicationSyncConfiguration struct {
	propagation.Configuration `mapstructure:",squash"`
	ReportFormat              string `mapstructure:"report_format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlag          *flagutils.ChoiceValue
	logFormatFlag         *flagutils.ChoiceValue
	branchFlagValue       string
	fallbackBranchFlag    string
	remoteFlagValue       string
	orderingFlag          *flagutils.ChoiceValue
	reportFlag            *flagutils.ChoiceValue
	versionFlagValue      bool
	commandRunner         execshell.CommandRunner
	versionResolver       func(context.Context) string
	exitFunction          func(int)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())
	configurationLoader.SetEnvironmentAliases(map[string][]string{
		syncSubmoduleMessageConfigKeyConstant: {legacySubmoduleMessageEnvironmentNameConstant},
		syncParentMessageConfigKeyConstant:    {legacyParentMessageEnvironmentNameConstant},
		syncBranchConfigKeyConstant:           {legacyBranchEnvironmentNameConstant},
		syncFallbackBranchConfigKeyConstant:   {legacyFallbackBranchEnvironmentNameConstant},
		syncRemoteConfigKeyConstant:           {legacyRemoteEnvironmentNameConstant},
	})

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
		commandRunner:       execshell.NewOSCommandRunner(),
		versionResolver:     resolveBuildVersion,
		exitFunction:        os.Exit,
	}

	cobraCommand := &cobra.Command{
		Use:           applicationUseConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	defaults := propagation.DefaultConfiguration()
	flagSet := cobraCommand.PersistentFlags()
	flagSet.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	application.logLevelFlag = flagutils.RegisterChoiceFlag(flagSet, logLevelFlagNameConstant, string(utils.LogLevelInfo), utils.SupportedLogLevels(), logLevelFlagUsageConstant)
	application.logFormatFlag = flagutils.RegisterChoiceFlag(flagSet, logFormatFlagNameConstant, string(utils.LogFormatConsole), utils.SupportedLogFormats(), logFormatFlagUsageConstant)
	flagSet.StringVar(&application.branchFlagValue, branchFlagNameConstant, "", branchFlagUsageConstant)
	flagSet.StringVar(&application.fallbackBranchFlag, fallbackBranchFlagNameConstant, defaults.FallbackBranch, fallbackBranchFlagUsageConstant)
	flagSet.StringVar(&application.remoteFlagValue, remoteFlagNameConstant, defaults.RemoteName, remoteFlagUsageConstant)
	application.orderingFlag = flagutils.RegisterChoiceFlag(flagSet, orderingFlagNameConstant, string(propagation.OrderingDepth), []string{string(propagation.OrderingDepth), string(propagation.OrderingInput)}, orderingFlagUsageConstant)
	application.reportFlag = flagutils.RegisterChoiceFlag(flagSet, reportFlagNameConstant, string(report.FormatTable), report.SupportedFormats(), reportFlagUsageConstant)
	flagSet.BoolVar(&application.versionFlagValue, versionFlagNameConstant, false, versionFlagUsageConstant)

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the root command with a context cancelled on SIGINT or SIGTERM and ensures logger flushing.
// --version is answered before argument validation so it works without a list file.
func (application *Application) Execute() error {
	if versionRequested(os.Args[1:]) {
		application.printVersion(context.Background())
		return nil
	}

	executionContext, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	executionError := application.rootCommand.ExecuteContext(executionContext)
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command.
func Execute() error {
	return NewApplication().Execute()
}

// ExitCode maps an execution error to the process exit status. A failed git command propagates its own
// exit code; every other error exits with 1.
func ExitCode(executionError error) int {
	if executionError == nil {
		return exitCodeSuccessConstant
	}
	if commandExitCode, exited := execshell.ExitCodeOf(executionError); exited && commandExitCode > exitCodeSuccessConstant {
		return commandExitCode
	}
	return exitCodeFailureConstant
}

func (application *Application) printVersion(executionContext context.Context) {
	fmt.Fprintf(application.rootCommand.OutOrStdout(), versionOutputTemplateConstant, applicationNameConstant, application.versionResolver(executionContext))
	application.exitFunction(exitCodeSuccessConstant)
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, nil, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}
	application.configurationMetadata = loadedConfiguration

	application.applyFlagOverrides(command)

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}
	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.String(configurationBranchFieldConstant, application.configuration.Sync.Branch),
		zap.String(configurationRemoteFieldConstant, application.configuration.Sync.RemoteName),
		zap.String(configurationOrderingFieldConstant, string(application.configuration.Sync.Ordering)),
	)

	return nil
}

func (application *Application) applyFlagOverrides(command *cobra.Command) {
	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlag.String()
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlag.String()
	}
	if application.persistentFlagChanged(command, branchFlagNameConstant) {
		application.configuration.Sync.Branch = application.branchFlagValue
	}
	if application.persistentFlagChanged(command, fallbackBranchFlagNameConstant) {
		application.configuration.Sync.FallbackBranch = application.fallbackBranchFlag
	}
	if application.persistentFlagChanged(command, remoteFlagNameConstant) {
		application.configuration.Sync.RemoteName = application.remoteFlagValue
	}
	if application.persistentFlagChanged(command, orderingFlagNameConstant) {
		application.configuration.Sync.Ordering = propagation.OrderingMode(application.orderingFlag.String())
	}
	if application.persistentFlagChanged(command, reportFlagNameConstant) {
		application.configuration.Sync.ReportFormat = application.reportFlag.String()
	}
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	renderer, rendererError := report.NewRenderer(command.OutOrStdout(), report.Format(application.configuration.Sync.ReportFormat))
	if rendererError != nil {
		return rendererError
	}

	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorTemplateConstant, workingDirectoryError)
	}

	listFilePath := arguments[0]
	referenceReader := repopath.NewReferenceListReader(repopath.NewHomeExpander(), workingDirectory)
	references, readError := referenceReader.ReadFile(listFilePath)
	if readError != nil {
		return readError
	}
	application.logger.Debug(referenceListLoadedMessageConstant, zap.String(logFieldListFileConstant, listFilePath), zap.Int(logFieldReferenceCountConstant, len(references)))

	propagator, propagatorError := application.buildPropagator()
	if propagatorError != nil {
		return propagatorError
	}

	runReport, runError := propagator.Run(command.Context(), references)
	if runError != nil && len(runReport.Steps) > 0 {
		application.logger.Warn(partialReportMessageConstant, zap.Int(logFieldCompletedStepsConstant, len(runReport.Steps)))
	}
	if renderError := renderer.Render(runReport); renderError != nil && runError == nil {
		return fmt.Errorf(reportRenderErrorTemplateConstant, renderError)
	}
	return runError
}

func (application *Application) buildPropagator() (*propagation.Propagator, error) {
	var eventObserver execshell.CommandEventObserver
	if application.humanReadableLoggingEnabled() {
		eventObserver = ui.NewConsoleCommandEventLogger(application.logger)
	}

	executor, executorError := execshell.NewShellExecutor(application.logger, application.commandRunner, eventObserver)
	if executorError != nil {
		return nil, executorError
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(executor)
	if managerError != nil {
		return nil, managerError
	}

	return propagation.NewPropagator(propagation.Dependencies{
		RepositoryManager:   repositoryManager,
		SubmoduleRegistry:   submodules.NewRegistry(),
		RepositoryValidator: repopath.NewValidator(),
		Logger:              application.logger,
	}, application.configuration.Sync.Configuration)
}

func (application *Application) flushLogger() error {
	if syncError := application.syncLoggerInstance(application.logger); syncError != nil {
		return syncError
	}
	return nil
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}

// versionRequested reports whether --version appears before the argument terminator.
func versionRequested(arguments []string) bool {
	for _, argument := range arguments {
		if argument == argumentTerminatorConstant {
			return false
		}
		if argument == versionFlagArgumentConstant {
			return true
		}
	}
	return false
}

func resolveBuildVersion(context.Context) string {
	buildInformation, available := debug.ReadBuildInfo()
	if !available {
		return developmentVersionConstant
	}
	mainVersion := strings.TrimSpace(buildInformation.Main.Version)
	if len(mainVersion) == 0 || mainVersion == buildInfoDevelopmentVersionConstant {
		return developmentVersionConstant
	}
	return mainVersion
}
