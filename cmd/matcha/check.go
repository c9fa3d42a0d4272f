package matcha

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/bonofiglio/matcha/internal/config"
	"github.com/bonofiglio/matcha/internal/gate"
	"github.com/bonofiglio/matcha/internal/gitindex"
	"github.com/bonofiglio/matcha/internal/logging"
)

type checkCommandOptions struct {
	configPath   string
	showProgress bool
}

func newCheckCommand() *cobra.Command {
	options := &checkCommandOptions{}

	command := &cobra.Command{
		Use:   checkCommandUse,
		Short: checkCommandShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			effectiveOptions := *options
			effectiveOptions.configPath = resolveConfigurationPath(cmd.Flags().Lookup(configFlagName), options.configPath)
			return runCheckCommand(cmd, effectiveOptions)
		},
	}

	command.Flags().StringVar(&options.configPath, configFlagName, "", configFlagUsage)
	command.Flags().BoolVar(&options.showProgress, progressFlagName, false, progressFlagUsage)

	return command
}

func runCheckCommand(command *cobra.Command, options checkCommandOptions) error {
	rootConfiguration, configurationErr := loadConfiguration(options.configPath)
	if configurationErr != nil {
		return configurationErr
	}

	logger, loggerErr := logging.New(rootConfiguration.Common.Logging.Level, rootConfiguration.Common.Logging.Format)
	if loggerErr != nil {
		return fmt.Errorf(loggerConstructionErrorFormat, loggerErr)
	}
	defer func() { _ = logger.Sync() }()

	executionContext := command.Context()
	index := gitindex.New("")
	if repositoryErr := index.EnsureRepository(executionContext); repositoryErr != nil {
		return repositoryErr
	}
	repositoryRoot, rootErr := index.Root(executionContext)
	if rootErr != nil {
		return rootErr
	}
	stagedFiles, stagedErr := index.StagedFiles(executionContext)
	if stagedErr != nil {
		return stagedErr
	}

	gateRules, rulesErr := buildGateRules(rootConfiguration, repositoryRoot)
	if rulesErr != nil {
		return rulesErr
	}

	formatGate := gate.Gate{
		Rules:  gateRules,
		Stager: index,
		Logger: logger,
	}
	if options.showProgress {
		formatGate.Progress = newProgressReporter(command, len(stagedFiles))
	}

	verdict, runErr := formatGate.Run(executionContext, stagedFiles)
	if runErr != nil {
		return runErr
	}
	if !verdict.Pass() {
		if _, writeErr := fmt.Fprintln(command.OutOrStdout(), verdict.Message()); writeErr != nil {
			return fmt.Errorf("write verdict: %w", writeErr)
		}
		return gate.ErrFilesNotFormatted
	}
	return nil
}

func buildGateRules(rootConfiguration config.Root, repositoryRoot string) ([]gate.Rule, error) {
	enabledFormatters := rootConfiguration.EnabledFormatters()
	gateRules := make([]gate.Rule, 0, len(enabledFormatters))
	for _, formatter := range enabledFormatters {
		matcher, matcherErr := gate.NewMatcher(formatter.Extensions, formatter.Patterns)
		if matcherErr != nil {
			return nil, fmt.Errorf("build matcher for formatter %s: %w", formatter.Name, matcherErr)
		}
		gateRules = append(gateRules, gate.Rule{
			Name:    formatter.Name,
			Matcher: matcher,
			Checker: gate.ExecChecker{Command: formatter.Command, Args: formatter.Args, Dir: repositoryRoot},
		})
	}
	return gateRules, nil
}

func newProgressReporter(command *cobra.Command, totalFiles int) gate.ProgressFunc {
	bar := progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(command.ErrOrStderr()),
		progressbar.OptionSetDescription(progressBarDescription),
		progressbar.OptionSetWidth(progressBarWidth),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return func(completed int, total int) {
		_ = bar.Set(completed)
	}
}
