package matcha

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type listCommandOptions struct {
	includeDisabled bool
	configPath      string
}

func newListCommand() *cobra.Command {
	options := &listCommandOptions{}

	command := &cobra.Command{
		Use:   listCommandUse,
		Short: listCommandShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			effectiveOptions := *options
			effectiveOptions.configPath = resolveConfigurationPath(cmd.Flags().Lookup(configFlagName), options.configPath)
			return runListCommand(cmd, effectiveOptions)
		},
	}

	command.Flags().BoolVar(&options.includeDisabled, allFlagName, false, allFlagUsage)
	command.Flags().StringVar(&options.configPath, configFlagName, "", configFlagUsage)

	return command
}

func runListCommand(command *cobra.Command, options listCommandOptions) error {
	rootConfiguration, configurationErr := loadConfiguration(options.configPath)
	if configurationErr != nil {
		return configurationErr
	}

	outputWriter := command.OutOrStdout()
	for _, formatter := range rootConfiguration.Formatters {
		if !options.includeDisabled && !formatter.Enabled {
			continue
		}

		formatterStateLabel := enabledStateLabel
		if !formatter.Enabled {
			formatterStateLabel = disabledStateLabel
		}

		_, writeErr := fmt.Fprintf(outputWriter, "%s\t(%s, extensions=%s, command=%s)\n",
			formatter.Name,
			formatterStateLabel,
			dashIfEmpty(strings.Join(formatter.Extensions, " ")),
			formatter.Command)
		if writeErr != nil {
			return fmt.Errorf("write formatter listing: %w", writeErr)
		}
	}

	return nil
}

func dashIfEmpty(value string) string {
	if value == "" {
		return dashPlaceholder
	}
	return value
}
