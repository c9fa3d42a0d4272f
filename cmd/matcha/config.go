package matcha

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bonofiglio/matcha/internal/config"
)

func newConfigCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   configCommandUse,
		Short: configCommandShort,
	}

	command.AddCommand(newConfigInitCommand())
	command.AddCommand(newConfigShowCommand())

	return command
}

func newConfigInitCommand() *cobra.Command {
	var destinationPath string

	command := &cobra.Command{
		Use:   configInitCommandUse,
		Short: configInitCommandShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInitCommand(cmd, destinationPath)
		},
	}

	command.Flags().StringVar(&destinationPath, pathFlagName, defaultStarterConfigurationFileName, pathFlagUsage)

	return command
}

func runConfigInitCommand(command *cobra.Command, destinationPath string) error {
	if _, statErr := os.Stat(destinationPath); statErr == nil {
		return fmt.Errorf(configurationExistsErrorFormat, destinationPath)
	} else if !errors.Is(statErr, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", destinationPath, statErr)
	}

	if writeErr := os.WriteFile(destinationPath, config.DefaultConfiguration(), starterConfigurationFilePermissions); writeErr != nil {
		return fmt.Errorf(starterConfigurationWriteErrorFormat, destinationPath, writeErr)
	}

	_, writeErr := fmt.Fprintf(command.OutOrStdout(), "wrote %s\n", destinationPath)
	return writeErr
}

func newConfigShowCommand() *cobra.Command {
	var configPath string

	command := &cobra.Command{
		Use:   configShowCommandUse,
		Short: configShowCommandShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			effectivePath := resolveConfigurationPath(cmd.Flags().Lookup(configFlagName), configPath)
			return runConfigShowCommand(cmd, effectivePath)
		},
	}

	command.Flags().StringVar(&configPath, configFlagName, "", configFlagUsage)

	return command
}

func runConfigShowCommand(command *cobra.Command, configPath string) error {
	rootConfiguration, configurationErr := loadConfiguration(configPath)
	if configurationErr != nil {
		return configurationErr
	}

	renderedConfiguration, marshalErr := yaml.Marshal(rootConfiguration)
	if marshalErr != nil {
		return fmt.Errorf(configurationRenderErrorFormat, marshalErr)
	}

	_, writeErr := fmt.Fprint(command.OutOrStdout(), string(renderedConfiguration))
	return writeErr
}
