package matcha

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bonofiglio/matcha/internal/fsops"
	"github.com/bonofiglio/matcha/internal/gitindex"
	"github.com/bonofiglio/matcha/internal/hooks"
)

func newHooksCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   hooksCommandUse,
		Short: hooksCommandShort,
	}

	command.AddCommand(newHooksInstallCommand())
	command.AddCommand(newHooksUninstallCommand())
	command.AddCommand(newHooksStatusCommand())

	return command
}

func newHooksInstallCommand() *cobra.Command {
	var force bool

	command := &cobra.Command{
		Use:   hooksInstallCommandUse,
		Short: hooksInstallCommandShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, managerErr := newHookManager(cmd)
			if managerErr != nil {
				return managerErr
			}
			if installErr := manager.Install(force); installErr != nil {
				return installErr
			}
			_, writeErr := fmt.Fprintln(cmd.OutOrStdout(), "pre-commit hook installed")
			return writeErr
		},
	}

	command.Flags().BoolVar(&force, forceFlagName, false, forceFlagUsage)

	return command
}

func newHooksUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   hooksUninstallCommandUse,
		Short: hooksUninstallCommandShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, managerErr := newHookManager(cmd)
			if managerErr != nil {
				return managerErr
			}
			if uninstallErr := manager.Uninstall(); uninstallErr != nil {
				return uninstallErr
			}
			_, writeErr := fmt.Fprintln(cmd.OutOrStdout(), "pre-commit hook removed")
			return writeErr
		},
	}
}

func newHooksStatusCommand() *cobra.Command {
	var asJSON bool

	command := &cobra.Command{
		Use:   hooksStatusCommandUse,
		Short: hooksStatusCommandShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, managerErr := newHookManager(cmd)
			if managerErr != nil {
				return managerErr
			}
			hookStatus, statusErr := manager.Status()
			if statusErr != nil {
				return statusErr
			}
			return writeHookStatus(cmd, hookStatus, asJSON)
		},
	}

	command.Flags().BoolVar(&asJSON, jsonFlagName, false, jsonFlagUsage)

	return command
}

func newHookManager(command *cobra.Command) (hooks.Manager, error) {
	executionContext := command.Context()
	index := gitindex.New("")
	if repositoryErr := index.EnsureRepository(executionContext); repositoryErr != nil {
		return hooks.Manager{}, repositoryErr
	}
	gitDirectory, gitDirectoryErr := index.GitDir(executionContext)
	if gitDirectoryErr != nil {
		return hooks.Manager{}, gitDirectoryErr
	}
	return hooks.NewManager(fsops.NewOS(), gitDirectory), nil
}

func writeHookStatus(command *cobra.Command, hookStatus hooks.Status, asJSON bool) error {
	outputWriter := command.OutOrStdout()
	if asJSON {
		encodedStatus, encodeErr := json.MarshalIndent(hookStatus, "", "  ")
		if encodeErr != nil {
			return fmt.Errorf(hookStatusEncodeErrorFormat, encodeErr)
		}
		_, writeErr := fmt.Fprintln(outputWriter, string(encodedStatus))
		return writeErr
	}

	installedLabel := "not installed"
	if hookStatus.Installed {
		installedLabel = "installed"
	}
	_, writeErr := fmt.Fprintf(outputWriter, "%s\t(%s, managed=%v, executable=%v, backup=%v)\n",
		hookStatus.Path, installedLabel, hookStatus.Managed, hookStatus.Executable, hookStatus.BackupPresent)
	return writeErr
}
