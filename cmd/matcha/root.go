package matcha

import (
	"github.com/spf13/cobra"
)

// NewRootCommand assembles the full command tree. Commands are built
// fresh per call so tests never share flag state.
func NewRootCommand() *cobra.Command {
	command := &cobra.Command{
		Use:           rootCommandUse,
		Short:         rootCommandShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	command.AddCommand(newCheckCommand())
	command.AddCommand(newListCommand())
	command.AddCommand(newHooksCommand())
	command.AddCommand(newConfigCommand())

	return command
}

// Execute runs the CLI and reports the outcome to main.
func Execute() error {
	return NewRootCommand().Execute()
}
