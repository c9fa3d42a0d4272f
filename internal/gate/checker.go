package gate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ExecChecker invokes an external formatter in check mode on a single
// file. The configured arguments must put the tool into a non-mutating
// mode; the file path is appended as the final argument.
//
// Any output on stdout or stderr, or a nonzero exit, means the file needs
// reformatting; the output content itself is never inspected. An error is
// returned only when the command could not be started at all.
type ExecChecker struct {
	Command string
	Args    []string
	Dir     string
}

// Check runs the formatter against one file and maps its outcome.
func (checker ExecChecker) Check(ctx context.Context, path string) (Result, error) {
	commandArgs := make([]string, 0, len(checker.Args)+1)
	commandArgs = append(commandArgs, checker.Args...)
	commandArgs = append(commandArgs, path)

	command := exec.CommandContext(ctx, checker.Command, commandArgs...)
	command.Dir = checker.Dir

	var combinedOutput bytes.Buffer
	command.Stdout = &combinedOutput
	command.Stderr = &combinedOutput

	runErr := command.Run()
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return NeedsReformatting, fmt.Errorf("invoke %s: %w", checker.Command, runErr)
		}
		return NeedsReformatting, nil
	}
	if combinedOutput.Len() > 0 {
		return NeedsReformatting, nil
	}
	return Formatted, nil
}
