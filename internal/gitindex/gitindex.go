// Package gitindex provides the staging-index collaborator of the format
// gate: listing staged files and re-staging them through the git binary.
package gitindex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	gitExecutableName = "git"
	// ACMR keeps the listing to paths that still exist in the index; a
	// deleted file cannot be format-checked.
	stagedDiffFilter = "ACMR"
)

// ErrNotARepository indicates the working directory is outside a git work tree.
var ErrNotARepository = errors.New("not inside a git work tree")

// CommandRunner executes git commands within a working directory.
type CommandRunner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (string, error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, dir string, name string, args ...string) (string, error) {
	command := exec.CommandContext(ctx, name, args...)
	command.Dir = dir
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr
	if err := command.Run(); err != nil {
		return "", fmt.Errorf("run %s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Index reads and mutates the staging index of the repository containing
// the working directory.
type Index struct {
	runner           CommandRunner
	workingDirectory string
}

// New constructs an index client that shells out to git. An empty working
// directory means the process working directory.
func New(workingDirectory string) Index {
	return Index{runner: commandExecutor{}, workingDirectory: workingDirectory}
}

// NewWithRunner injects a custom command runner, used mainly for tests.
func NewWithRunner(workingDirectory string, runner CommandRunner) Index {
	return Index{runner: runner, workingDirectory: workingDirectory}
}

// EnsureRepository verifies the working directory is inside a git work tree.
func (index Index) EnsureRepository(ctx context.Context) error {
	directory, directoryErr := index.directory()
	if directoryErr != nil {
		return directoryErr
	}
	_, runErr := index.runner.Run(ctx, directory, gitExecutableName, "rev-parse", "--is-inside-work-tree")
	if runErr != nil {
		return fmt.Errorf("%w: %s", ErrNotARepository, directory)
	}
	return nil
}

// Root returns the repository's top-level directory.
func (index Index) Root(ctx context.Context) (string, error) {
	directory, directoryErr := index.directory()
	if directoryErr != nil {
		return "", directoryErr
	}
	output, runErr := index.runner.Run(ctx, directory, gitExecutableName, "rev-parse", "--show-toplevel")
	if runErr != nil {
		return "", fmt.Errorf("resolve repository root: %w", runErr)
	}
	return strings.TrimSpace(output), nil
}

// GitDir returns the absolute path of the repository's git directory.
func (index Index) GitDir(ctx context.Context) (string, error) {
	directory, directoryErr := index.directory()
	if directoryErr != nil {
		return "", directoryErr
	}
	output, runErr := index.runner.Run(ctx, directory, gitExecutableName, "rev-parse", "--git-dir")
	if runErr != nil {
		return "", fmt.Errorf("resolve git directory: %w", runErr)
	}
	gitDirectory := strings.TrimSpace(output)
	if !filepath.IsAbs(gitDirectory) {
		gitDirectory = filepath.Join(directory, gitDirectory)
	}
	return filepath.Clean(gitDirectory), nil
}

// StagedFiles lists the staged paths, repository-root-relative, in git's
// order. An empty index yields an empty slice.
func (index Index) StagedFiles(ctx context.Context) ([]string, error) {
	root, rootErr := index.Root(ctx)
	if rootErr != nil {
		return nil, rootErr
	}
	output, runErr := index.runner.Run(ctx, root, gitExecutableName, "diff", "--name-only", "--cached", "--diff-filter="+stagedDiffFilter)
	if runErr != nil {
		return nil, fmt.Errorf("list staged files: %w", runErr)
	}
	return parseFileList(output), nil
}

// StageFiles adds the paths to the index one at a time, preserving order.
// Staging an already-staged unchanged file is a no-op for git, so the
// operation is idempotent.
func (index Index) StageFiles(ctx context.Context, paths []string) error {
	root, rootErr := index.Root(ctx)
	if rootErr != nil {
		return rootErr
	}
	for _, path := range paths {
		if _, runErr := index.runner.Run(ctx, root, gitExecutableName, "add", "--", path); runErr != nil {
			return fmt.Errorf("stage %s: %w", path, runErr)
		}
	}
	return nil
}

func (index Index) directory() (string, error) {
	if index.workingDirectory != "" {
		return index.workingDirectory, nil
	}
	workingDirectory, workingDirectoryErr := os.Getwd()
	if workingDirectoryErr != nil {
		return "", fmt.Errorf("determine working directory: %w", workingDirectoryErr)
	}
	return workingDirectory, nil
}

func parseFileList(output string) []string {
	lines := strings.Split(output, "\n")
	files := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine == "" {
			continue
		}
		files = append(files, trimmedLine)
	}
	return files
}
