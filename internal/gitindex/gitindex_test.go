package gitindex_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bonofiglio/matcha/internal/gitindex"
)

func TestStagedFilesListsIndexInOrder(t *testing.T) {
	repositoryDir := t.TempDir()
	initializeGitRepository(t, repositoryDir)

	createFile(t, repositoryDir, "alpha.rs", "fn main() {}\n")
	createFile(t, repositoryDir, "beta.rs", "fn beta() {}\n")
	createFile(t, repositoryDir, "notes.txt", "notes\n")
	runGitCommand(t, repositoryDir, "add", "alpha.rs", "beta.rs", "notes.txt")

	index := gitindex.New(repositoryDir)
	stagedFiles, listErr := index.StagedFiles(context.Background())
	if listErr != nil {
		t.Fatalf("list staged files: %v", listErr)
	}

	if strings.Join(stagedFiles, ",") != "alpha.rs,beta.rs,notes.txt" {
		t.Fatalf("expected staged listing in git order, got %v", stagedFiles)
	}
}

func TestStagedFilesEmptyIndex(t *testing.T) {
	repositoryDir := t.TempDir()
	initializeGitRepository(t, repositoryDir)

	index := gitindex.New(repositoryDir)
	stagedFiles, listErr := index.StagedFiles(context.Background())
	if listErr != nil {
		t.Fatalf("list staged files: %v", listErr)
	}
	if len(stagedFiles) != 0 {
		t.Fatalf("expected empty staged set, got %v", stagedFiles)
	}
}

func TestStagedFilesExcludesDeletions(t *testing.T) {
	repositoryDir := t.TempDir()
	initializeGitRepository(t, repositoryDir)

	createFile(t, repositoryDir, "kept.rs", "fn kept() {}\n")
	createFile(t, repositoryDir, "removed.rs", "fn removed() {}\n")
	runGitCommand(t, repositoryDir, "add", "kept.rs", "removed.rs")
	runGitCommand(t, repositoryDir, "commit", "-m", "initial commit")

	createFile(t, repositoryDir, "kept.rs", "fn kept() { /* changed */ }\n")
	runGitCommand(t, repositoryDir, "add", "kept.rs")
	runGitCommand(t, repositoryDir, "rm", "removed.rs")

	index := gitindex.New(repositoryDir)
	stagedFiles, listErr := index.StagedFiles(context.Background())
	if listErr != nil {
		t.Fatalf("list staged files: %v", listErr)
	}
	if strings.Join(stagedFiles, ",") != "kept.rs" {
		t.Fatalf("expected staged deletions excluded, got %v", stagedFiles)
	}
}

func TestStageFilesIsIdempotent(t *testing.T) {
	repositoryDir := t.TempDir()
	initializeGitRepository(t, repositoryDir)

	createFile(t, repositoryDir, "alpha.rs", "fn main() {}\n")
	runGitCommand(t, repositoryDir, "add", "alpha.rs")

	index := gitindex.New(repositoryDir)
	if stageErr := index.StageFiles(context.Background(), []string{"alpha.rs"}); stageErr != nil {
		t.Fatalf("stage already-staged file: %v", stageErr)
	}
	if stageErr := index.StageFiles(context.Background(), []string{"alpha.rs"}); stageErr != nil {
		t.Fatalf("stage again: %v", stageErr)
	}

	stagedFiles, listErr := index.StagedFiles(context.Background())
	if listErr != nil {
		t.Fatalf("list staged files: %v", listErr)
	}
	if strings.Join(stagedFiles, ",") != "alpha.rs" {
		t.Fatalf("expected single staged entry, got %v", stagedFiles)
	}
}

func TestStageFilesPicksUpWorkingTreeChanges(t *testing.T) {
	repositoryDir := t.TempDir()
	initializeGitRepository(t, repositoryDir)

	createFile(t, repositoryDir, "alpha.rs", "fn main() {}\n")
	runGitCommand(t, repositoryDir, "add", "alpha.rs")
	createFile(t, repositoryDir, "alpha.rs", "fn main() { /* rewritten */ }\n")

	index := gitindex.New(repositoryDir)
	if stageErr := index.StageFiles(context.Background(), []string{"alpha.rs"}); stageErr != nil {
		t.Fatalf("stage modified file: %v", stageErr)
	}

	diffOutput := gitOutput(t, repositoryDir, "diff", "--name-only")
	if strings.TrimSpace(diffOutput) != "" {
		t.Fatalf("expected working tree changes staged, unstaged diff: %s", diffOutput)
	}
}

func TestEnsureRepositoryOutsideWorkTree(t *testing.T) {
	plainDir := t.TempDir()

	index := gitindex.New(plainDir)
	ensureErr := index.EnsureRepository(context.Background())
	if !errors.Is(ensureErr, gitindex.ErrNotARepository) {
		t.Fatalf("expected ErrNotARepository, got %v", ensureErr)
	}
}

func TestRootAndGitDirFromSubdirectory(t *testing.T) {
	repositoryDir := t.TempDir()
	initializeGitRepository(t, repositoryDir)

	subDirectory := filepath.Join(repositoryDir, "nested")
	if mkdirErr := os.MkdirAll(subDirectory, 0o755); mkdirErr != nil {
		t.Fatalf("create subdirectory: %v", mkdirErr)
	}

	index := gitindex.New(subDirectory)
	root, rootErr := index.Root(context.Background())
	if rootErr != nil {
		t.Fatalf("resolve root: %v", rootErr)
	}
	resolvedRepositoryDir, symlinkErr := filepath.EvalSymlinks(repositoryDir)
	if symlinkErr != nil {
		t.Fatalf("resolve repository path: %v", symlinkErr)
	}
	resolvedRoot, rootSymlinkErr := filepath.EvalSymlinks(root)
	if rootSymlinkErr != nil {
		t.Fatalf("resolve root path: %v", rootSymlinkErr)
	}
	if resolvedRoot != resolvedRepositoryDir {
		t.Fatalf("expected root %s, got %s", resolvedRepositoryDir, resolvedRoot)
	}

	gitDirectory, gitDirErr := index.GitDir(context.Background())
	if gitDirErr != nil {
		t.Fatalf("resolve git directory: %v", gitDirErr)
	}
	if filepath.Base(gitDirectory) != ".git" {
		t.Fatalf("expected git directory path, got %s", gitDirectory)
	}
	if !filepath.IsAbs(gitDirectory) {
		t.Fatalf("expected absolute git directory path, got %s", gitDirectory)
	}
}

func initializeGitRepository(t *testing.T, dir string) {
	t.Helper()
	runGitCommand(t, dir, "init")
	runGitCommand(t, dir, "config", "user.email", "ci@example.com")
	runGitCommand(t, dir, "config", "user.name", "CI")
}

func createFile(t *testing.T, dir string, name string, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if writeErr := os.WriteFile(path, []byte(content), 0o644); writeErr != nil {
		t.Fatalf("write file %s: %v", name, writeErr)
	}
}

func runGitCommand(t *testing.T, dir string, args ...string) {
	t.Helper()
	command := exec.Command("git", args...)
	command.Dir = dir
	if output, runErr := command.CombinedOutput(); runErr != nil {
		t.Fatalf("git %s: %v: %s", strings.Join(args, " "), runErr, string(output))
	}
}

func gitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()
	command := exec.Command("git", args...)
	command.Dir = dir
	output, runErr := command.Output()
	if runErr != nil {
		t.Fatalf("git %s: %v", strings.Join(args, " "), runErr)
	}
	return string(output)
}
