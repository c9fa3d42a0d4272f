// Package hooks installs and inspects the pre-commit hook script that
// invokes the format gate.
package hooks

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bonofiglio/matcha/internal/fsops"
)

const (
	hooksDirectoryName = "hooks"
	hookFileName       = "pre-commit"
	hookBackupFileName = "pre-commit.bak"

	// managedHookMarker identifies a hook written by this tool. A
	// pre-commit file without the marker belongs to someone else and is
	// never overwritten silently.
	managedHookMarker = "# managed by matcha"

	hookScript = "#!/bin/sh\n" +
		managedHookMarker + "\n" +
		"exec matcha check\n"

	hookFilePermissions      = 0o755
	hooksDirectoryPermission = 0o755
	executablePermissionBits = 0o111
)

var (
	// ErrGitDirectoryMissing indicates the configured git directory does not exist.
	ErrGitDirectoryMissing = errors.New("git directory does not exist")
	// ErrForeignHook indicates an unmanaged pre-commit hook is already installed.
	ErrForeignHook = errors.New("unmanaged pre-commit hook already installed")
)

// Status describes the installed pre-commit hook.
type Status struct {
	Installed     bool   `json:"installed"`
	Path          string `json:"path"`
	Managed       bool   `json:"managed"`
	Executable    bool   `json:"executable"`
	BackupPresent bool   `json:"backup_present"`
}

// Manager operates on the hook files of a single repository.
type Manager struct {
	fileSystem   fsops.FS
	gitDirectory string
}

// NewManager constructs a manager for the given git directory.
func NewManager(fileSystem fsops.FS, gitDirectory string) Manager {
	return Manager{fileSystem: fileSystem, gitDirectory: gitDirectory}
}

// Install writes the managed pre-commit hook. A managed hook already in
// place is rewritten; a foreign hook aborts with ErrForeignHook unless
// force is set, in which case the foreign hook is backed up first.
func (manager Manager) Install(force bool) error {
	if _, statErr := manager.fileSystem.Stat(manager.gitDirectory); statErr != nil {
		return fmt.Errorf("%w: %s", ErrGitDirectoryMissing, manager.gitDirectory)
	}

	hooksDirectory := manager.hooksDirectory()
	if mkdirErr := manager.fileSystem.MkdirAll(hooksDirectory, hooksDirectoryPermission); mkdirErr != nil {
		return fmt.Errorf("create hooks directory %s: %w", hooksDirectory, mkdirErr)
	}

	hookPath := manager.hookPath()
	existingContent, readErr := manager.fileSystem.ReadFile(hookPath)
	if readErr != nil && !errors.Is(readErr, fs.ErrNotExist) {
		return fmt.Errorf("read existing hook %s: %w", hookPath, readErr)
	}
	if readErr == nil && !isManagedHook(existingContent) {
		if !force {
			return fmt.Errorf("%w: %s", ErrForeignHook, hookPath)
		}
		if renameErr := manager.fileSystem.Rename(hookPath, manager.backupPath()); renameErr != nil {
			return fmt.Errorf("back up existing hook %s: %w", hookPath, renameErr)
		}
	}

	if writeErr := manager.fileSystem.WriteFile(hookPath, []byte(hookScript), hookFilePermissions); writeErr != nil {
		return fmt.Errorf("write hook %s: %w", hookPath, writeErr)
	}
	if chmodErr := manager.fileSystem.Chmod(hookPath, hookFilePermissions); chmodErr != nil {
		return fmt.Errorf("mark hook executable %s: %w", hookPath, chmodErr)
	}
	return nil
}

// Uninstall removes a managed hook and restores a backed-up foreign hook
// when one exists. It refuses to touch a foreign hook.
func (manager Manager) Uninstall() error {
	hookPath := manager.hookPath()
	existingContent, readErr := manager.fileSystem.ReadFile(hookPath)
	if readErr != nil {
		if errors.Is(readErr, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read hook %s: %w", hookPath, readErr)
	}
	if !isManagedHook(existingContent) {
		return fmt.Errorf("%w: %s", ErrForeignHook, hookPath)
	}
	if removeErr := manager.fileSystem.Remove(hookPath); removeErr != nil {
		return fmt.Errorf("remove hook %s: %w", hookPath, removeErr)
	}

	backupPath := manager.backupPath()
	if _, statErr := manager.fileSystem.Stat(backupPath); statErr == nil {
		if renameErr := manager.fileSystem.Rename(backupPath, hookPath); renameErr != nil {
			return fmt.Errorf("restore backed-up hook %s: %w", backupPath, renameErr)
		}
	}
	return nil
}

// Status inspects the hook files without modifying anything.
func (manager Manager) Status() (Status, error) {
	hookPath := manager.hookPath()
	hookStatus := Status{Path: hookPath}

	hookInfo, statErr := manager.fileSystem.Stat(hookPath)
	if statErr != nil {
		if errors.Is(statErr, fs.ErrNotExist) {
			hookStatus.BackupPresent = manager.backupPresent()
			return hookStatus, nil
		}
		return Status{}, fmt.Errorf("stat hook %s: %w", hookPath, statErr)
	}
	hookStatus.Installed = true
	hookStatus.Executable = hookInfo.Mode()&executablePermissionBits != 0

	content, readErr := manager.fileSystem.ReadFile(hookPath)
	if readErr != nil {
		return Status{}, fmt.Errorf("read hook %s: %w", hookPath, readErr)
	}
	hookStatus.Managed = isManagedHook(content)
	hookStatus.BackupPresent = manager.backupPresent()
	return hookStatus, nil
}

func (manager Manager) hooksDirectory() string {
	return filepath.Join(manager.gitDirectory, hooksDirectoryName)
}

func (manager Manager) hookPath() string {
	return filepath.Join(manager.hooksDirectory(), hookFileName)
}

func (manager Manager) backupPath() string {
	return filepath.Join(manager.hooksDirectory(), hookBackupFileName)
}

func (manager Manager) backupPresent() bool {
	_, statErr := manager.fileSystem.Stat(manager.backupPath())
	return statErr == nil
}

func isManagedHook(content []byte) bool {
	return strings.Contains(string(content), managedHookMarker)
}
