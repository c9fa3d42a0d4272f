package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	embeddedConfigurationReference = "embedded default configuration"
	// EmbeddedConfigurationReference identifies the embedded fallback configuration source.
	EmbeddedConfigurationReference              = embeddedConfigurationReference
	explicitConfigurationReadErrorFormat        = "read explicit configuration %s: %w"
	loaderInitializationWorkingDirectoryError   = "determine working directory: %w"
	loaderHomeEnvironmentVariableName           = "HOME"
	environmentVariablePrefix                   = "MATCHA"
	environmentConfigurationKey                 = "config"
	workingDirectoryConfigurationFileName       = ".matcha.yaml"
	homeDirectoryConfigurationRelativeDirectory = ".matcha"
	homeDirectoryConfigurationFileName          = "config.yaml"
)

var (
	//go:embed default_configuration.yaml
	embeddedConfigurationBytes []byte
)

// DefaultConfiguration returns the embedded starter configuration document.
func DefaultConfiguration() []byte {
	defaultContent := make([]byte, len(embeddedConfigurationBytes))
	copy(defaultContent, embeddedConfigurationBytes)
	return defaultContent
}

// Source holds the raw configuration data and its origin.
type Source struct {
	Reference string
	Content   []byte
}

// Loader locates configuration files across supported search paths:
// explicit path, then the working directory's .matcha.yaml, then
// ~/.matcha/config.yaml, then the embedded default.
type Loader struct {
	workingDirectory string
	homeDirectory    string
	fileReader       func(string) ([]byte, error)
}

// NewLoader constructs a loader with the provided directories.
func NewLoader(workingDirectory string, homeDirectory string) Loader {
	return Loader{
		workingDirectory: workingDirectory,
		homeDirectory:    homeDirectory,
		fileReader:       os.ReadFile,
	}
}

// NewDefaultLoader builds a loader using the process working directory and HOME.
func NewDefaultLoader() (Loader, error) {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return Loader{}, fmt.Errorf(loaderInitializationWorkingDirectoryError, workingDirectoryError)
	}
	homeDirectory := os.Getenv(loaderHomeEnvironmentVariableName)
	return NewLoader(workingDirectory, homeDirectory), nil
}

// EnvironmentConfigurationPath resolves MATCHA_CONFIG, used when no
// explicit --config flag is given.
func EnvironmentConfigurationPath() string {
	environment := viper.New()
	environment.SetEnvPrefix(environmentVariablePrefix)
	if bindErr := environment.BindEnv(environmentConfigurationKey); bindErr != nil {
		return ""
	}
	return environment.GetString(environmentConfigurationKey)
}

type configurationCandidate struct {
	path       string
	isExplicit bool
}

// Resolve locates the configuration source using the preferred search order.
func (loader Loader) Resolve(explicitPath string) (Source, error) {
	for _, candidate := range loader.candidates(explicitPath) {
		if candidate.path == "" {
			continue
		}
		content, readError := loader.fileReader(candidate.path)
		if readError != nil {
			if candidate.isExplicit && !errors.Is(readError, fs.ErrNotExist) && !errors.Is(readError, fs.ErrPermission) {
				return Source{}, fmt.Errorf(explicitConfigurationReadErrorFormat, candidate.path, readError)
			}
			continue
		}
		return Source{Reference: candidate.path, Content: content}, nil
	}
	return Source{Reference: embeddedConfigurationReference, Content: embeddedConfigurationBytes}, nil
}

func (loader Loader) candidates(explicitPath string) []configurationCandidate {
	explicitCandidate := configurationCandidate{path: explicitPath, isExplicit: explicitPath != ""}
	return []configurationCandidate{
		explicitCandidate,
		loader.workingDirectoryCandidate(),
		loader.homeDirectoryCandidate(),
	}
}

func (loader Loader) workingDirectoryCandidate() configurationCandidate {
	if loader.workingDirectory == "" {
		return configurationCandidate{}
	}
	return configurationCandidate{path: filepath.Join(loader.workingDirectory, workingDirectoryConfigurationFileName)}
}

func (loader Loader) homeDirectoryCandidate() configurationCandidate {
	if loader.homeDirectory == "" {
		return configurationCandidate{}
	}
	configurationDirectory := filepath.Join(loader.homeDirectory, homeDirectoryConfigurationRelativeDirectory)
	return configurationCandidate{path: filepath.Join(configurationDirectory, homeDirectoryConfigurationFileName)}
}
