package config

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

const (
	configurationTypeYAML                    = "yaml"
	emptyConfigurationErrorFormat            = "configuration %s is empty"
	configurationParseErrorFormat            = "parse configuration %s: %w"
	configurationUnmarshalErrorFormat        = "unmarshal configuration %s: %w"
	formatterMissingNameErrorMessage         = "formatter missing a name"
	formatterMissingCommandErrorFormat       = "formatter %s missing a command"
	formatterMissingMatchCriteriaErrorFormat = "formatter %s needs at least one extension or pattern"
	duplicateFormatterNameErrorFormat        = "duplicate formatter name %s"
)

var errNoFormatters = errors.New("configuration declares no formatters")

// Root is the parsed configuration document.
type Root struct {
	Common     Common      `mapstructure:"common" yaml:"common"`
	Formatters []Formatter `mapstructure:"formatters" yaml:"formatters"`
}

// Common holds settings shared by every command.
type Common struct {
	Logging Logging `mapstructure:"logging" yaml:"logging"`
}

// Logging configures the command logger.
type Logging struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Formatter binds a file matcher to an external formatter's check-mode
// invocation. Extensions are suffix matches; Patterns are glob patterns
// applied to the full repository-relative path.
type Formatter struct {
	Name       string   `mapstructure:"name" yaml:"name"`
	Enabled    bool     `mapstructure:"enabled" yaml:"enabled"`
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
	Patterns   []string `mapstructure:"patterns" yaml:"patterns"`
	Command    string   `mapstructure:"command" yaml:"command"`
	Args       []string `mapstructure:"args" yaml:"args"`
}

// Load parses the provided configuration source and validates required fields.
func Load(source Source) (Root, error) {
	if len(source.Content) == 0 {
		return Root{}, fmt.Errorf(emptyConfigurationErrorFormat, source.Reference)
	}

	parser := viper.New()
	parser.SetConfigType(configurationTypeYAML)
	if readErr := parser.ReadConfig(bytes.NewReader(source.Content)); readErr != nil {
		return Root{}, fmt.Errorf(configurationParseErrorFormat, source.Reference, readErr)
	}

	var rootConfiguration Root
	if unmarshalErr := parser.Unmarshal(&rootConfiguration); unmarshalErr != nil {
		return Root{}, fmt.Errorf(configurationUnmarshalErrorFormat, source.Reference, unmarshalErr)
	}

	if validationErr := rootConfiguration.validate(); validationErr != nil {
		return Root{}, validationErr
	}
	return rootConfiguration, nil
}

func (root Root) validate() error {
	if len(root.Formatters) == 0 {
		return errNoFormatters
	}
	seenNames := make(map[string]bool, len(root.Formatters))
	for _, formatter := range root.Formatters {
		if formatter.Name == "" {
			return errors.New(formatterMissingNameErrorMessage)
		}
		if seenNames[formatter.Name] {
			return fmt.Errorf(duplicateFormatterNameErrorFormat, formatter.Name)
		}
		seenNames[formatter.Name] = true
		if formatter.Command == "" {
			return fmt.Errorf(formatterMissingCommandErrorFormat, formatter.Name)
		}
		if len(formatter.Extensions) == 0 && len(formatter.Patterns) == 0 {
			return fmt.Errorf(formatterMissingMatchCriteriaErrorFormat, formatter.Name)
		}
	}
	return nil
}

// EnabledFormatters returns the enabled subset in declaration order.
func (root Root) EnabledFormatters() []Formatter {
	enabledFormatters := make([]Formatter, 0, len(root.Formatters))
	for _, formatter := range root.Formatters {
		if formatter.Enabled {
			enabledFormatters = append(enabledFormatters, formatter)
		}
	}
	return enabledFormatters
}

// FindFormatter looks a formatter up by name.
func (root Root) FindFormatter(name string) (Formatter, bool) {
	for _, formatter := range root.Formatters {
		if formatter.Name == name {
			return formatter, true
		}
	}
	return Formatter{}, false
}
