package matcha

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bonofiglio/matcha/internal/config"
)

func loadConfiguration(configurationPath string) (config.Root, error) {
	configurationLoader, loaderErr := config.NewDefaultLoader()
	if loaderErr != nil {
		return config.Root{}, fmt.Errorf(configurationLoaderInitializationErrorFormat, loaderErr)
	}
	configurationSource, sourceErr := configurationLoader.Resolve(configurationPath)
	if sourceErr != nil {
		return config.Root{}, fmt.Errorf(configurationSourceResolutionErrorFormat, sourceErr)
	}
	rootConfiguration, loadErr := config.Load(configurationSource)
	if loadErr != nil {
		return config.Root{}, fmt.Errorf(configurationLoadErrorFormat, configurationSource.Reference, loadErr)
	}
	return rootConfiguration, nil
}

// resolveConfigurationPath prefers an explicitly set --config flag over
// the MATCHA_CONFIG environment variable.
func resolveConfigurationPath(configurationFlag *pflag.Flag, flagValue string) string {
	if configurationFlag != nil && configurationFlag.Changed {
		return flagValue
	}
	if environmentPath := config.EnvironmentConfigurationPath(); environmentPath != "" {
		return environmentPath
	}
	return flagValue
}
