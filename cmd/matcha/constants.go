package matcha

const (
	rootCommandUse   = "matcha"
	rootCommandShort = "Pre-commit format gate for staged files"

	checkCommandUse   = "check"
	checkCommandShort = "Check staged files for formatting compliance"

	listCommandUse   = "list"
	listCommandShort = "List configured formatters (enabled by default)"

	hooksCommandUse   = "hooks"
	hooksCommandShort = "Manage the pre-commit hook (see subcommands)"

	hooksInstallCommandUse     = "install"
	hooksInstallCommandShort   = "Install the pre-commit hook into the repository"
	hooksUninstallCommandUse   = "uninstall"
	hooksUninstallCommandShort = "Remove the managed pre-commit hook"
	hooksStatusCommandUse      = "status"
	hooksStatusCommandShort    = "Show the state of the pre-commit hook"

	configCommandUse   = "config"
	configCommandShort = "Configuration commands (see subcommands)"

	configInitCommandUse   = "init"
	configInitCommandShort = "Write a starter .matcha.yaml into the working directory"
	configShowCommandUse   = "show"
	configShowCommandShort = "Print the effective configuration as YAML"

	configFlagName    = "config"
	configFlagUsage   = "Path to the configuration file"
	progressFlagName  = "progress"
	progressFlagUsage = "Render a progress bar on stderr while checking"
	allFlagName       = "all"
	allFlagUsage      = "Show disabled formatters as well"
	forceFlagName     = "force"
	forceFlagUsage    = "Back up and replace an existing unmanaged hook"
	jsonFlagName      = "json"
	jsonFlagUsage     = "Print the hook status as JSON"
	pathFlagName      = "path"
	pathFlagUsage     = "Destination path for the starter configuration"

	enabledStateLabel  = "enabled"
	disabledStateLabel = "disabled"
	dashPlaceholder    = "-"

	progressBarDescription = "checking staged files"
	progressBarWidth       = 40

	configurationLoaderInitializationErrorFormat = "initialize configuration loader: %w"
	configurationSourceResolutionErrorFormat     = "resolve configuration source: %w"
	configurationLoadErrorFormat                 = "load configuration %s: %w"
	loggerConstructionErrorFormat                = "construct logger: %w"
	hookStatusEncodeErrorFormat                  = "encode hook status: %w"
	configurationRenderErrorFormat               = "render configuration: %w"
	configurationExistsErrorFormat               = "configuration file %s already exists"
	starterConfigurationWriteErrorFormat         = "write starter configuration %s: %w"
	defaultStarterConfigurationFileName          = ".matcha.yaml"
	starterConfigurationFilePermissions          = 0o644
)
