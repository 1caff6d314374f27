package utils

const (
	// ApplicationName is the executable and configuration namespace.
	ApplicationName = "gitcat"
	// GlobalConfigDirectoryName is created under the user's home directory.
	GlobalConfigDirectoryName = ".gitcat"
	// GlobalConfigFileName lives inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// LocalConfigFileName is looked up in the working directory.
	LocalConfigFileName = ".gitcat.yaml"

	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes the fatal error printed by main.
	ApplicationExecutionFailedMessage = "error"
)
