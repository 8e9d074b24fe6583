// Package am holds tool-level configuration for uniprompt: the settings
// of the tool itself, as opposed to the documents it resolves. Config
// is read from uniprompt.toml (discovered by walking up the directory
// tree) layered under UNIPROMPT_* environment variables.
package am

// Config represents the tool configuration
type Config struct {
	// DefaultEditor is used when the CLI is invoked without --editor.
	DefaultEditor string `mapstructure:"default_editor"`

	// AllowCommands enables dynamic-variable command execution without
	// passing --allow-commands on every invocation.
	AllowCommands bool `mapstructure:"allow_commands"`

	// CommandTimeoutSeconds bounds each dynamic-variable command.
	// Zero or negative falls back to the built-in 5s default.
	CommandTimeoutSeconds int `mapstructure:"command_timeout_seconds"`

	// VarsFile overrides the well-known local variable declarations
	// file name (default ".uniprompt-vars.yaml").
	VarsFile string `mapstructure:"vars_file"`

	// Strict makes undefined placeholders fatal.
	Strict bool `mapstructure:"strict"`

	// EnvVariables enables ${NAME} environment substitution.
	EnvVariables bool `mapstructure:"env_variables"`

	// LogJSON switches logging to structured JSON output.
	LogJSON bool `mapstructure:"log_json"`
}
