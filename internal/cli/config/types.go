// Package config provides configuration management for the bfcalc CLI.
//
// Configuration is layered with koanf. Precedence (highest to lowest):
// explicitly set flags > BFCALC_* environment variables > config file >
// defaults.
package config

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool        `koanf:"verbose"`
	LogLevel     string      `koanf:"log_level"`
	OutputFormat string      `koanf:"output"`
	REPL         REPLConfig  `koanf:"repl"`
	Batch        BatchConfig `koanf:"batch"`
}

// REPLConfig configures the interactive loop.
type REPLConfig struct {
	Prompt string `koanf:"prompt"`
	// Echo prefixes each result with the command, as "1 + 1 = 2".
	Echo bool `koanf:"echo"`
	// HistoryFile is where readline keeps line history. Empty disables it.
	HistoryFile string `koanf:"history_file"`
}

// BatchConfig configures evaluation of command-line arguments.
type BatchConfig struct {
	Echo bool `koanf:"echo"`
	// ShareLastValue lets STORE in one argument see the value computed by
	// the previous argument. Registers are always shared.
	ShareLastValue bool `koanf:"share_last_value"`
	// FailFast stops at the first failing argument.
	FailFast bool `koanf:"fail_fast"`
}

// Default configuration values.
const (
	DefaultLogLevel       = "warn"
	DefaultOutput         = "auto" // Auto-detect: TTY=styled text, non-TTY=plain text
	DefaultPrompt         = "> "
	DefaultREPLEcho       = false
	DefaultBatchEcho      = true
	DefaultShareLastValue = true
	DefaultFailFast       = false
)

// ConfigKeyAnnotation is the pflag annotation naming the config key a flag
// overrides. Flags without it map kebab-case to snake_case.
const ConfigKeyAnnotation = "bfcalc_config_key"

// Defaults returns a Config populated with default values.
func Defaults() *Config {
	return &Config{
		LogLevel:     DefaultLogLevel,
		OutputFormat: DefaultOutput,
		REPL: REPLConfig{
			Prompt: DefaultPrompt,
			Echo:   DefaultREPLEcho,
		},
		Batch: BatchConfig{
			Echo:           DefaultBatchEcho,
			ShareLastValue: DefaultShareLastValue,
			FailFast:       DefaultFailFast,
		},
	}
}

// defaultsMap is Defaults in the flat form koanf's confmap provider expects.
func defaultsMap() map[string]interface{} {
	return map[string]interface{}{
		"verbose":                false,
		"log_level":              DefaultLogLevel,
		"output":                 DefaultOutput,
		"repl.prompt":            DefaultPrompt,
		"repl.echo":              DefaultREPLEcho,
		"repl.history_file":      "",
		"batch.echo":             DefaultBatchEcho,
		"batch.share_last_value": DefaultShareLastValue,
		"batch.fail_fast":        DefaultFailFast,
	}
}
