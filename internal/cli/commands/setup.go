package commands

import (
	"errors"
	"log/slog"

	"github.com/leapstack-labs/bfcalc/internal/cli/config"
	"github.com/leapstack-labs/bfcalc/internal/cli/output"
	"github.com/leapstack-labs/bfcalc/pkg/eval"
	"github.com/spf13/cobra"
)

// ErrCommandsFailed is returned when at least one calculator command
// failed. The failures have already been reported.
var ErrCommandsFailed = errors.New("one or more commands failed")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg       *config.Config
	Logger    *slog.Logger
	Renderer  *output.Renderer
	Evaluator *eval.Evaluator
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:       cfg,
		Logger:    logger,
		Renderer:  r,
		Evaluator: eval.New(eval.Config{Logger: logger}),
	}
}

// NewSession starts a calculator session and logs it.
func (c *CommandContext) NewSession(kind string) *eval.Session {
	s := eval.NewSession()
	c.Logger.Debug("session started", "session", s.ID, "mode", kind)
	return s
}

// getConfig returns the current configuration, or defaults when no
// configuration was loaded (commands built directly in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Defaults()
}

// bindConfigKey marks a flag as overriding the given config key.
func bindConfigKey(cmd *cobra.Command, flag, key string) {
	_ = cmd.Flags().SetAnnotation(flag, config.ConfigKeyAnnotation, []string{key})
}
