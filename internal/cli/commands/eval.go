package commands

import (
	"fmt"

	"github.com/leapstack-labs/bfcalc/pkg/eval"
	"github.com/spf13/cobra"
)

// EvalOptions holds options for the eval command.
type EvalOptions struct {
	Registers bool
}

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	opts := &EvalOptions{}

	cmd := &cobra.Command{
		Use:     "eval <command>...",
		Aliases: []string{"quick"},
		Short:   "Evaluate calculator commands given as arguments",
		Long: `Evaluate each argument as a calculator command, in order.

Arguments share one session: registers written by STORE are visible to
later arguments, and by default STORE sees the value computed by the
previous argument (disable with --isolate). QUIT stops processing.

Each result is printed as "<command> = <value>" unless --echo=false.`,
		Example: `  # Left to right, no precedence
  bfcalc eval "2 + 3 * 4"

  # Store and recall
  bfcalc eval "1/2 + 1/3" "STORE a" "a * 6"

  # Machine-readable output
  bfcalc eval -o json "1 / 3" "1 / 0"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args, opts)
		},
	}

	cmd.Flags().Bool("echo", true, "Prefix each result with its command")
	cmd.Flags().Bool("fail-fast", false, "Stop at the first failing command")
	cmd.Flags().Bool("isolate", false, "Do not carry the last value from one argument to the next")
	cmd.Flags().BoolVar(&opts.Registers, "registers", false, "Print nonzero registers after evaluating")
	bindConfigKey(cmd, "echo", "batch.echo")
	bindConfigKey(cmd, "fail-fast", "batch.fail_fast")

	return cmd
}

func runEval(cmd *cobra.Command, args []string, opts *EvalOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	isolate, _ := cmd.Flags().GetBool("isolate")
	share := cfg.Batch.ShareLastValue && !isolate

	sess := cmdCtx.NewSession("batch")
	failed := 0

	for i, arg := range args {
		if i > 0 && !share {
			sess.ForgetLast()
		}

		res, err := cmdCtx.Evaluator.Execute(sess, arg)
		if err != nil {
			failed++
			r.CommandError(arg, err)
			if cfg.Batch.FailFast {
				break
			}
			continue
		}
		if res.Action == eval.ActionQuit {
			break
		}
		if err := r.Result(res, cfg.Batch.Echo); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}

	if opts.Registers {
		if err := r.Registers(sess.Registers.NonZero()); err != nil {
			return fmt.Errorf("failed to write registers: %w", err)
		}
	}

	cmdCtx.Logger.Debug("batch finished", "session", sess.ID, "commands", len(args), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d: %w", failed, len(args), ErrCommandsFailed)
	}
	return nil
}

// RunEval evaluates args as a batch with default options. The root command
// uses it when invoked with arguments.
func RunEval(cmd *cobra.Command, args []string) error {
	return runEval(cmd, args, &EvalOptions{})
}
