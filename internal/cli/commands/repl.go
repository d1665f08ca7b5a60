package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/bfcalc/internal/cli/output"
	"github.com/leapstack-labs/bfcalc/pkg/eval"
	"github.com/spf13/cobra"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive calculator",
		Long: `Read calculator commands one line at a time.

Expressions are evaluated left to right over exact fractions. STORE <r>
saves the last result into register r (a-z); QUIT or end of input ends
the session. Lines starting with '.' are REPL commands; type .help.

When standard input is not a terminal, lines are read without a prompt.`,
		Example: `  # Interactive session
  bfcalc repl

  # Script from a file
  bfcalc repl < commands.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}

	cmd.Flags().String("prompt", "", "Prompt shown before each line")
	cmd.Flags().Bool("echo", false, "Prefix each result with its command")
	cmd.Flags().String("history-file", "", "File used to keep line history (empty disables)")
	bindConfigKey(cmd, "prompt", "repl.prompt")
	bindConfigKey(cmd, "echo", "repl.echo")
	bindConfigKey(cmd, "history-file", "repl.history_file")

	return cmd
}

func runREPL(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	var (
		rl  lineReader
		err error
	)
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && output.IsTerminal(f) {
		rl, err = newTerminalReader(cfg.REPL.Prompt, cfg.REPL.HistoryFile)
		if err != nil {
			return err
		}
	} else {
		rl = newPipeReader(cmd.Context(), in)
	}
	defer func() { _ = rl.Close() }()

	if cmdCtx.Renderer.IsTTY() {
		cmdCtx.Renderer.Muted("Exact rational calculator. Type .help for commands, QUIT to exit.")
	}

	return replLoop(cmd.Context(), cmdCtx, rl)
}

// replLoop evaluates lines until QUIT, end of input or cancellation.
// Command failures are reported and the loop continues.
func replLoop(ctx context.Context, cmdCtx *CommandContext, rl lineReader) error {
	if ctx == nil {
		ctx = context.Background()
	}
	r := cmdCtx.Renderer
	sess := cmdCtx.NewSession("interactive")
	defer cmdCtx.Logger.Debug("session ended", "session", sess.ID)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if strings.HasPrefix(strings.TrimSpace(line), ".") {
			if quit := handleDotCommand(cmdCtx, sess, strings.TrimSpace(line)); quit {
				return nil
			}
			continue
		}

		res, err := cmdCtx.Evaluator.Execute(sess, line)
		if err != nil {
			r.CommandError(strings.TrimSpace(line), err)
			continue
		}
		if res.Action == eval.ActionQuit {
			return nil
		}
		if err := r.Result(res, cmdCtx.Cfg.REPL.Echo); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
}

// dotCommand is a REPL-only command.
type dotCommand struct {
	name string
	help string
}

var dotCommands = []dotCommand{
	{".help", "Show this help message"},
	{".registers", "List nonzero registers (.registers all lists every register)"},
	{".clear", "Clear the screen"},
	{".quit", "Exit the REPL (same as QUIT)"},
	{".exit", "Exit the REPL (same as QUIT)"},
}

// handleDotCommand runs a dot-command and reports whether the REPL should exit.
func handleDotCommand(cmdCtx *CommandContext, sess *eval.Session, line string) bool {
	r := cmdCtx.Renderer
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.Writer())

	case ".registers":
		entries := sess.Registers.NonZero()
		if len(parts) > 1 && parts[1] == "all" {
			entries = sess.Registers.Snapshot()
		}
		if err := r.Registers(entries); err != nil {
			_, _ = fmt.Fprintf(r.ErrWriter(), "Error: %v\n", err)
		}

	case ".clear":
		if r.IsTTY() {
			r.Printf("\033[H\033[2J")
		}

	default:
		_, _ = fmt.Fprintf(r.ErrWriter(), "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	var b strings.Builder
	b.WriteString(`
Calculator commands:
  <value> (<op> <value>)*   Evaluate left to right; values are integers,
                            fractions like -3/4, or registers a-z
  STORE <r>                 Save the last result into register r
  QUIT                      Exit

REPL commands:
`)
	for _, c := range dotCommands {
		fmt.Fprintf(&b, "  %-25s %s\n", c.name, c.help)
	}
	b.WriteString(`
Tips:
  - Separate every number, register and operator with a single space
  - There is no precedence: 2 + 3 * 4 is 20
  - Use arrow keys to navigate history
`)
	_, _ = fmt.Fprintln(w, b.String())
}

// RunREPL starts the interactive loop. The root command uses it when
// invoked without arguments.
func RunREPL(cmd *cobra.Command) error {
	return runREPL(cmd)
}
