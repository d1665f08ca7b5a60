package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// lineReader is the source of REPL lines. Readline returns io.EOF when
// input is exhausted and readline.ErrInterrupt when the line was
// abandoned with Ctrl-C.
type lineReader interface {
	Readline() (string, error)
	Close() error
}

// newTerminalReader creates a readline-backed reader with history and
// completion for dot-commands.
func newTerminalReader(prompt, historyFile string) (lineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		AutoComplete:    newDotCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "QUIT",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize REPL: %w", err)
	}
	return rl, nil
}

// pipeReader reads lines from a non-terminal source such as a pipe. It
// never prompts and has no line length limit. Each read runs in its own
// goroutine so a cancelled context ends Readline without waiting for the
// next line.
type pipeReader struct {
	ctx     context.Context
	br      *bufio.Reader
	pending chan readResult
}

type readResult struct {
	line string
	err  error
}

func newPipeReader(ctx context.Context, r io.Reader) *pipeReader {
	if ctx == nil {
		ctx = context.Background()
	}
	return &pipeReader{ctx: ctx, br: bufio.NewReader(r)}
}

// Readline returns the next line without its line ending. A final line
// without a trailing newline is still returned; io.EOF follows it. When the
// context is cancelled it returns the context's error.
func (p *pipeReader) Readline() (string, error) {
	if p.pending == nil {
		ch := make(chan readResult, 1)
		p.pending = ch
		go func() {
			line, err := p.br.ReadString('\n')
			if err == io.EOF && line != "" {
				err = nil
			}
			ch <- readResult{line: strings.TrimRight(line, "\r\n"), err: err}
		}()
	}

	select {
	case <-p.ctx.Done():
		return "", p.ctx.Err()
	case res := <-p.pending:
		p.pending = nil
		return res.line, res.err
	}
}

func (p *pipeReader) Close() error { return nil }

// newDotCompleter creates a readline completer for REPL dot-commands and
// the QUIT/STORE keywords.
func newDotCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, c := range dotCommands {
		items = append(items, readline.PcItem(c.name))
	}
	items = append(items,
		readline.PcItem("QUIT"),
		readline.PcItem("STORE "),
	)
	return readline.NewPrefixCompleter(items...)
}
