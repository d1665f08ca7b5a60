// Package output renders calculator results, errors and register tables.
//
// Three modes are supported: text (styled with lipgloss when writing to a
// terminal), json (one object per line) and auto, which resolves to text.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/bfcalc/pkg/core"
	"github.com/leapstack-labs/bfcalc/pkg/eval"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// OutputMode selects how results are written.
//
//nolint:revive // output.OutputMode matches the config key it is parsed from
type OutputMode string

// Mode is shorthand for OutputMode.
type Mode = OutputMode

// Output modes.
const (
	ModeAuto OutputMode = "auto"
	ModeText OutputMode = "text"
	ModeJSON OutputMode = "json"
)

// Renderer writes results to out and errors to errOut.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	styles *Styles
	errSty *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, IsTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
// Styles are only coloured when isTTY is true.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: newStyles(lipglossRenderer(out, isTTY)),
		errSty: newStyles(lipglossRenderer(errOut, isTTY && IsTerminal(errOut))),
	}
}

func lipglossRenderer(w io.Writer, isTTY bool) *lipgloss.Renderer {
	lr := lipgloss.NewRenderer(w)
	if !isTTY {
		lr.SetColorProfile(termenv.Ascii)
	}
	return lr
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// EffectiveMode resolves ModeAuto.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode == ModeAuto {
		return ModeText
	}
	return r.mode
}

// IsTTY reports whether the renderer believes out is a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Writer returns the result stream.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the error stream.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Println writes a line to out.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Printf writes formatted text to out.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Muted writes a de-emphasised line to out.
func (r *Renderer) Muted(s string) {
	r.Println(r.styles.Muted.Render(s))
}

// JSON writes v as a single line of JSON to out.
func (r *Renderer) JSON(v any) error {
	return json.NewEncoder(r.out).Encode(v)
}

// ResultOutput is the JSON form of a computed value.
type ResultOutput struct {
	Command     string `json:"command"`
	Value       string `json:"value"`
	Numerator   string `json:"numerator"`
	Denominator string `json:"denominator"`
}

// ErrorOutput is the JSON form of a failed command.
type ErrorOutput struct {
	Command string `json:"command"`
	Error   string `json:"error"`
	Kind    string `json:"kind"`
}

// Result writes a computed value. Results without output (STORE, QUIT)
// write nothing.
func (r *Renderer) Result(res eval.Result, echo bool) error {
	if res.Action != eval.ActionValue {
		return nil
	}

	if r.EffectiveMode() == ModeJSON {
		return r.JSON(ResultOutput{
			Command:     res.Command,
			Value:       res.Value.String(),
			Numerator:   res.Value.Num().String(),
			Denominator: res.Value.Den().String(),
		})
	}

	value := r.styles.Value.Render(res.Value.String())
	if echo {
		r.Println(r.styles.Command.Render(res.Command+" =") + " " + value)
		return nil
	}
	r.Println(value)
	return nil
}

// CommandError reports a failed command. In JSON mode the error object goes
// to out so a consumer sees one line per command; otherwise it goes to
// errOut as "Error: <message>".
func (r *Renderer) CommandError(command string, err error) {
	kind := core.KindOf(err)

	if r.EffectiveMode() == ModeJSON {
		_ = r.JSON(ErrorOutput{Command: command, Error: err.Error(), Kind: kind.String()})
		return
	}

	msg := err.Error()
	var cerr *core.Error
	if kind == core.KindInternal && !errors.As(err, &cerr) {
		msg = "internal error: " + msg
	}
	_, _ = fmt.Fprintln(r.errOut, r.errSty.Error.Render("Error:")+" "+msg)
}
