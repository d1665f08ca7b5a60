package commands

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/bfcalc/internal/cli/config"
	"github.com/leapstack-labs/bfcalc/internal/cli/output"
	"github.com/leapstack-labs/bfcalc/internal/testutil"
	"github.com/leapstack-labs/bfcalc/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runREPLWithInput(t *testing.T, input string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewREPLCommand()
	cmd.SetIn(strings.NewReader(input))
	return runCommand(t, cmd, args...)
}

func TestREPL_EvaluatesLines(t *testing.T) {
	stdout, stderr, err := runREPLWithInput(t, "1 + 2\nSTORE a\na * 2\n2 + 3 * 4\n")
	require.NoError(t, err)
	assert.Equal(t, "3\n6\n20\n", stdout)
	assert.Empty(t, stderr)
}

func TestREPL_QuitStopsReading(t *testing.T) {
	stdout, _, err := runREPLWithInput(t, "5\nQUIT\n6\n")
	require.NoError(t, err)
	assert.Equal(t, "5\n", stdout)
}

func TestREPL_ErrorsContinue(t *testing.T) {
	stdout, stderr, err := runREPLWithInput(t, "1 +\n+ 1\n1 2\n\n1 / 0\nSTORE A\n4\n")
	require.NoError(t, err, "command errors never end the session")

	assert.Equal(t, "4\n", stdout)
	assert.Contains(t, stderr, "command ended mid-instruction")
	assert.Contains(t, stderr, "first token not numeric")
	assert.Contains(t, stderr, "non-operator where operator expected")
	assert.Contains(t, stderr, "empty command")
	assert.Contains(t, stderr, "division by zero")
	assert.Contains(t, stderr, "invalid register")
	assert.Equal(t, 6, strings.Count(stderr, "Error:"))
}

func TestREPL_Echo(t *testing.T) {
	stdout, _, err := runREPLWithInput(t, " 1/2 * 4 \n", "--echo")
	require.NoError(t, err)
	assert.Equal(t, "1/2 * 4 = 2\n", stdout)
}

func TestREPL_DotCommands(t *testing.T) {
	stdout, stderr, err := runREPLWithInput(t, "7/3\nSTORE z\n.registers\n.help\n.bogus\n.quit\n8\n")
	require.NoError(t, err)

	assert.Contains(t, stdout, "7/3")
	assert.Contains(t, stdout, "Register")
	assert.Contains(t, stdout, "STORE <r>")
	assert.NotContains(t, stdout, "\n8\n", ".quit ends the session")
	assert.Contains(t, stderr, "Unknown command: .bogus")
}

func TestREPL_RegistersAll(t *testing.T) {
	stdout, _, err := runREPLWithInput(t, ".registers all\n")
	require.NoError(t, err)
	for _, letter := range []string{"a", "m", "z"} {
		assert.Contains(t, stdout, letter)
	}
}

// scriptedReader replays lines and errors for replLoop tests.
type scriptedReader struct {
	steps []scriptStep
}

type scriptStep struct {
	line string
	err  error
}

func (s *scriptedReader) Readline() (string, error) {
	if len(s.steps) == 0 {
		return "", io.EOF
	}
	step := s.steps[0]
	s.steps = s.steps[1:]
	return step.line, step.err
}

func (s *scriptedReader) Close() error { return nil }

// syncBuffer is a strings.Builder safe to read while replLoop writes.
type syncBuffer struct {
	mu sync.Mutex
	b  strings.Builder
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func newLoopContext(t *testing.T) (*CommandContext, *syncBuffer, *syncBuffer) {
	t.Helper()
	out, errOut := &syncBuffer{}, &syncBuffer{}
	logger := testutil.NewTestLogger(t)
	return &CommandContext{
		Cfg:       config.Defaults(),
		Logger:    logger,
		Renderer:  output.NewRendererWithTTY(out, errOut, false, output.ModeText),
		Evaluator: eval.New(eval.Config{Logger: logger}),
	}, out, errOut
}

func TestREPLLoop_InterruptDiscardsLine(t *testing.T) {
	cmdCtx, out, _ := newLoopContext(t)
	rl := &scriptedReader{steps: []scriptStep{
		{line: "1 + ", err: readline.ErrInterrupt},
		{line: "2"},
	}}

	require.NoError(t, replLoop(context.Background(), cmdCtx, rl))
	assert.Equal(t, "2\n", out.String())
}

func TestREPLLoop_ReadError(t *testing.T) {
	cmdCtx, _, _ := newLoopContext(t)
	boom := errors.New("tty gone")
	rl := &scriptedReader{steps: []scriptStep{{err: boom}}}

	err := replLoop(context.Background(), cmdCtx, rl)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestREPLLoop_CancelledContext(t *testing.T) {
	cmdCtx, out, _ := newLoopContext(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rl := &scriptedReader{steps: []scriptStep{{line: "1"}}}
	require.NoError(t, replLoop(ctx, cmdCtx, rl))
	assert.Empty(t, out.String())
}

func TestPipeReader(t *testing.T) {
	r := newPipeReader(context.Background(), strings.NewReader("a\r\nb\n\nc"))

	for _, want := range []string{"a", "b", "", "c"} {
		line, err := r.Readline()
		require.NoError(t, err)
		assert.Equal(t, want, line)
	}

	_, err := r.Readline()
	assert.ErrorIs(t, err, io.EOF)
	_, err = r.Readline()
	assert.ErrorIs(t, err, io.EOF)
	assert.NoError(t, r.Close())
}

func TestPipeReader_CancelWhileBlocked(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newPipeReader(ctx, pr)
	_, err := r.Readline()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestREPLLoop_CancelEndsBlockedPipe(t *testing.T) {
	cmdCtx, out, _ := newLoopContext(t)
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- replLoop(ctx, cmdCtx, newPipeReader(ctx, pr)) }()

	_, err := io.WriteString(pw, "6 / 4\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return out.String() == "3/2\n" }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("replLoop did not return after cancellation")
	}
}

func TestREPL_VeryLongLine(t *testing.T) {
	big := "1" + strings.Repeat("0", 70000)
	stdout, stderr, err := runREPLWithInput(t, big+" / "+big+"\n"+big+"\n2 + 2\n")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Equal(t, "1\n"+big+"\n4\n", stdout)
}
