package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/leapstack-labs/bfcalc/pkg/core"
	"github.com/leapstack-labs/bfcalc/pkg/eval"
	"github.com/leapstack-labs/bfcalc/pkg/rational"
	"github.com/leapstack-labs/bfcalc/pkg/register"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(mode OutputMode) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, false, mode), out, errOut
}

func valueResult(cmd string, v rational.Rational) eval.Result {
	return eval.Result{Action: eval.ActionValue, Command: cmd, Value: v}
}

func TestEffectiveMode(t *testing.T) {
	r, _, _ := newTestRenderer(ModeAuto)
	assert.Equal(t, ModeText, r.EffectiveMode())

	r, _, _ = newTestRenderer("")
	assert.Equal(t, ModeText, r.EffectiveMode())

	r, _, _ = newTestRenderer(ModeJSON)
	assert.Equal(t, ModeJSON, r.EffectiveMode())
}

func TestResultText(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeText)

	require.NoError(t, r.Result(valueResult("1 + 1/2", rational.MustNew(3, 2)), false))
	require.NoError(t, r.Result(valueResult("1 + 1/2", rational.MustNew(3, 2)), true))

	assert.Equal(t, "3/2\n1 + 1/2 = 3/2\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestResultSkipsStoreAndQuit(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText)

	require.NoError(t, r.Result(eval.Result{Action: eval.ActionStore, Register: 'a'}, true))
	require.NoError(t, r.Result(eval.Result{Action: eval.ActionQuit}, true))
	assert.Empty(t, out.String())
}

func TestResultJSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON)
	require.NoError(t, r.Result(valueResult("-2/4", rational.MustNew(-1, 2)), false))

	var got ResultOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, ResultOutput{Command: "-2/4", Value: "-1/2", Numerator: "-1", Denominator: "2"}, got)
}

func TestCommandErrorText(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeText)

	r.CommandError("1 +", core.Grammar(core.MsgMidInstruction))
	r.CommandError("x", errors.New("disk on fire"))

	assert.Empty(t, out.String())
	lines := strings.Split(strings.TrimSpace(errOut.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Error: grammar error: command ended mid-instruction", lines[0])
	assert.Equal(t, "Error: internal error: disk on fire", lines[1])
}

func TestCommandErrorJSON(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeJSON)
	r.CommandError("1 / 0", core.NewError(core.KindDivisionByZero, core.MsgZeroDivisor, ""))

	assert.Empty(t, errOut.String())
	var got ErrorOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "1 / 0", got.Command)
	assert.Equal(t, "division_by_zero", got.Kind)
}

func TestRegistersTable(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText)
	err := r.Registers([]register.Entry{
		{Letter: 'a', Value: rational.MustNew(1, 3)},
		{Letter: 'q', Value: rational.FromInt64(-8)},
	})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "Register")
	assert.Contains(t, s, "1/3")
	assert.Contains(t, s, "-8")
	assert.Contains(t, s, "q")
}

func TestRegistersEmpty(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText)
	require.NoError(t, r.Registers(nil))
	assert.Contains(t, out.String(), "all registers are 0")
}

func TestRegistersJSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON)
	require.NoError(t, r.Registers([]register.Entry{{Letter: 'b', Value: rational.One}}))

	var got []RegisterOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, []RegisterOutput{{Register: "b", Value: "1"}}, got)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
