package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/bfcalc/pkg/register"
)

// RegisterOutput is the JSON form of one register.
type RegisterOutput struct {
	Register string `json:"register"`
	Value    string `json:"value"`
}

// Registers writes a table of registers. An empty list prints a note
// instead of an empty table.
func (r *Renderer) Registers(entries []register.Entry) error {
	if r.EffectiveMode() == ModeJSON {
		out := make([]RegisterOutput, 0, len(entries))
		for _, e := range entries {
			out = append(out, RegisterOutput{Register: string(e.Letter), Value: e.Value.String()})
		}
		return r.JSON(out)
	}

	if len(entries) == 0 {
		r.Muted("(all registers are 0)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Register", "Value"})
	for _, e := range entries {
		t.AppendRow(table.Row{string(e.Letter), e.Value.String()})
	}
	t.Render()
	return nil
}
