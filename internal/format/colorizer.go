package format

import (
	"github.com/fatih/color"

	"github.com/davrell/jsonsift/token"
)

// A Colorizer decides how scalars are colored in the output.  A nil
// *Colorizer prints everything uncolored, and so does a non-nil one when
// color.NoColor is set (fatih/color disables itself when the output is not
// a terminal).
type Colorizer struct {
	Key    *color.Color
	Scalar [4]*color.Color
}

// Default mirrors common JSON pretty-printer palettes: blue keys, green
// strings, plain numbers, yellow booleans and faint nulls.
var Default = Colorizer{
	Key: color.New(color.FgBlue),
	Scalar: [4]*color.Color{
		token.Null:    color.New(color.Faint),
		token.Boolean: color.New(color.FgYellow),
		token.Number:  nil,
		token.String:  color.New(color.FgGreen),
	},
}

func (c *Colorizer) scalarColor(scalar *token.Scalar) *color.Color {
	if scalar.IsKey() {
		return c.Key
	}
	return c.Scalar[scalar.Type()]
}

// PrintScalar writes the scalar's literal bytes to the printer, wrapped in
// the configured color codes.
func (c *Colorizer) PrintScalar(p Printer, scalar *token.Scalar) {
	if c == nil {
		p.PrintBytes(scalar.Bytes)
		return
	}
	col := c.scalarColor(scalar)
	if col == nil {
		p.PrintBytes(scalar.Bytes)
		return
	}
	p.PrintBytes([]byte(col.Sprint(string(scalar.Bytes))))
}
