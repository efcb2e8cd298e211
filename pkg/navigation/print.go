package navigation

import (
	"bytes"
	"fmt"
	"io"

	"github.com/rodaine/table"
)

// PrintViewpoint writes the unscaled camera triple and mode as a table row.
// note is appended as a trailing column, e.g. to label a recorded position.
// The column header is written only on the first call, so the rows of
// repeated calls line up under it as one table.
func (c *Camera) PrintViewpoint(w io.Writer, note string) {
	v := c.view

	var buf bytes.Buffer
	tbl := table.New("CX", "CY", "CZ", "VX", "VY", "VZ", "UX", "UY", "UZ", "mode", "").WithWriter(&buf)
	tbl.AddRow(
		coord(v.Position[0]), coord(v.Position[1]), coord(v.Position[2]),
		coord(v.Target[0]), coord(v.Target[1]), coord(v.Target[2]),
		coord(v.Up[0]), coord(v.Up[1]), coord(v.Up[2]),
		c.mode, note,
	)
	tbl.Print()

	out := buf.Bytes()
	if c.headerPrinted {
		if i := bytes.IndexByte(out, '\n'); i >= 0 {
			out = out[i+1:]
		}
	}
	c.headerPrinted = true
	w.Write(out)
}

// coord formats to a fixed width so rows printed separately stay aligned
func coord(f float64) string {
	return fmt.Sprintf("%7.2f", f)
}
