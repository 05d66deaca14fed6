package chart

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// Minimum plot size of the terminal renderer.
const (
	minTextCols = 4
	minTextRows = 3
)

// Text renders the layout's points as a terminal line chart cols wide
// and rows tall, followed by one legend line per point. The y axis runs
// from 0 to the layout's YMax, matching the SVG renderer.
func Text(l Layout, cols, rows int) string {
	if cols < minTextCols {
		cols = minTextCols
	}
	if rows < minTextRows {
		rows = minTextRows
	}
	if len(l.Points) == 0 {
		return "(no data)\n"
	}

	series := make([]float64, len(l.Points))
	for i, p := range l.Points {
		series[i] = p.Y
	}

	var b strings.Builder
	b.WriteString(asciigraph.Plot(series,
		asciigraph.Width(cols),
		asciigraph.Height(rows),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(l.YMax),
		asciigraph.Precision(2),
	))
	b.WriteByte('\n')
	for _, p := range l.Points {
		fmt.Fprintf(&b, "  %s  %s\n", p.Label, formatCoord(p.Y))
	}
	return b.String()
}
