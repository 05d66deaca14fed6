package chart

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

// Chart colours.
const (
	ColorThroughput  = "#f6c177"
	ColorPerformance = "#7ce2a0"
	ColorPoint       = "#7ce2a0"
	ColorGrid        = "#2a2f4a"
	ColorAxis        = "#90a0ff"
	ColorLabel       = "#cfe0ff"
)

// Point is one data point.
type Point struct {
	X     float64
	Y     float64
	Label string
}

// Options controls chart geometry.
type Options struct {
	Width     float64
	Height    float64
	Padding   float64
	Gridlines int
	Color     string
}

// DefaultOptions returns the 900x420 geometry used by every chart.
func DefaultOptions(color string) Options {
	return Options{
		Width:     900,
		Height:    420,
		Padding:   50,
		Gridlines: 5,
		Color:     color,
	}
}

// Placed is a point together with its position in chart coordinates.
type Placed struct {
	Point
	PX float64
	PY float64
}

// Layout is the computed geometry of one chart.
type Layout struct {
	Options
	XMax   float64
	YMax   float64
	Points []Placed
	// GridY holds the y coordinate of each horizontal gridline, bottom up.
	GridY []float64
}

// NewLayout scales points into the plot area. Both axes start at zero;
// xmax is at least 1 and ymax is 10% above the largest value (at least 1).
func NewLayout(points []Point, opts Options) Layout {
	l := Layout{Options: opts, XMax: 1, YMax: 1}
	for _, p := range points {
		if p.X > l.XMax {
			l.XMax = p.X
		}
		if p.Y > l.YMax {
			l.YMax = p.Y
		}
	}
	l.YMax *= 1.1

	l.Points = make([]Placed, len(points))
	for i, p := range points {
		l.Points[i] = Placed{Point: p, PX: l.ScaleX(p.X), PY: l.ScaleY(p.Y)}
	}

	if opts.Gridlines > 0 {
		l.GridY = make([]float64, opts.Gridlines)
		for k := 1; k <= opts.Gridlines; k++ {
			l.GridY[k-1] = l.ScaleY(l.YMax / float64(opts.Gridlines) * float64(k))
		}
	}
	return l
}

// PlotWidth is the horizontal extent of the plot area.
func (l Layout) PlotWidth() float64 {
	return l.Width - 2*l.Padding
}

// PlotHeight is the vertical extent of the plot area.
func (l Layout) PlotHeight() float64 {
	return l.Height - 2*l.Padding
}

// ScaleX maps a data x value to chart coordinates.
func (l Layout) ScaleX(x float64) float64 {
	return l.Padding + x/l.XMax*l.PlotWidth()
}

// ScaleY maps a data y value to chart coordinates. Larger values are higher.
func (l Layout) ScaleY(y float64) float64 {
	return l.Height - l.Padding - y/l.YMax*l.PlotHeight()
}

// Baseline is the y coordinate of the x axis.
func (l Layout) Baseline() float64 {
	return l.Height - l.Padding
}

// PolylinePoints renders the points as an SVG points attribute.
func (l Layout) PolylinePoints() string {
	parts := make([]string, len(l.Points))
	for i, p := range l.Points {
		parts[i] = fmt.Sprintf("%s,%s", formatCoord(p.PX), formatCoord(p.PY))
	}
	return strings.Join(parts, " ")
}

// ThroughputPoints converts phase totals to points at x = 0,1,2...
func ThroughputPoints(series []domain.PhasePoint) []Point {
	points := make([]Point, len(series))
	for i, p := range series {
		points[i] = Point{X: float64(i), Y: p.Seconds, Label: p.Phase.String()}
	}
	return points
}

// PerformancePoints converts the session series to points at x = index.
func PerformancePoints(series []domain.SessionPoint) []Point {
	points := make([]Point, len(series))
	for i, p := range series {
		points[i] = Point{X: float64(p.Index), Y: float64(p.CodeSeconds), Label: p.Label}
	}
	return points
}

func formatCoord(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
