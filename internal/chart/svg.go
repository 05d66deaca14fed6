package chart

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

var svgTemplate = template.Must(template.New("chart").Funcs(template.FuncMap{
	"coord": formatCoord,
	"add":   func(a, b float64) float64 { return a + b },
}).Parse(`<svg id="{{.ID}}" class="chart" viewBox="0 0 {{coord .L.Width}} {{coord .L.Height}}" xmlns="http://www.w3.org/2000/svg">
<rect x="0" y="0" width="{{coord .L.Width}}" height="{{coord .L.Height}}" fill="none"/>
{{- range .L.GridY}}
<line x1="{{coord $.L.Padding}}" y1="{{coord .}}" x2="{{coord $.Right}}" y2="{{coord .}}" stroke="` + ColorGrid + `"/>
{{- end}}
<line x1="{{coord .L.Padding}}" y1="{{coord .L.Baseline}}" x2="{{coord .Right}}" y2="{{coord .L.Baseline}}" stroke="` + ColorAxis + `"/>
<line x1="{{coord .L.Padding}}" y1="{{coord .L.Padding}}" x2="{{coord .L.Padding}}" y2="{{coord .L.Baseline}}" stroke="` + ColorAxis + `"/>
{{- if .L.Points}}
<polyline points="{{.L.PolylinePoints}}" fill="none" stroke="{{.L.Color}}" stroke-width="2.5"/>
{{- end}}
{{- range .L.Points}}
<circle cx="{{coord .PX}}" cy="{{coord .PY}}" r="5" fill="` + ColorPoint + `"/>
<text x="{{coord (add .PX 6)}}" y="{{coord (add .PY -8)}}" fill="` + ColorLabel + `" font-size="12">{{.Label}}</text>
{{- end}}
</svg>
`))

// WriteSVG renders the layout as an inline SVG element with the given id.
func WriteSVG(w io.Writer, id string, l Layout) error {
	data := struct {
		ID    string
		L     Layout
		Right float64
	}{ID: id, L: l, Right: l.Width - l.Padding}

	if err := svgTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render chart %s: %w", id, err)
	}
	return nil
}

// SVG renders the layout for embedding into another html/template.
func SVG(id string, l Layout) (template.HTML, error) {
	var b strings.Builder
	if err := WriteSVG(&b, id, l); err != nil {
		return "", err
	}
	//nolint:gosec // output of html/template, already escaped
	return template.HTML(b.String()), nil
}
