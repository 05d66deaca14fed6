// Package chart lays out dot-line charts and renders them as SVG or,
// through asciigraph, as terminal line plots.
//
// A Layout is computed once from points and Options and is shared by
// both renderers, so the HTTP dashboard and the terminal views place
// points identically.
package chart
