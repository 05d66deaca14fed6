// Package metrics derives summary statistics and chart series from
// sessions and events.
//
// Every function here is pure: it holds no state and recomputes its
// result from the collections it is given. Series are index based
// (creation order, fixed phase order) rather than time based, so chart
// x-axes are reproducible regardless of the real time between sessions.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package metrics
