// Package httpapi serves the Ripple dashboard and JSON API over HTTP.
//
// Routes:
//
//	GET  /                              dashboard (KPIs, charts, search)
//	POST /ingest                        form ingest, redirects to /
//	POST /seed                          form seed, redirects to /
//	GET  /api/assets?q=                 tracked search
//	POST /api/assets                    tracked ingest
//	GET  /api/assets/{id}               single asset
//	POST /api/seed                      insert sample data
//	GET  /api/metrics                   dashboard data as JSON
//	GET  /export/ripple-metrics.json    snapshot download
//	GET  /export/ripple-metrics.html    report download
//
// Requests are rate limited by a shared token bucket.
package httpapi
