// Package file provides the TOML-backed ConfigStore.
//
// Settings live in ~/.ripple/config.toml by default. Keys are addressed
// with dot notation ("server.addr") and written back as nested tables.
package file
