// Package watch ingests text files dropped into a folder.
//
// Files with a .txt or .md extension that are created or written are read
// and stored through the library service, so every file becomes one
// tracked Ingest session. Hidden files, directories and removals are
// ignored.
package watch
