package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoLibraryService indicates that no library service was provided.
	ErrNoLibraryService = errors.New("library service is required")
)
