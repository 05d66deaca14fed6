package domain

import "time"

// SnapshotTimeFormat is the ISO-8601 layout used for exported_at.
const SnapshotTimeFormat = "2006-01-02T15:04:05Z"

// Snapshot is a full structured export of the data model.
type Snapshot struct {
	Sessions   []Session `json:"sessions"`
	Events     []Event   `json:"events"`
	Assets     []Asset   `json:"assets"`
	ExportedAt string    `json:"exported_at"`
}

// FormatExportTime renders t as the UTC exported_at timestamp.
func FormatExportTime(t time.Time) string {
	return t.UTC().Format(SnapshotTimeFormat)
}
