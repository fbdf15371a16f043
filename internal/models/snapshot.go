package models

// Snapshot is an immutable, timestamp-keyed dump of the whole application
// state, kept for backup/restore.
type Snapshot struct {
	// Timestamp is the creation time in epoch ms and the record key.
	Timestamp int64 `json:"timestamp"`

	// Data is the JSON-serialized full-state dump.
	Data string `json:"data"`
}
