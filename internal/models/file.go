// Package models defines the data types persisted by Studyos: stored files,
// flashcards, decks and snapshots.
package models

// StoredFile is the metadata half of a binary attachment record. The payload
// lives in the same row but is only materialized by point reads; bulk listing
// never loads it.
type StoredFile struct {
	// Id is assigned by the blob store on insert, monotonically increasing.
	Id int64 `json:"id"`

	// Name is the original file name.
	Name string `json:"name"`

	// MimeType is the payload's MIME type. Compressed uploads are stored as
	// image/jpeg regardless of the source type.
	MimeType string `json:"type"`

	// SizeBytes is the size of the stored payload (after compression, if any).
	SizeBytes int64 `json:"size"`

	// CreatedAt is the insertion time in epoch milliseconds.
	CreatedAt int64 `json:"ts"`

	// Tags is a free-form label set.
	Tags []string `json:"tags,omitempty"`

	// Folder is a path-style grouping string, "/" by default.
	Folder string `json:"folder,omitempty"`
}

// StoredFileData is a StoredFile together with its binary payload.
// The payload is immutable after creation.
type StoredFileData struct {
	StoredFile
	Data []byte `json:"-"`
}

// MetadataPatch carries a partial metadata update. Nil fields are left
// untouched.
type MetadataPatch struct {
	Name   *string
	Tags   *[]string
	Folder *string
}
