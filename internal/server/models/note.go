package models

import "time"

// Note is a user's note. ID is the storage identifier used in URLs;
// Seq is the per-owner display number allocated from the owner's counter.
type Note struct {
	ID        string
	OwnerID   string
	Seq       int64
	Title     string
	Body      string
	Tags      []string
	Category  string
	CreatedAt time.Time

	// OwnerEmail is filled by the administrator listing only.
	OwnerEmail string
}

// NoteFields are the owner-editable parts of a note.
type NoteFields struct {
	Title    string
	Body     string
	Tags     []string
	Category string
}
