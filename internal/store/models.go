package store

import "time"

// Room is a persisted room record. The hub's live state (cursors,
// chat transcript) is ephemeral and lives elsewhere; this is the
// metadata the CRUD API serves.
type Room struct {
	ID           string
	Name         string
	Description  string
	CreatorID    string
	CreatorName  string
	Private      bool
	PasswordHash string
	Color        string
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
