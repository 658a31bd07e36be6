package models

import "time"

// Artifact is a user-owned text record. UserID is immutable after creation.
// IsDeleted marks the row logically removed; deleted artifacts stay in
// storage but are excluded from every read and mutation.
type Artifact struct {
	ID          string
	UserID      string
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	IsDeleted   bool
}
