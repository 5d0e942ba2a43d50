package models

import "time"

// Persistence rows for the backend store. The pipeline treats the store as
// the source of truth for saved/applied state; local sets are caches.

type SavedJob struct {
	ID        int
	UserID    int64
	JobID     string
	Title     string
	Company   string
	ApplyURL  string
	CreatedAt time.Time
}

type Application struct {
	ID        int
	UserID    int64
	JobID     string
	Resume    string
	Note      string
	CreatedAt time.Time
}

// Profile holds the serialized user profile the scorer compares against.
type Profile struct {
	UserID    int64 `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

// NotifiedMatch records that a (user, alert, job) notification went out, so
// re-running the matcher over an unchanged working set emits nothing new.
type NotifiedMatch struct {
	ID            int
	UserID        int64
	AlertID       int
	JobID         string
	LastCheckedAt time.Time
	CreatedAt     time.Time
}
