package repository

import "time"

// Notification represents a delivered notification row.
type Notification struct {
	ID        string
	SessionID string
	Title     string
	Body      string
	CreatedAt time.Time
}
