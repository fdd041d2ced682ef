package domain

import "time"

// Base holds the identity and timestamps shared by stored entities.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
func (b *Base) InitTimestamps() {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Touch updates UpdatedAt.
func (b *Base) Touch() {
	b.UpdatedAt = time.Now().UTC()
}
