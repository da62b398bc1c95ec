package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a user's reaction to a verdict
type Feedback struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Label     Label     `json:"label"`
	Helpful   bool      `json:"helpful"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
