package models

import (
	"time"

	"github.com/google/uuid"
)

// GeneratedImage is an AI concept image. It is immutable once created and
// can back at most one project.
type GeneratedImage struct {
	ID             uuid.UUID `db:"id" json:"id"`
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	Prompt         string    `db:"prompt" json:"prompt"`
	EnhancedPrompt *string   `db:"enhanced_prompt" json:"enhanced_prompt,omitempty"`
	Title          *string   `db:"title" json:"title,omitempty"`
	ImageURL       string    `db:"image_url" json:"image_url"`
	StoragePath    string    `db:"storage_path" json:"-"`
	Used           bool      `db:"used" json:"used"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
