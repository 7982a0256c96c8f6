package models

import (
	"time"

	"github.com/google/uuid"
)

// Proposal is an artisan's priced bid on a project.
type Proposal struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ProjectID      uuid.UUID `db:"project_id" json:"project_id"`
	ArtisanID      uuid.UUID `db:"artisan_id" json:"artisan_id"`
	Price          float64   `db:"price" json:"price"`
	Message        *string   `db:"message" json:"message,omitempty"`
	AttachmentURL  *string   `db:"attachment_url" json:"attachment_url,omitempty"`
	AttachmentPath *string   `db:"attachment_path" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// ProposalDetails adds the artisan's company and the project's state to a
// proposal for listings.
type ProposalDetails struct {
	Proposal
	CompanyName   *string       `db:"company_name" json:"company_name,omitempty"`
	ProjectStatus ProjectStatus `db:"project_status" json:"project_status"`
	IsAccepted    bool          `db:"is_accepted" json:"is_accepted"`
}

// NewProposal carries a validated submission into the proposal service.
type NewProposal struct {
	ProjectID  uuid.UUID
	ArtisanID  uuid.UUID
	Role       Role
	Price      float64
	Message    string
	Attachment *Upload
}
