package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a client's furniture commission built from a generated image.
type Project struct {
	ID                 uuid.UUID     `db:"id" json:"id"`
	ClientID           uuid.UUID     `db:"client_id" json:"client_id"`
	GeneratedImageID   uuid.UUID     `db:"generated_image_id" json:"generated_image_id"`
	CategoryID         int64         `db:"category_id" json:"category_id"`
	MaterialID         int64         `db:"material_id" json:"material_id"`
	Status             ProjectStatus `db:"status" json:"status"`
	Dimensions         *string       `db:"dimensions" json:"dimensions,omitempty"`
	Budget             *string       `db:"budget" json:"budget,omitempty"`
	AcceptedProposalID *uuid.UUID    `db:"accepted_proposal_id" json:"accepted_proposal_id"`
	AcceptedPrice      *float64      `db:"accepted_price" json:"accepted_price"`
	CreatedAt          time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time     `db:"updated_at" json:"updated_at"`
}

// ProjectDetails is a project joined with its image, dictionary names and
// proposal count, as returned by listings and lookups.
type ProjectDetails struct {
	Project
	ImageURL       string `db:"image_url" json:"image_url"`
	CategoryName   string `db:"category_name" json:"category_name"`
	MaterialName   string `db:"material_name" json:"material_name"`
	ProposalsCount int    `db:"proposals_count" json:"proposals_count"`
}

// ProjectFilter narrows project listings with equality filters.
type ProjectFilter struct {
	Status     ProjectStatus `form:"status" binding:"omitempty,oneof=open in_progress completed closed"`
	CategoryID int64         `form:"category_id" binding:"omitempty,min=1"`
	MaterialID int64         `form:"material_id" binding:"omitempty,min=1"`
	ClientID   *uuid.UUID    `form:"-"`
	Pagination
}
