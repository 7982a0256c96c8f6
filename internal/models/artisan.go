package models

import (
	"time"

	"github.com/google/uuid"
)

// MinPublicPortfolioImages is the portfolio size a public profile must keep.
const MinPublicPortfolioImages = 5

// ArtisanProfile is an artisan's business identity.
type ArtisanProfile struct {
	UserID          uuid.UUID        `db:"user_id" json:"user_id"`
	CompanyName     string           `db:"company_name" json:"company_name"`
	NIP             string           `db:"nip" json:"nip"`
	IsPublic        bool             `db:"is_public" json:"is_public"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updated_at"`
	Specializations []Specialization `db:"-" json:"specializations"`
}

// PortfolioImage is one image in an artisan's portfolio.
type PortfolioImage struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ArtisanID   uuid.UUID `db:"artisan_id" json:"artisan_id"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	StoragePath string    `db:"storage_path" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ArtisanSummary is a row of the public artisan directory.
type ArtisanSummary struct {
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	CompanyName    string    `db:"company_name" json:"company_name"`
	PortfolioCount int       `db:"portfolio_count" json:"portfolio_count"`
	AverageRating  *float64  `db:"average_rating" json:"average_rating"`
	ReviewsCount   int       `db:"reviews_count" json:"reviews_count"`
}

// ArtisanPublicProfile is the full public view of an artisan.
type ArtisanPublicProfile struct {
	ArtisanProfile
	Portfolio []PortfolioImage `json:"portfolio"`
	Rating    RatingSummary    `json:"rating"`
}

// ArtisanFilter narrows the public artisan directory.
type ArtisanFilter struct {
	SpecializationID int64 `form:"specialization_id" binding:"omitempty,min=1"`
	Pagination
}
