package models

// Category is a furniture category.
type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

// Material is a construction material.
type Material struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

// Specialization is a craft an artisan can declare.
type Specialization struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

// Role is the marketplace role of an authenticated user.
type Role string

const (
	RoleClient  Role = "client"
	RoleArtisan Role = "artisan"
)
