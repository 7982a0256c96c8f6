package supabase

import (
	"context"
	"fmt"

	"artisan-marketplace-backend/internal/config"
	"artisan-marketplace-backend/internal/middleware"
	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/store"
	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// Client wraps the Supabase SDK for auth and PostgREST reads.
type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}

type profileRole struct {
	Role models.Role `json:"role"`
}

// GetUserRole reads profiles.role for the user.
func (c *Client) GetUserRole(ctx context.Context, userID uuid.UUID) (models.Role, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var rows []profileRole
	_, err := c.Supabase.From("profiles").
		Select("role", "", false).
		Eq("id", userID.String()).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return "", fmt.Errorf("failed to get user role: %w", err)
	}
	if len(rows) == 0 {
		return "", store.ErrNotFound
	}
	return rows[0].Role, nil
}

// RefreshSession exchanges a refresh token through Supabase Auth.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*middleware.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := c.Supabase.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}

	return &middleware.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

func listDictionary[T any](c *Client, ctx context.Context, table string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := []T{}
	_, err := c.Supabase.From(table).
		Select("id,name,slug", "", false).
		Order("name", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&items)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	return items, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	return listDictionary[models.Category](c, ctx, "categories")
}

func (c *Client) ListMaterials(ctx context.Context) ([]models.Material, error) {
	return listDictionary[models.Material](c, ctx, "materials")
}

func (c *Client) ListSpecializations(ctx context.Context) ([]models.Specialization, error) {
	return listDictionary[models.Specialization](c, ctx, "specializations")
}
