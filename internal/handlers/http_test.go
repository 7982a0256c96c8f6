package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"artisan-marketplace-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, 10)

	w := s.json(http.MethodGet, "/health", "", nil)
	requireStatus(t, http.StatusOK, w)
	assert.Equal(t, "ok", decode[models.HealthResponse](t, w).Status)

	w = s.json(http.MethodGet, "/metrics", "", nil)
	requireStatus(t, http.StatusOK, w)
	assert.Contains(t, w.Body.String(), "artisan_marketplace_http_requests_total")
}

func TestDictionariesArePublic(t *testing.T) {
	s := newTestServer(t, 10)

	w := s.json(http.MethodGet, "/api/v1/categories", "", nil)
	requireStatus(t, http.StatusOK, w)
	assert.Len(t, decode[models.DictionaryResponse[models.Category]](t, w).Items, 2)

	w = s.json(http.MethodGet, "/api/v1/specializations", "", nil)
	requireStatus(t, http.StatusOK, w)
}

func TestAuthenticationRequired(t *testing.T) {
	s := newTestServer(t, 10)

	w := s.json(http.MethodGet, "/api/v1/projects", "", nil)
	requireStatus(t, http.StatusUnauthorized, w)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))

	w = s.json(http.MethodGet, "/api/v1/projects", "not-a-jwt", nil)
	requireStatus(t, http.StatusUnauthorized, w)
}

func TestRoleGuards(t *testing.T) {
	s := newTestServer(t, 10)
	_, artisan := s.user(t, models.RoleArtisan)
	_, client := s.user(t, models.RoleClient)

	w := s.json(http.MethodPost, "/api/v1/generations", artisan, models.GenerateImageRequest{Prompt: "Walnut desk with drawers"})
	requireStatus(t, http.StatusForbidden, w)
	assert.Equal(t, "CLIENT_ROLE_REQUIRED", errorCode(t, w))

	w = s.json(http.MethodGet, "/api/v1/artisans/me/profile", client, nil)
	requireStatus(t, http.StatusForbidden, w)
	assert.Equal(t, "ARTISAN_ROLE_REQUIRED", errorCode(t, w))
}

func TestValidationErrorDetails(t *testing.T) {
	s := newTestServer(t, 10)
	_, artisan := s.user(t, models.RoleArtisan)

	w := s.json(http.MethodPut, "/api/v1/artisans/me/profile", artisan, map[string]any{
		"company_name": "X",
		"nip":          "5260250275",
	})
	requireStatus(t, http.StatusUnprocessableEntity, w)
	body := decode[models.ErrorResponse](t, w)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)

	rules := map[string]string{}
	for _, d := range body.Error.Details {
		rules[d.Field] = d.Rule
	}
	assert.Equal(t, map[string]string{"company_name": "min", "nip": "nip"}, rules)
}

func TestMalformedRequests(t *testing.T) {
	s := newTestServer(t, 10)
	_, client := s.user(t, models.RoleClient)

	w := s.json(http.MethodGet, "/api/v1/projects/not-a-uuid", client, nil)
	requireStatus(t, http.StatusBadRequest, w)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, w))

	w = s.do(request{
		method: http.MethodPost, path: "/api/v1/projects", token: client,
		body: strings.NewReader("{broken"), contentType: "application/json",
	})
	requireStatus(t, http.StatusBadRequest, w)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, w))
}

func TestLocalizedErrors(t *testing.T) {
	s := newTestServer(t, 10)
	_, client := s.user(t, models.RoleClient)

	w := s.do(request{
		method: http.MethodGet, path: "/api/v1/projects/00000000-0000-0000-0000-000000000001",
		token: client, locale: "pl-PL,pl;q=0.9,en;q=0.5",
	})
	requireStatus(t, http.StatusNotFound, w)
	body := decode[models.ErrorResponse](t, w)
	assert.Equal(t, "PROJECT_NOT_FOUND", body.Error.Code)
	assert.Equal(t, "Nie znaleziono projektu", body.Error.Message)
}

func TestGenerationRateLimit(t *testing.T) {
	s := newTestServer(t, 2)
	_, client := s.user(t, models.RoleClient)
	req := models.GenerateImageRequest{Prompt: "Minimalist oak bench"}

	for i := 0; i < 2; i++ {
		w := s.json(http.MethodPost, "/api/v1/generations", client, req)
		requireStatus(t, http.StatusCreated, w)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := s.json(http.MethodPost, "/api/v1/generations", client, req)
	requireStatus(t, http.StatusTooManyRequests, w)
	assert.Equal(t, "RATE_LIMITED", errorCode(t, w))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	w = s.json(http.MethodGet, "/api/v1/generations", client, nil)
	requireStatus(t, http.StatusOK, w)
	page := decode[models.Page[models.GeneratedImage]](t, w)
	require.Len(t, page.Items, 2)
	assert.False(t, page.Items[0].Used)
}
