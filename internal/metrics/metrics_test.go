package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"artisan-marketplace-backend/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New()

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/projects/:project_id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/"+id, nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(),
		`artisan_marketplace_http_requests_total{method="GET",route="/projects/:project_id",status="204"} 2`)
}

func TestDomainCounters(t *testing.T) {
	m := metrics.New()
	m.ProposalSubmitted()
	m.ProposalAccepted()
	m.ProjectTransition("in_progress", "completed")
	m.Generation("success")

	count, err := testutil.GatherAndCount(m.Registry(),
		"artisan_marketplace_proposals_events_total",
		"artisan_marketplace_projects_status_transitions_total",
		"artisan_marketplace_generations_requests_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ProposalSubmitted()
		m.Generation("AI_TIMEOUT")
		m.RateLimited("generation")
	})
}
