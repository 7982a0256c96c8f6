package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"artisan-marketplace-backend/internal/config"
	"artisan-marketplace-backend/internal/handlers"
	"artisan-marketplace-backend/internal/metrics"
	"artisan-marketplace-backend/internal/middleware"
	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/ratelimit"
	"artisan-marketplace-backend/internal/services"
	"artisan-marketplace-backend/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const testSecret = "handlers-test-secret-long-enough-for-hs256"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := models.RegisterValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testServer struct {
	router *gin.Engine
	store  *testutil.MemoryStore
	blobs  *testutil.BlobStore
}

func newTestServer(t *testing.T, generationLimit int) *testServer {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := testutil.NewMemoryStore()
	blobs := testutil.NewBlobStore()
	m := metrics.New()

	svc := handlers.Services{
		Projects:     services.NewProjectService(store, store, store, m),
		Proposals:    services.NewProposalService(store, store, blobs, m, logger),
		Artisans:     services.NewArtisanService(store, store, blobs, logger),
		Reviews:      services.NewReviewService(store, store, store),
		Images:       services.NewImageService(store, testutil.NewGenerator(), blobs, m, logger),
		Dictionaries: services.NewDictionaryService(store),
	}
	router := handlers.NewRouter(handlers.RouterConfig{
		Logger:            logger,
		Metrics:           m,
		Auth:              middleware.NewAuthenticator(&config.Config{SupabaseJWTSecret: testSecret}, nil, store),
		Throttle:          ratelimit.NewThrottle(1000, 1000),
		GenerationLimiter: ratelimit.NewMemoryLimiter(generationLimit, time.Hour),
	}, svc)

	return &testServer{router: router, store: store, blobs: blobs}
}

// user registers a user with role and returns their id and bearer token.
func (s *testServer) user(t *testing.T, role models.Role) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	s.store.Roles[id] = role

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return id, token
}

type request struct {
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
	locale      string
}

func (s *testServer) do(r request) *httptest.ResponseRecorder {
	req := httptest.NewRequest(r.method, r.path, r.body)
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.locale != "" {
		req.Header.Set("Accept-Language", r.locale)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) json(method, path, token string, payload any) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	}
	return s.do(request{method: method, path: path, token: token, body: body, contentType: "application/json"})
}

// multipartBody encodes fields and an optional file part.
func multipartBody(t *testing.T, fields map[string]string, fileField, filename string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func requireStatus(t *testing.T, want int, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, w.Code, w.Body.String())
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[models.ErrorResponse](t, w).Error.Code
}

// createProject generates an image and opens a project from it.
func (s *testServer) createProject(t *testing.T, token string) models.ProjectDetails {
	t.Helper()
	w := s.json(http.MethodPost, "/api/v1/generations", token, models.GenerateImageRequest{Prompt: "Oak dining table for six"})
	requireStatus(t, http.StatusCreated, w)
	img := decode[models.GeneratedImage](t, w)

	w = s.json(http.MethodPost, "/api/v1/projects", token, models.CreateProjectRequest{
		GeneratedImageID: img.ID.String(),
		CategoryID:       1,
		MaterialID:       2,
	})
	requireStatus(t, http.StatusCreated, w)
	return decode[models.ProjectDetails](t, w)
}

func (s *testServer) submitProposal(t *testing.T, token string, projectID uuid.UUID, price string) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := multipartBody(t, map[string]string{"price": price, "message": "Solid oak, six weeks"}, "", "", nil)
	return s.do(request{
		method: http.MethodPost, path: "/api/v1/projects/" + projectID.String() + "/proposals",
		token: token, body: body, contentType: ct,
	})
}
