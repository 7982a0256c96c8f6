package supabase_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"artisan-marketplace-backend/internal/supabase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageClient_PublicURL(t *testing.T) {
	client := supabase.NewStorageClient("https://example.supabase.co/", "key")
	assert.Equal(t,
		"https://example.supabase.co/storage/v1/object/public/portfolio-images/u/1-abc.png",
		client.PublicURL("portfolio-images", "u/1-abc.png"))
}

func TestBucket_Upload(t *testing.T) {
	var mu sync.Mutex
	var gotPath string
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		gotPath = r.URL.Path
		gotBody = string(body)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Key":"proposal-attachments/u/p/1-abc.pdf"}`))
	}))
	defer server.Close()

	bucket := supabase.NewStorageClient(server.URL, "key").Bucket("proposal-attachments")
	url, err := bucket.Upload(context.Background(), "u/p/1-abc.pdf", "application/pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)

	assert.Equal(t, server.URL+"/storage/v1/object/public/proposal-attachments/u/p/1-abc.pdf", url)
	mu.Lock()
	defer mu.Unlock()
	assert.True(t, strings.HasSuffix(gotPath, "/proposal-attachments/u/p/1-abc.pdf"), gotPath)
	assert.Contains(t, gotBody, "%PDF-1.4")
}

func TestBucket_UploadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := supabase.NewStorageClient("http://127.0.0.1:0", "key").Bucket("b").Upload(ctx, "p", "image/png", []byte{1})
	assert.ErrorIs(t, err, context.Canceled)
}
