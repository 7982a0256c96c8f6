package supabase

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// StorageClient uploads to and removes from Supabase Storage buckets.
type StorageClient struct {
	client  *storage.Client
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey string) *StorageClient {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	return &StorageClient{
		client:  storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil),
		baseURL: baseURL,
	}
}

// Bucket scopes the client to one bucket.
func (s *StorageClient) Bucket(name string) *Bucket {
	return &Bucket{storage: s, name: name}
}

// PublicURL is the unauthenticated URL of an object in a public bucket.
func (s *StorageClient) PublicURL(bucket, storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, storagePath)
}

// Bucket is a single storage bucket.
type Bucket struct {
	storage *StorageClient
	name    string
}

func (b *Bucket) Name() string {
	return b.name
}

// Upload stores data at storagePath and returns its public URL.
func (b *Bucket) Upload(ctx context.Context, storagePath, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	upsert := false
	_, err := b.storage.client.UploadFile(b.name, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s/%s: %w", b.name, storagePath, err)
	}

	return b.storage.PublicURL(b.name, storagePath), nil
}

func (b *Bucket) Remove(ctx context.Context, storagePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := b.storage.client.RemoveFile(b.name, []string{storagePath}); err != nil {
		return fmt.Errorf("failed to remove %s/%s: %w", b.name, storagePath, err)
	}
	return nil
}
