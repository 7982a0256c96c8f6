package testutil

import (
	"context"
	"errors"
	"sync"

	"artisan-marketplace-backend/internal/imagegen"
)

// BlobStore records uploads in memory.
type BlobStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Removed []string

	// UploadErr fails every upload when set.
	UploadErr error
}

func NewBlobStore() *BlobStore {
	return &BlobStore{Objects: map[string][]byte{}}
}

func (b *BlobStore) Upload(_ context.Context, storagePath, _ string, data []byte) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.UploadErr != nil {
		return "", b.UploadErr
	}
	if _, exists := b.Objects[storagePath]; exists {
		return "", errors.New("object already exists")
	}
	b.Objects[storagePath] = append([]byte{}, data...)
	return "https://storage.test/" + storagePath, nil
}

func (b *BlobStore) Remove(_ context.Context, storagePath string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.Objects, storagePath)
	b.Removed = append(b.Removed, storagePath)
	return nil
}

func (b *BlobStore) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Objects)
}

// PNG is the smallest payload the upload policies sniff as image/png.
var PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

// Generator is a scripted ImageGenerator.
type Generator struct {
	Enhanced   *imagegen.EnhancedPrompt
	Image      []byte
	EnhanceErr error
	ImageErr   error
	Calls      int
}

func NewGenerator() *Generator {
	return &Generator{
		Enhanced: &imagegen.EnhancedPrompt{Prompt: "A solid oak dining table, studio lighting", Title: "Oak table"},
		Image:    PNG,
	}
}

func (g *Generator) EnhancePrompt(context.Context, string) (*imagegen.EnhancedPrompt, error) {
	g.Calls++
	if g.EnhanceErr != nil {
		return nil, g.EnhanceErr
	}
	return g.Enhanced, nil
}

func (g *Generator) GenerateImage(context.Context, string) ([]byte, error) {
	if g.ImageErr != nil {
		return nil, g.ImageErr
	}
	return g.Image, nil
}
