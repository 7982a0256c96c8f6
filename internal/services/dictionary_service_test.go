package services_test

import (
	"context"
	"testing"

	"artisan-marketplace-backend/internal/services"
	"artisan-marketplace-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionaries(t *testing.T) {
	ctx := context.Background()
	svc := services.NewDictionaryService(testutil.NewMemoryStore())

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	materials, err := svc.Materials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "oak", materials[0].Slug)

	specs, err := svc.Specializations(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, specs)
}
