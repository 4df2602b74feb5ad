package main

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/services"
)

type fakeCategories struct {
	existing map[string]bool
	failOn   string
}

func (f *fakeCategories) ListCategories(context.Context, bool) ([]models.Category, *services.ServiceError) {
	return nil, nil
}

func (f *fakeCategories) CreateCategory(_ context.Context, input *models.CategoryInput) (*models.Category, *services.ServiceError) {
	slug := services.Slugify(input.Name)
	if input.Name == f.failOn {
		return nil, &services.ServiceError{StatusCode: http.StatusInternalServerError, Message: "connection reset"}
	}
	if f.existing[slug] {
		return nil, &services.ServiceError{StatusCode: http.StatusConflict, Message: "Category slug already exists"}
	}
	f.existing[slug] = true
	return &models.Category{ID: uuid.New(), Name: input.Name, Slug: slug}, nil
}

func (f *fakeCategories) UpdateCategory(context.Context, uuid.UUID, *models.CategoryInput) (*models.Category, *services.ServiceError) {
	return nil, nil
}

func (f *fakeCategories) DeleteCategory(context.Context, uuid.UUID) *services.ServiceError {
	return nil
}

func TestSeedCategories_SkipsExisting(t *testing.T) {
	svc := &fakeCategories{existing: map[string]bool{"hoodies": true}}
	var out bytes.Buffer

	require.NoError(t, seedCategories(context.Background(), svc, &out))

	assert.Contains(t, out.String(), "created Oversized Tees (oversized-tees)")
	assert.Contains(t, out.String(), "skipped Hoodies: already exists")
	assert.Len(t, svc.existing, len(defaultCategories))

	out.Reset()
	require.NoError(t, seedCategories(context.Background(), svc, &out))
	assert.NotContains(t, out.String(), "created")
}

func TestSeedCategories_StopsOnStoreError(t *testing.T) {
	svc := &fakeCategories{existing: map[string]bool{}, failOn: "Joggers"}
	var out bytes.Buffer

	err := seedCategories(context.Background(), svc, &out)
	assert.ErrorContains(t, err, "seed Joggers: connection reset")
	assert.NotContains(t, out.String(), "Caps")
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["migrate"])
	assert.True(t, names["create-admin"])
	assert.True(t, names["seed-categories"])
}
