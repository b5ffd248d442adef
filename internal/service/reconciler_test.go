package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolhunt/toolhunt/internal/domain"
)

func TestReconcileCreatesNewTools(t *testing.T) {
	env := newTestEnv(t)
	reconciler := env.pipeline.reconciler

	result, err := reconciler.Reconcile(context.Background(), []domain.DetectedTool{
		{Name: "Midjourney V7", Description: "Image generation", Category: "Design", PricingType: "subscription", UseCases: []string{"Art"}},
	})
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	assert.Empty(t, result.Existing)

	tool := result.Created[0]
	assert.NotEmpty(t, tool.ID)
	assert.Equal(t, "midjourney-v7", tool.Slug)
	assert.Equal(t, domain.PricingFreemium, tool.PricingType)
	assert.Equal(t, domain.ToolStatusNew, tool.Status)
	assert.Equal(t, "https://www.google.com/search?q=Midjourney+V7+AI+Tool", tool.WebsiteURL)

	// row is queryable by slug afterwards
	stored, err := env.toolRepo.GetBySlug(context.Background(), "midjourney-v7")
	require.NoError(t, err)
	assert.Equal(t, tool.ID, stored.ID)
}

func TestReconcileMatchesCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	reconciler := env.pipeline.reconciler

	first, err := reconciler.Reconcile(context.Background(), []domain.DetectedTool{
		{Name: "Claude", Category: "Productivity"},
	})
	require.NoError(t, err)
	require.Len(t, first.Created, 1)

	second, err := reconciler.Reconcile(context.Background(), []domain.DetectedTool{
		{Name: "CLAUDE", Category: "Productivity"},
	})
	require.NoError(t, err)
	assert.Empty(t, second.Created)
	require.Len(t, second.Existing, 1)
	assert.Equal(t, first.Created[0].ID, second.Existing[0].ID)
	// the original capitalization stands
	assert.Equal(t, "Claude", second.Existing[0].Name)
}

func TestReconcileDedupesWithinRun(t *testing.T) {
	env := newTestEnv(t)
	reconciler := env.pipeline.reconciler

	result, err := reconciler.Reconcile(context.Background(), []domain.DetectedTool{
		{Name: "Runway"},
		{Name: "runway"},
		{Name: "  Runway  "},
	})
	require.NoError(t, err)
	assert.Len(t, result.Created, 1)
	assert.Empty(t, result.Existing)
	assert.Len(t, result.All(), 1)
}

func TestReconcileSkipsBlankNames(t *testing.T) {
	env := newTestEnv(t)
	reconciler := env.pipeline.reconciler

	result, err := reconciler.Reconcile(context.Background(), []domain.DetectedTool{
		{Name: ""},
		{Name: "   "},
	})
	require.NoError(t, err)
	assert.Empty(t, result.All())
}
