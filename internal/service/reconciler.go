package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/toolhunt/toolhunt/internal/domain"
	"github.com/toolhunt/toolhunt/internal/logger"
	"github.com/toolhunt/toolhunt/internal/repository"
)

// ToolReconciler resolves detected tool mentions against the catalog.
// Matching is by exact name, case-insensitive, so the catalog accumulates
// one row per tool no matter how videos capitalize it.
type ToolReconciler struct {
	toolRepo *repository.ToolRepository
	logger   *logger.Logger
}

// NewToolReconciler creates a new ToolReconciler.
func NewToolReconciler(toolRepo *repository.ToolRepository, log *logger.Logger) *ToolReconciler {
	return &ToolReconciler{
		toolRepo: toolRepo,
		logger:   log,
	}
}

// ReconcileResult reports how one run's detected tools mapped onto the
// catalog.
type ReconcileResult struct {
	Created  []domain.Tool
	Existing []domain.Tool
}

// All returns created and existing tools as one slice.
func (r *ReconcileResult) All() []domain.Tool {
	out := make([]domain.Tool, 0, len(r.Created)+len(r.Existing))
	out = append(out, r.Created...)
	out = append(out, r.Existing...)
	return out
}

// Reconcile maps detected tools onto catalog rows, creating rows for
// tools seen for the first time. Descriptors are processed sequentially;
// a seen-by-name map keeps duplicate mentions within one run from racing
// the catalog lookup.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - detected: tool descriptors from the extraction task.
// Returns:
//   - *ReconcileResult: created and matched catalog rows.
//   - error: non-nil if a lookup or insert fails.
func (r *ToolReconciler) Reconcile(ctx context.Context, detected []domain.DetectedTool) (*ReconcileResult, error) {
	result := &ReconcileResult{}
	seen := make(map[string]bool)

	for _, d := range detected {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		existing, err := r.toolRepo.FindByNameInsensitive(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("lookup tool %q: %w", name, err)
		}
		if existing != nil {
			result.Existing = append(result.Existing, *existing)
			continue
		}

		tool := domain.Tool{
			ID:          uuid.NewString(),
			Name:        name,
			Slug:        domain.GenerateSlug(name),
			Description: d.Description,
			Category:    d.Category,
			PricingType: domain.NormalizePricing(d.PricingType),
			WebsiteURL:  placeholderWebsite(name),
			Status:      domain.ToolStatusNew,
			UseCases:    d.UseCases,
		}
		if err := r.toolRepo.Create(ctx, &tool); err != nil {
			return nil, fmt.Errorf("create tool %q: %w", name, err)
		}

		logger.CtxInfo(ctx, "Created catalog tool %q (slug %s)", tool.Name, tool.Slug)
		result.Created = append(result.Created, tool)
	}

	return result, nil
}

// placeholderWebsite builds a search-engine URL for tools whose real
// website is unknown at detection time. Admins replace it during review.
func placeholderWebsite(name string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(name+" AI Tool")
}
